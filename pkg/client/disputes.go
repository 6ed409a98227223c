// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"net/url"
)

// Sub-resource path segments within a case.
const (
	resourceTasks    = "tasks"
	resourceNotes    = "notes"
	resourceEvidence = "evidence"
)

// DisputeClient provides dispute-case operations for one persona.
//
// Both personas expose the same operations over different base paths; access
// the right instance through [Client.Customer] or [Client.Provider]. Write
// operations return the full raw server record so callers can replace their
// local copy wholesale; records are returned undecoded for the caller's
// normalizer.
type DisputeClient struct {
	c    *Client
	base string
}

// BasePath returns the persona's endpoint family root.
func (d *DisputeClient) BasePath() string {
	return d.base
}

// List fetches the persona's full workspace: every visible case plus the
// server's aggregate metrics.
func (d *DisputeClient) List(ctx context.Context) (*ListResult, error) {
	var res ListResult
	if err := d.c.get(ctx, d.base, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateCase creates a dispute case and returns the raw server record.
func (d *DisputeClient) CreateCase(ctx context.Context, params CaseParams) (map[string]any, error) {
	return d.writeCase(ctx, d.base, "POST", params)
}

// UpdateCase updates a dispute case and returns the raw server record.
func (d *DisputeClient) UpdateCase(ctx context.Context, id string, params CaseParams) (map[string]any, error) {
	return d.writeCase(ctx, d.base+"/"+url.PathEscape(id), "PUT", params)
}

// DeleteCase deletes a dispute case and everything it owns.
func (d *DisputeClient) DeleteCase(ctx context.Context, id string) error {
	return d.c.delete(ctx, d.base+"/"+url.PathEscape(id))
}

// CreateTask creates a task under the given case.
func (d *DisputeClient) CreateTask(ctx context.Context, caseID string, params TaskParams) (map[string]any, error) {
	return d.createSub(ctx, caseID, resourceTasks, params)
}

// UpdateTask updates a task under the given case.
func (d *DisputeClient) UpdateTask(ctx context.Context, caseID, id string, params TaskParams) (map[string]any, error) {
	return d.updateSub(ctx, caseID, resourceTasks, id, params)
}

// DeleteTask deletes a task under the given case.
func (d *DisputeClient) DeleteTask(ctx context.Context, caseID, id string) error {
	return d.deleteSub(ctx, caseID, resourceTasks, id)
}

// CreateNote creates a note under the given case.
func (d *DisputeClient) CreateNote(ctx context.Context, caseID string, params NoteParams) (map[string]any, error) {
	return d.createSub(ctx, caseID, resourceNotes, params)
}

// UpdateNote updates a note under the given case.
func (d *DisputeClient) UpdateNote(ctx context.Context, caseID, id string, params NoteParams) (map[string]any, error) {
	return d.updateSub(ctx, caseID, resourceNotes, id, params)
}

// DeleteNote deletes a note under the given case.
func (d *DisputeClient) DeleteNote(ctx context.Context, caseID, id string) error {
	return d.deleteSub(ctx, caseID, resourceNotes, id)
}

// CreateEvidence creates an evidence item under the given case.
func (d *DisputeClient) CreateEvidence(ctx context.Context, caseID string, params EvidenceParams) (map[string]any, error) {
	return d.createSub(ctx, caseID, resourceEvidence, params)
}

// UpdateEvidence updates an evidence item under the given case.
func (d *DisputeClient) UpdateEvidence(ctx context.Context, caseID, id string, params EvidenceParams) (map[string]any, error) {
	return d.updateSub(ctx, caseID, resourceEvidence, id, params)
}

// DeleteEvidence deletes an evidence item under the given case.
func (d *DisputeClient) DeleteEvidence(ctx context.Context, caseID, id string) error {
	return d.deleteSub(ctx, caseID, resourceEvidence, id)
}

// writeCase sends a case write and unwraps the {"case": {...}} envelope.
func (d *DisputeClient) writeCase(ctx context.Context, path, method string, params CaseParams) (map[string]any, error) {
	var env map[string]json.RawMessage
	var err error
	if method == "POST" {
		err = d.c.postJSON(ctx, path, params, &env)
	} else {
		err = d.c.putJSON(ctx, path, params, &env)
	}
	if err != nil {
		return nil, err
	}
	return unwrap(env, "case"), nil
}

// createSub POSTs a sub-entity and unwraps the singular resource envelope.
func (d *DisputeClient) createSub(ctx context.Context, caseID, resource string, params any) (map[string]any, error) {
	var env map[string]json.RawMessage
	path := d.subPath(caseID, resource, "")
	if err := d.c.postJSON(ctx, path, params, &env); err != nil {
		return nil, err
	}
	return unwrap(env, singular(resource)), nil
}

// updateSub PUTs a sub-entity and unwraps the singular resource envelope.
func (d *DisputeClient) updateSub(ctx context.Context, caseID, resource, id string, params any) (map[string]any, error) {
	var env map[string]json.RawMessage
	path := d.subPath(caseID, resource, id)
	if err := d.c.putJSON(ctx, path, params, &env); err != nil {
		return nil, err
	}
	return unwrap(env, singular(resource)), nil
}

// deleteSub DELETEs a sub-entity.
func (d *DisputeClient) deleteSub(ctx context.Context, caseID, resource, id string) error {
	return d.c.delete(ctx, d.subPath(caseID, resource, id))
}

// subPath builds <base>/{caseId}/{resource}[/{id}].
func (d *DisputeClient) subPath(caseID, resource, id string) string {
	p := d.base + "/" + url.PathEscape(caseID) + "/" + resource
	if id != "" {
		p += "/" + url.PathEscape(id)
	}
	return p
}

// singular maps a path segment to its response envelope key.
func singular(resource string) string {
	switch resource {
	case resourceTasks:
		return "task"
	case resourceNotes:
		return "note"
	default:
		return "evidence"
	}
}

// unwrap extracts the named record from a response envelope. A missing or
// malformed record yields nil, which normalizes to a default-filled entity.
func unwrap(env map[string]json.RawMessage, key string) map[string]any {
	raw, ok := env[key]
	if !ok {
		return nil
	}
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil
	}
	return record
}
