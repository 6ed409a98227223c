// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package workspace implements the dispute workspace orchestrator: the single
// stateful session object behind both the customer and the provider dispute
// screens. It drives a persona-specific API gateway, re-normalizes server
// responses, merges them into the in-memory case collection, and recomputes
// the metrics snapshot after every applied mutation.
//
// The discipline throughout is confirm-then-apply: local state is never
// touched before the server confirms a mutation, so no rollback logic exists
// or is needed. A failed operation only sets an advisory status banner.
package workspace

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/fixnado/console/internal/dispute"
	"github.com/fixnado/console/pkg/client"
)

// Gateway is the persona-specific transport the workspace drives. Both
// *client.DisputeClient instances (customer and provider) satisfy it; tests
// substitute fakes. Every write returns the full raw server record.
type Gateway interface {
	List(ctx context.Context) (*client.ListResult, error)

	CreateCase(ctx context.Context, params client.CaseParams) (map[string]any, error)
	UpdateCase(ctx context.Context, id string, params client.CaseParams) (map[string]any, error)
	DeleteCase(ctx context.Context, id string) error

	CreateTask(ctx context.Context, caseID string, params client.TaskParams) (map[string]any, error)
	UpdateTask(ctx context.Context, caseID, id string, params client.TaskParams) (map[string]any, error)
	DeleteTask(ctx context.Context, caseID, id string) error

	CreateNote(ctx context.Context, caseID string, params client.NoteParams) (map[string]any, error)
	UpdateNote(ctx context.Context, caseID, id string, params client.NoteParams) (map[string]any, error)
	DeleteNote(ctx context.Context, caseID, id string) error

	CreateEvidence(ctx context.Context, caseID string, params client.EvidenceParams) (map[string]any, error)
	UpdateEvidence(ctx context.Context, caseID, id string, params client.EvidenceParams) (map[string]any, error)
	DeleteEvidence(ctx context.Context, caseID, id string) error
}

// Kind identifies which resource family an editor or banner belongs to.
type Kind string

const (
	KindCase     Kind = "case"
	KindTask     Kind = "task"
	KindNote     Kind = "note"
	KindEvidence Kind = "evidence"
)

// Tone classifies a status banner.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// Banner is the advisory outcome of the last operation on a resource kind.
// It is UI state, not part of the aggregate, and is cleared at the start of
// the next operation of the same kind.
type Banner struct {
	Tone    Tone   `json:"tone"`
	Message string `json:"message"`
}

// Workspace is one operator session over one persona's dispute collection.
// Construct a fresh instance per session; nothing is shared between
// instances. All methods are safe for concurrent use.
type Workspace struct {
	gw     Gateway
	logger logrus.FieldLogger

	mu      sync.Mutex
	cases   []dispute.DisputeCase
	metrics dispute.MetricsSnapshot
	banners map[Kind]Banner
	loaded  bool
	loadErr string

	caseEditor     editor[CaseForm]
	taskEditor     editor[TaskForm]
	noteEditor     editor[NoteForm]
	evidenceEditor editor[EvidenceForm]

	loadGroup singleflight.Group
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets the structured logger used for operation outcomes.
func WithLogger(l logrus.FieldLogger) Option {
	return func(w *Workspace) {
		w.logger = l
	}
}

// New creates a workspace bound to the given persona gateway. The workspace
// starts empty; call Load to populate it.
func New(gw Gateway, opts ...Option) *Workspace {
	w := &Workspace{
		gw:      gw,
		logger:  logrus.StandardLogger(),
		banners: make(map[Kind]Banner),
		metrics: dispute.ComputeMetrics(nil),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Load fetches the persona's full workspace, normalizes every case, and
// computes the metrics snapshot. Concurrent calls are collapsed into one
// request. A cancelled load mutates nothing and surfaces no error state.
func (w *Workspace) Load(ctx context.Context) error {
	_, err, _ := w.loadGroup.Do("load", func() (any, error) {
		res, err := w.gw.List(ctx)
		if err != nil {
			if ctx.Err() != nil {
				// Cancelled (teardown, persona switch): leave everything as-is.
				return nil, err
			}
			w.mu.Lock()
			w.loadErr = failureMessage(err, "workspace")
			w.mu.Unlock()
			w.logger.WithError(err).Warn("workspace load failed")
			return nil, err
		}

		cases := make([]dispute.DisputeCase, 0, len(res.Cases))
		for _, raw := range res.Cases {
			cases = append(cases, dispute.NormalizeCase(raw))
		}

		w.mu.Lock()
		w.cases = cases
		w.loaded = true
		w.loadErr = ""
		w.recompute()
		w.mu.Unlock()

		w.logger.WithField("cases", len(cases)).Debug("workspace loaded")
		return nil, nil
	})
	return err
}

// Snapshot is the read-only view handed to the view layer. Collections and
// editor forms are deep copies; mutating a snapshot never affects the
// workspace.
type Snapshot struct {
	Cases   []dispute.DisputeCase   `json:"cases"`
	Metrics dispute.MetricsSnapshot `json:"metrics"`

	CaseEditor     EditorState[CaseForm]     `json:"caseEditor"`
	TaskEditor     EditorState[TaskForm]     `json:"taskEditor"`
	NoteEditor     EditorState[NoteForm]     `json:"noteEditor"`
	EvidenceEditor EditorState[EvidenceForm] `json:"evidenceEditor"`

	Banners map[Kind]Banner `json:"banners"`

	// Loaded reports whether an initial load has succeeded. LoadError is the
	// workspace-level failure of the last load attempt, distinct from the
	// per-editor banners since no case data exists to render yet.
	Loaded    bool   `json:"loaded"`
	LoadError string `json:"loadError,omitempty"`
}

// Snapshot returns the current state of the workspace.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		Cases:          make([]dispute.DisputeCase, 0, len(w.cases)),
		Metrics:        w.metrics.Clone(),
		CaseEditor:     w.caseEditor.state(),
		TaskEditor:     w.taskEditor.state(),
		NoteEditor:     w.noteEditor.state(),
		EvidenceEditor: w.evidenceEditor.state(),
		Banners:        make(map[Kind]Banner, len(w.banners)),
		Loaded:         w.loaded,
		LoadError:      w.loadErr,
	}
	for _, c := range w.cases {
		snap.Cases = append(snap.Cases, c.Clone())
	}
	for k, b := range w.banners {
		snap.Banners[k] = b
	}
	return snap
}

// Metrics returns the current metrics snapshot.
func (w *Workspace) Metrics() dispute.MetricsSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics.Clone()
}

// Case returns a copy of the case with the given id.
func (w *Workspace) Case(id string) (dispute.DisputeCase, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := w.caseIndex(id); i >= 0 {
		return w.cases[i].Clone(), true
	}
	return dispute.DisputeCase{}, false
}

// recompute refreshes the metrics snapshot. Callers hold the lock; this runs
// synchronously after every applied mutation so metrics are never stale.
func (w *Workspace) recompute() {
	w.metrics = dispute.ComputeMetrics(w.cases)
}

// caseIndex finds a case by id. Callers hold the lock.
func (w *Workspace) caseIndex(id string) int {
	for i := range w.cases {
		if w.cases[i].ID == id {
			return i
		}
	}
	return -1
}

// setBanner records the outcome of the last operation on a kind.
func (w *Workspace) setBanner(kind Kind, tone Tone, message string) {
	w.banners[kind] = Banner{Tone: tone, Message: message}
}

// failureMessage prefers the server's message and falls back to a
// resource-specific retry prompt.
func failureMessage(err error, resource string) string {
	if apiErr, ok := err.(*client.APIError); ok && apiErr.Message != "" && !apiErr.Transport() {
		return apiErr.Message
	}
	return "Unable to save changes to the " + resource + ". Please try again."
}

// deleteFailureMessage is the delete-flavored fallback.
func deleteFailureMessage(err error, resource string) string {
	if apiErr, ok := err.(*client.APIError); ok && apiErr.Message != "" && !apiErr.Transport() {
		return apiErr.Message
	}
	return "Unable to delete the " + resource + ". Please try again."
}
