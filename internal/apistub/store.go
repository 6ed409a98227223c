// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package apistub is an in-memory stand-in for the marketplace dispute API,
// used for local development and end-to-end tests. It implements both persona
// endpoint families with the same wire contract as production: full records
// on every write, {message, details} bodies on failure.
package apistub

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// subResources are the nested collections every stored case carries.
var subResources = []string{"tasks", "notes", "evidence"}

// Store holds raw wire-shaped case records per persona.
type Store struct {
	mu    sync.Mutex
	cases map[string][]map[string]any // persona -> records
	seq   int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{cases: make(map[string][]map[string]any)}
}

// ListCases returns copies of every case record for a persona.
func (s *Store) ListCases(persona string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]any, 0, len(s.cases[persona]))
	for _, c := range s.cases[persona] {
		out = append(out, deepCopy(c))
	}
	return out
}

// CreateCase stores a new case. The server assigns the id and case number and
// guarantees the nested collections exist.
func (s *Store) CreateCase(persona string, payload map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := deepCopy(payload)
	s.seq++
	record["id"] = uuid.NewString()
	if str, _ := record["caseNumber"].(string); str == "" {
		record["caseNumber"] = fmt.Sprintf("DC-%04d", s.seq)
	}
	if record["openedAt"] == nil {
		record["openedAt"] = time.Now().UTC().Format(time.RFC3339)
	}
	for _, sub := range subResources {
		record[sub] = []any{}
	}

	s.cases[persona] = append(s.cases[persona], record)
	return deepCopy(record)
}

// UpdateCase replaces a case's own fields, preserving its identity and nested
// collections, and stamps lastReviewedAt the way the real backend does.
func (s *Store) UpdateCase(persona, id string, payload map[string]any) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.find(persona, id)
	if record == nil {
		return nil, false
	}

	for k, v := range deepCopy(payload) {
		if k == "id" || isSubResource(k) {
			continue
		}
		record[k] = v
	}
	record["lastReviewedAt"] = time.Now().UTC().Format(time.RFC3339)
	return deepCopy(record), true
}

// DeleteCase removes a case and everything it owns.
func (s *Store) DeleteCase(persona, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.cases[persona]
	for i, c := range list {
		if c["id"] == id {
			s.cases[persona] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// CreateSub appends a sub-entity to a case's nested collection.
func (s *Store) CreateSub(persona, caseID, resource string, payload map[string]any) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.find(persona, caseID)
	if record == nil {
		return nil, false
	}

	entity := deepCopy(payload)
	entity["id"] = uuid.NewString()
	entity["disputeCaseId"] = caseID
	if resource == "notes" && entity["createdAt"] == nil {
		entity["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	}

	list, _ := record[resource].([]any)
	record[resource] = append(list, entity)
	return deepCopy(entity), true
}

// UpdateSub replaces a sub-entity's fields in place.
func (s *Store) UpdateSub(persona, caseID, resource, id string, payload map[string]any) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.find(persona, caseID)
	if record == nil {
		return nil, false
	}

	list, _ := record[resource].([]any)
	for i, el := range list {
		entity, ok := el.(map[string]any)
		if !ok || entity["id"] != id {
			continue
		}
		for k, v := range deepCopy(payload) {
			if k == "id" || k == "disputeCaseId" {
				continue
			}
			entity[k] = v
		}
		list[i] = entity
		return deepCopy(entity), true
	}
	return nil, false
}

// DeleteSub removes a sub-entity from a case's nested collection.
func (s *Store) DeleteSub(persona, caseID, resource, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.find(persona, caseID)
	if record == nil {
		return false
	}

	list, _ := record[resource].([]any)
	for i, el := range list {
		if entity, ok := el.(map[string]any); ok && entity["id"] == id {
			record[resource] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// find returns the live record for a case id. Callers hold the lock.
func (s *Store) find(persona, id string) map[string]any {
	for _, c := range s.cases[persona] {
		if c["id"] == id {
			return c
		}
	}
	return nil
}

func isSubResource(k string) bool {
	for _, sub := range subResources {
		if k == sub {
			return true
		}
	}
	return false
}

// deepCopy clones a JSON-shaped map so stored records never alias request or
// response data.
func deepCopy(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopy(t)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = deepCopyValue(el)
		}
		return out
	default:
		return v
	}
}
