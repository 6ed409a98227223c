// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package apistub

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/fixnado/console/internal/dispute"
)

// Server is the stub dispute API.
type Server struct {
	store  *Store
	logger logrus.FieldLogger
	router *mux.Router
}

// NewServer creates a stub server over a fresh store.
func NewServer(logger logrus.FieldLogger) *Server {
	s := &Server{
		store:  NewStore(),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Store exposes the backing store, mainly for test seeding.
func (s *Server) Store() *Store {
	return s.store
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recovery, s.logging)

	base := "/api/v1/{persona:customer|provider}/disputes"
	sub := base + "/{caseId}/{resource:tasks|notes|evidence}"

	r.HandleFunc(base, s.handleList).Methods(http.MethodGet)
	r.HandleFunc(base, s.handleCreateCase).Methods(http.MethodPost)
	r.HandleFunc(base+"/{id}", s.handleUpdateCase).Methods(http.MethodPut)
	r.HandleFunc(base+"/{id}", s.handleDeleteCase).Methods(http.MethodDelete)

	r.HandleFunc(sub, s.handleCreateSub).Methods(http.MethodPost)
	r.HandleFunc(sub+"/{id}", s.handleUpdateSub).Methods(http.MethodPut)
	r.HandleFunc(sub+"/{id}", s.handleDeleteSub).Methods(http.MethodDelete)

	return r
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	persona := mux.Vars(r)["persona"]
	records := s.store.ListCases(persona)

	// The stub reports the same aggregate snapshot a real backend would.
	cases := make([]dispute.DisputeCase, 0, len(records))
	for _, raw := range records {
		cases = append(cases, dispute.NormalizeCase(raw))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cases":   records,
		"metrics": dispute.ComputeMetrics(cases),
	})
}

func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	persona := mux.Vars(r)["persona"]
	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	record := s.store.CreateCase(persona, payload)
	writeJSON(w, http.StatusCreated, map[string]any{"case": record})
}

func (s *Server) handleUpdateCase(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	record, ok := s.store.UpdateCase(vars["persona"], vars["id"], payload)
	if !ok {
		writeError(w, http.StatusNotFound, "dispute case not found", map[string]any{"id": vars["id"]})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"case": record})
}

func (s *Server) handleDeleteCase(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if !s.store.DeleteCase(vars["persona"], vars["id"]) {
		writeError(w, http.StatusNotFound, "dispute case not found", map[string]any{"id": vars["id"]})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateSub(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	entity, ok := s.store.CreateSub(vars["persona"], vars["caseId"], vars["resource"], payload)
	if !ok {
		writeError(w, http.StatusNotFound, "dispute case not found", map[string]any{"id": vars["caseId"]})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{singular(vars["resource"]): entity})
}

func (s *Server) handleUpdateSub(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	entity, ok := s.store.UpdateSub(vars["persona"], vars["caseId"], vars["resource"], vars["id"], payload)
	if !ok {
		writeError(w, http.StatusNotFound, "record not found", map[string]any{"id": vars["id"]})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{singular(vars["resource"]): entity})
}

func (s *Server) handleDeleteSub(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if !s.store.DeleteSub(vars["persona"], vars["caseId"], vars["resource"], vars["id"]) {
		writeError(w, http.StatusNotFound, "record not found", map[string]any{"id": vars["id"]})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// singular maps a path segment to its response envelope key.
func singular(resource string) string {
	switch resource {
	case "tasks":
		return "task"
	case "notes":
		return "note"
	default:
		return "evidence"
	}
}

func decodeBody(r *http.Request) (map[string]any, error) {
	defer r.Body.Close()
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the production failure shape: {message, details}.
func writeError(w http.ResponseWriter, status int, message string, details map[string]any) {
	writeJSON(w, status, map[string]any{
		"message": message,
		"details": details,
	})
}
