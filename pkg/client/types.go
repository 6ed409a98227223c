// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package client

// Write payloads are wire-shaped: timestamps are ISO-8601 UTC strings or
// null, monetary amounts are numeric strings or null. Nil pointers marshal as
// explicit nulls so an update clears fields the operator blanked out.

// CaseParams is the payload for creating or updating a dispute case.
type CaseParams struct {
	CaseNumber        *string `json:"caseNumber"`
	Status            *string `json:"status"`
	Severity          *string `json:"severity"`
	Category          *string `json:"category"`
	AmountDisputed    *string `json:"amountDisputed"`
	Currency          *string `json:"currency"`
	OpenedAt          *string `json:"openedAt"`
	DueAt             *string `json:"dueAt"`
	SLADueAt          *string `json:"slaDueAt"`
	ResolvedAt        *string `json:"resolvedAt"`
	Title             *string `json:"title"`
	Summary           *string `json:"summary"`
	NextStep          *string `json:"nextStep"`
	ResolutionNotes   *string `json:"resolutionNotes"`
	AssignedTeam      *string `json:"assignedTeam"`
	AssignedOwner     *string `json:"assignedOwner"`
	ExternalReference *string `json:"externalReference"`
	RequiresFollowUp  bool    `json:"requiresFollowUp"`
}

// TaskParams is the payload for creating or updating a dispute task.
type TaskParams struct {
	Label        *string `json:"label"`
	Status       *string `json:"status"`
	DueAt        *string `json:"dueAt"`
	CompletedAt  *string `json:"completedAt"`
	AssignedTo   *string `json:"assignedTo"`
	Instructions *string `json:"instructions"`
}

// NoteParams is the payload for creating or updating a dispute note.
type NoteParams struct {
	NoteType   *string `json:"noteType"`
	Visibility *string `json:"visibility"`
	Body       *string `json:"body"`
	NextSteps  *string `json:"nextSteps"`
	Pinned     bool    `json:"pinned"`
}

// EvidenceParams is the payload for creating or updating a dispute evidence item.
type EvidenceParams struct {
	Label        *string `json:"label"`
	FileURL      *string `json:"fileUrl"`
	FileType     *string `json:"fileType"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Notes        *string `json:"notes"`
}

// ListResult is the response of the workspace list endpoint. Cases are raw
// records for the caller to normalize; Metrics is the server's own aggregate
// snapshot, advisory and possibly absent.
type ListResult struct {
	Cases   []map[string]any `json:"cases"`
	Metrics map[string]any   `json:"metrics"`
}
