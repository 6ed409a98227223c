// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package dispute defines the dispute-case aggregate and the pure logic that
// keeps it well-formed: wire coercion, record normalization, and metrics.
package dispute

import (
	"github.com/shopspring/decimal"
)

// CaseStatus is the lifecycle status of a dispute case. The server is the
// authority on legal transitions; clients never validate them.
type CaseStatus string

const (
	StatusDraft            CaseStatus = "draft"
	StatusOpen             CaseStatus = "open"
	StatusUnderReview      CaseStatus = "under_review"
	StatusAwaitingCustomer CaseStatus = "awaiting_customer"
	StatusResolved         CaseStatus = "resolved"
	StatusClosed           CaseStatus = "closed"
)

// KnownStatuses lists every case status the metrics snapshot reports on,
// in display order.
var KnownStatuses = []CaseStatus{
	StatusDraft,
	StatusOpen,
	StatusUnderReview,
	StatusAwaitingCustomer,
	StatusResolved,
	StatusClosed,
}

// Severity is the operational severity of a case.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// TaskStatus is the completion state of a dispute task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// NoteVisibility controls who can read a dispute note.
type NoteVisibility string

const (
	NoteInternal NoteVisibility = "internal"
	NoteShared   NoteVisibility = "shared"
)

// DisputeCase is the root aggregate: a case plus the tasks, notes, and
// evidence it exclusively owns. All timestamp fields hold the local edit
// representation produced by NormalizeDate; "" means unset.
type DisputeCase struct {
	ID         string     `json:"id"`
	CaseNumber string     `json:"caseNumber"`
	Status     CaseStatus `json:"status"`
	Severity   Severity   `json:"severity"`
	Category   string     `json:"category"`

	AmountDisputed decimal.NullDecimal `json:"amountDisputed"`
	Currency       string              `json:"currency"`

	OpenedAt       string `json:"openedAt"`
	DueAt          string `json:"dueAt"`
	SLADueAt       string `json:"slaDueAt"`
	ResolvedAt     string `json:"resolvedAt"`
	LastReviewedAt string `json:"lastReviewedAt"`

	Title             string `json:"title"`
	Summary           string `json:"summary"`
	NextStep          string `json:"nextStep"`
	ResolutionNotes   string `json:"resolutionNotes"`
	AssignedTeam      string `json:"assignedTeam"`
	AssignedOwner     string `json:"assignedOwner"`
	ExternalReference string `json:"externalReference"`

	RequiresFollowUp bool `json:"requiresFollowUp"`

	Tasks    []DisputeTask     `json:"tasks"`
	Notes    []DisputeNote     `json:"notes"`
	Evidence []DisputeEvidence `json:"evidence"`
}

// DisputeTask is a unit of work attached to exactly one case.
type DisputeTask struct {
	ID            string     `json:"id"`
	DisputeCaseID string     `json:"disputeCaseId"`
	Label         string     `json:"label"`
	Status        TaskStatus `json:"status"`
	DueAt         string     `json:"dueAt"`
	CompletedAt   string     `json:"completedAt"`
	AssignedTo    string     `json:"assignedTo"`
	Instructions  string     `json:"instructions"`
}

// DisputeNote is a narrative note attached to exactly one case.
type DisputeNote struct {
	ID            string         `json:"id"`
	DisputeCaseID string         `json:"disputeCaseId"`
	NoteType      string         `json:"noteType"`
	Visibility    NoteVisibility `json:"visibility"`
	Body          string         `json:"body"`
	NextSteps     string         `json:"nextSteps"`
	Pinned        bool           `json:"pinned"`
	CreatedAt     string         `json:"createdAt"`
}

// DisputeEvidence is a file reference attached to exactly one case.
type DisputeEvidence struct {
	ID            string `json:"id"`
	DisputeCaseID string `json:"disputeCaseId"`
	Label         string `json:"label"`
	FileURL       string `json:"fileUrl"`
	FileType      string `json:"fileType"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	Notes         string `json:"notes"`
}

// MetricsSnapshot is the derived operational summary of a case collection.
// It is recomputed from scratch after every local mutation and never persisted.
type MetricsSnapshot struct {
	// StatusCounts has an entry for every status in KnownStatuses, zero or not.
	StatusCounts map[CaseStatus]int `json:"statusCounts"`

	RequiresFollowUp int `json:"requiresFollowUp"`
	Overdue          int `json:"overdue"`

	// ActiveTasks counts cases with at least one non-completed task, not the
	// tasks themselves. The name is part of the metrics contract.
	ActiveTasks int `json:"activeTasks"`

	TotalDisputedAmount decimal.Decimal `json:"totalDisputedAmount"`
	TotalCases          int             `json:"totalCases"`
}

// Clone returns a deep copy of the case, including its owned collections.
func (c DisputeCase) Clone() DisputeCase {
	out := c
	out.Tasks = append([]DisputeTask(nil), c.Tasks...)
	out.Notes = append([]DisputeNote(nil), c.Notes...)
	out.Evidence = append([]DisputeEvidence(nil), c.Evidence...)
	return out
}

// Clone returns a deep copy of the snapshot.
func (m MetricsSnapshot) Clone() MetricsSnapshot {
	out := m
	out.StatusCounts = make(map[CaseStatus]int, len(m.StatusCounts))
	for k, v := range m.StatusCounts {
		out.StatusCounts[k] = v
	}
	return out
}
