// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"strings"

	"github.com/fixnado/console/internal/dispute"
	"github.com/fixnado/console/pkg/client"
)

// Forms hold values in the edit representation: timestamps as local
// "2006-01-02T15:04:05" strings, amounts as the operator typed them. An empty
// ID means the form creates a new record; a non-empty ID updates it.

// CaseForm is the editable projection of a dispute case.
type CaseForm struct {
	ID                string `json:"id"`
	CaseNumber        string `json:"caseNumber"`
	Status            string `json:"status"`
	Severity          string `json:"severity"`
	Category          string `json:"category"`
	AmountDisputed    string `json:"amountDisputed"`
	Currency          string `json:"currency"`
	OpenedAt          string `json:"openedAt"`
	DueAt             string `json:"dueAt"`
	SLADueAt          string `json:"slaDueAt"`
	ResolvedAt        string `json:"resolvedAt"`
	Title             string `json:"title"`
	Summary           string `json:"summary"`
	NextStep          string `json:"nextStep"`
	ResolutionNotes   string `json:"resolutionNotes"`
	AssignedTeam      string `json:"assignedTeam"`
	AssignedOwner     string `json:"assignedOwner"`
	ExternalReference string `json:"externalReference"`
	RequiresFollowUp  bool   `json:"requiresFollowUp"`
}

// CaseFormFrom prefills a form from a normalized case.
func CaseFormFrom(c dispute.DisputeCase) CaseForm {
	f := CaseForm{
		ID:                c.ID,
		CaseNumber:        c.CaseNumber,
		Status:            string(c.Status),
		Severity:          string(c.Severity),
		Category:          c.Category,
		Currency:          c.Currency,
		OpenedAt:          c.OpenedAt,
		DueAt:             c.DueAt,
		SLADueAt:          c.SLADueAt,
		ResolvedAt:        c.ResolvedAt,
		Title:             c.Title,
		Summary:           c.Summary,
		NextStep:          c.NextStep,
		ResolutionNotes:   c.ResolutionNotes,
		AssignedTeam:      c.AssignedTeam,
		AssignedOwner:     c.AssignedOwner,
		ExternalReference: c.ExternalReference,
		RequiresFollowUp:  c.RequiresFollowUp,
	}
	if c.AmountDisputed.Valid {
		f.AmountDisputed = c.AmountDisputed.Decimal.String()
	}
	return f
}

// params builds the wire payload. Amounts and dates that do not parse
// transmit as null; the server is the validation authority.
func (f CaseForm) params() client.CaseParams {
	return client.CaseParams{
		CaseNumber:        opt(f.CaseNumber),
		Status:            opt(f.Status),
		Severity:          opt(f.Severity),
		Category:          opt(f.Category),
		AmountDisputed:    dispute.DenormalizeAmount(dispute.NormalizeAmount(f.AmountDisputed)),
		Currency:          opt(f.Currency),
		OpenedAt:          dispute.DenormalizeDate(f.OpenedAt),
		DueAt:             dispute.DenormalizeDate(f.DueAt),
		SLADueAt:          dispute.DenormalizeDate(f.SLADueAt),
		ResolvedAt:        dispute.DenormalizeDate(f.ResolvedAt),
		Title:             opt(f.Title),
		Summary:           opt(f.Summary),
		NextStep:          opt(f.NextStep),
		ResolutionNotes:   opt(f.ResolutionNotes),
		AssignedTeam:      opt(f.AssignedTeam),
		AssignedOwner:     opt(f.AssignedOwner),
		ExternalReference: opt(f.ExternalReference),
		RequiresFollowUp:  f.RequiresFollowUp,
	}
}

// TaskForm is the editable projection of a dispute task.
type TaskForm struct {
	ID           string `json:"id"`
	CaseID       string `json:"caseId"`
	Label        string `json:"label"`
	Status       string `json:"status"`
	DueAt        string `json:"dueAt"`
	CompletedAt  string `json:"completedAt"`
	AssignedTo   string `json:"assignedTo"`
	Instructions string `json:"instructions"`
}

// TaskFormFrom prefills a form from a normalized task.
func TaskFormFrom(t dispute.DisputeTask) TaskForm {
	return TaskForm{
		ID:           t.ID,
		CaseID:       t.DisputeCaseID,
		Label:        t.Label,
		Status:       string(t.Status),
		DueAt:        t.DueAt,
		CompletedAt:  t.CompletedAt,
		AssignedTo:   t.AssignedTo,
		Instructions: t.Instructions,
	}
}

func (f TaskForm) params() client.TaskParams {
	return client.TaskParams{
		Label:        opt(f.Label),
		Status:       opt(f.Status),
		DueAt:        dispute.DenormalizeDate(f.DueAt),
		CompletedAt:  dispute.DenormalizeDate(f.CompletedAt),
		AssignedTo:   opt(f.AssignedTo),
		Instructions: opt(f.Instructions),
	}
}

// NoteForm is the editable projection of a dispute note.
type NoteForm struct {
	ID         string `json:"id"`
	CaseID     string `json:"caseId"`
	NoteType   string `json:"noteType"`
	Visibility string `json:"visibility"`
	Body       string `json:"body"`
	NextSteps  string `json:"nextSteps"`
	Pinned     bool   `json:"pinned"`
}

// NoteFormFrom prefills a form from a normalized note.
func NoteFormFrom(n dispute.DisputeNote) NoteForm {
	return NoteForm{
		ID:         n.ID,
		CaseID:     n.DisputeCaseID,
		NoteType:   n.NoteType,
		Visibility: string(n.Visibility),
		Body:       n.Body,
		NextSteps:  n.NextSteps,
		Pinned:     n.Pinned,
	}
}

func (f NoteForm) params() client.NoteParams {
	return client.NoteParams{
		NoteType:   opt(f.NoteType),
		Visibility: opt(f.Visibility),
		Body:       opt(f.Body),
		NextSteps:  opt(f.NextSteps),
		Pinned:     f.Pinned,
	}
}

// EvidenceForm is the editable projection of a dispute evidence item.
type EvidenceForm struct {
	ID           string `json:"id"`
	CaseID       string `json:"caseId"`
	Label        string `json:"label"`
	FileURL      string `json:"fileUrl"`
	FileType     string `json:"fileType"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Notes        string `json:"notes"`
}

// EvidenceFormFrom prefills a form from a normalized evidence item.
func EvidenceFormFrom(e dispute.DisputeEvidence) EvidenceForm {
	return EvidenceForm{
		ID:           e.ID,
		CaseID:       e.DisputeCaseID,
		Label:        e.Label,
		FileURL:      e.FileURL,
		FileType:     e.FileType,
		ThumbnailURL: e.ThumbnailURL,
		Notes:        e.Notes,
	}
}

func (f EvidenceForm) params() client.EvidenceParams {
	return client.EvidenceParams{
		Label:        opt(f.Label),
		FileURL:      opt(f.FileURL),
		FileType:     opt(f.FileType),
		ThumbnailURL: opt(f.ThumbnailURL),
		Notes:        opt(f.Notes),
	}
}

// opt maps a blank form value to a wire null.
func opt(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
