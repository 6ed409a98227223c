// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"errors"
	"fmt"
)

// ErrSaveInFlight is returned when a submit arrives while the same editor is
// already saving. The saving flag is the only mutual-exclusion primitive: it
// is scoped to one editor instance and prevents duplicate submission, not
// cross-resource races.
var ErrSaveInFlight = errors.New("a save is already in flight for this editor")

// ErrEditorClosed is returned when submitting to an editor that is not open.
var ErrEditorClosed = errors.New("editor is not open")

// editor is the per-resource editor state machine:
// Closed -> Open(prefilled|blank) -> Submitting -> Closed on success,
// or back to Open with an error banner on failure.
type editor[F any] struct {
	open   bool
	saving bool
	form   F
}

// EditorState is the read-only editor view exposed in snapshots.
type EditorState[F any] struct {
	Open   bool `json:"open"`
	Saving bool `json:"saving"`
	Form   F    `json:"form"`
}

func (e editor[F]) state() EditorState[F] {
	return EditorState[F]{Open: e.open, Saving: e.saving, Form: e.form}
}

// beginSubmit moves an open, idle editor into Submitting and stores the form
// being sent so a failed save keeps the operator's unsaved values intact.
func (e *editor[F]) beginSubmit(form F) error {
	if !e.open {
		return ErrEditorClosed
	}
	if e.saving {
		return ErrSaveInFlight
	}
	e.saving = true
	e.form = form
	return nil
}

// OpenCaseEditor opens the case editor, blank for id == "" or prefilled from
// the local copy of the identified case.
func (w *Workspace) OpenCaseEditor(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	form := CaseForm{}
	if id != "" {
		i := w.caseIndex(id)
		if i < 0 {
			return fmt.Errorf("case not found: %s", id)
		}
		form = CaseFormFrom(w.cases[i])
	}
	w.caseEditor = editor[CaseForm]{open: true, form: form}
	return nil
}

// CloseCaseEditor closes the case editor, discarding unsaved values.
func (w *Workspace) CloseCaseEditor() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.caseEditor = editor[CaseForm]{}
}

// OpenTaskEditor opens the task editor scoped to a case, blank for
// taskID == "" or prefilled from the identified task.
func (w *Workspace) OpenTaskEditor(caseID, taskID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.caseIndex(caseID)
	if i < 0 {
		return fmt.Errorf("case not found: %s", caseID)
	}

	form := TaskForm{CaseID: caseID}
	if taskID != "" {
		found := false
		for _, t := range w.cases[i].Tasks {
			if t.ID == taskID {
				form = TaskFormFrom(t)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("task not found: %s", taskID)
		}
	}
	w.taskEditor = editor[TaskForm]{open: true, form: form}
	return nil
}

// CloseTaskEditor closes the task editor.
func (w *Workspace) CloseTaskEditor() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.taskEditor = editor[TaskForm]{}
}

// OpenNoteEditor opens the note editor scoped to a case, blank for
// noteID == "" or prefilled from the identified note.
func (w *Workspace) OpenNoteEditor(caseID, noteID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.caseIndex(caseID)
	if i < 0 {
		return fmt.Errorf("case not found: %s", caseID)
	}

	form := NoteForm{CaseID: caseID}
	if noteID != "" {
		found := false
		for _, n := range w.cases[i].Notes {
			if n.ID == noteID {
				form = NoteFormFrom(n)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("note not found: %s", noteID)
		}
	}
	w.noteEditor = editor[NoteForm]{open: true, form: form}
	return nil
}

// CloseNoteEditor closes the note editor.
func (w *Workspace) CloseNoteEditor() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.noteEditor = editor[NoteForm]{}
}

// OpenEvidenceEditor opens the evidence editor scoped to a case, blank for
// evidenceID == "" or prefilled from the identified item.
func (w *Workspace) OpenEvidenceEditor(caseID, evidenceID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.caseIndex(caseID)
	if i < 0 {
		return fmt.Errorf("case not found: %s", caseID)
	}

	form := EvidenceForm{CaseID: caseID}
	if evidenceID != "" {
		found := false
		for _, e := range w.cases[i].Evidence {
			if e.ID == evidenceID {
				form = EvidenceFormFrom(e)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("evidence not found: %s", evidenceID)
		}
	}
	w.evidenceEditor = editor[EvidenceForm]{open: true, form: form}
	return nil
}

// CloseEvidenceEditor closes the evidence editor.
func (w *Workspace) CloseEvidenceEditor() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.evidenceEditor = editor[EvidenceForm]{}
}
