// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fixnado/console/internal/dispute"
)

// Sub-entity mutations round-trip to the server independently and patch only
// their slice of the owning case. Every applied patch reruns the metrics
// engine, since task changes can move the activeTasks count.

// SubmitTask sends the task editor's form. An empty form ID creates a task
// under form.CaseID; a non-empty ID updates it in place with the server's
// record.
func (w *Workspace) SubmitTask(ctx context.Context, form TaskForm) error {
	w.mu.Lock()
	if w.caseIndex(form.CaseID) < 0 {
		w.mu.Unlock()
		return fmt.Errorf("case not found: %s", form.CaseID)
	}
	if err := w.taskEditor.beginSubmit(form); err != nil {
		w.mu.Unlock()
		return err
	}
	delete(w.banners, KindTask)
	w.mu.Unlock()

	var record map[string]any
	var err error
	if form.ID == "" {
		record, err = w.gw.CreateTask(ctx, form.CaseID, form.params())
	} else {
		record, err = w.gw.UpdateTask(ctx, form.CaseID, form.ID, form.params())
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.taskEditor.saving = false

	if err != nil {
		w.setBanner(KindTask, ToneError, failureMessage(err, "task"))
		w.logger.WithError(err).WithFields(logrus.Fields{"case": form.CaseID, "task": form.ID}).Warn("task save failed")
		return err
	}

	task := dispute.NormalizeTask(record, form.CaseID)
	if i := w.caseIndex(form.CaseID); i >= 0 {
		if form.ID == "" {
			w.cases[i].Tasks = append(w.cases[i].Tasks, task)
		} else {
			w.cases[i].Tasks = replaceByID(w.cases[i].Tasks, task, task.ID, func(t dispute.DisputeTask) string { return t.ID })
		}
		w.recompute()
	}

	w.taskEditor = editor[TaskForm]{}
	w.setBanner(KindTask, ToneSuccess, "Task saved.")
	return nil
}

// DeleteTask deletes a task from its owning case.
func (w *Workspace) DeleteTask(ctx context.Context, caseID, taskID string) error {
	w.mu.Lock()
	delete(w.banners, KindTask)
	w.mu.Unlock()

	err := w.gw.DeleteTask(ctx, caseID, taskID)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.setBanner(KindTask, ToneError, deleteFailureMessage(err, "task"))
		w.logger.WithError(err).WithFields(logrus.Fields{"case": caseID, "task": taskID}).Warn("task delete failed")
		return err
	}

	if i := w.caseIndex(caseID); i >= 0 {
		w.cases[i].Tasks = removeByID(w.cases[i].Tasks, taskID, func(t dispute.DisputeTask) string { return t.ID })
		w.recompute()
	}

	w.setBanner(KindTask, ToneSuccess, "Task deleted.")
	return nil
}

// SubmitNote sends the note editor's form.
func (w *Workspace) SubmitNote(ctx context.Context, form NoteForm) error {
	w.mu.Lock()
	if w.caseIndex(form.CaseID) < 0 {
		w.mu.Unlock()
		return fmt.Errorf("case not found: %s", form.CaseID)
	}
	if err := w.noteEditor.beginSubmit(form); err != nil {
		w.mu.Unlock()
		return err
	}
	delete(w.banners, KindNote)
	w.mu.Unlock()

	var record map[string]any
	var err error
	if form.ID == "" {
		record, err = w.gw.CreateNote(ctx, form.CaseID, form.params())
	} else {
		record, err = w.gw.UpdateNote(ctx, form.CaseID, form.ID, form.params())
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.noteEditor.saving = false

	if err != nil {
		w.setBanner(KindNote, ToneError, failureMessage(err, "note"))
		w.logger.WithError(err).WithFields(logrus.Fields{"case": form.CaseID, "note": form.ID}).Warn("note save failed")
		return err
	}

	note := dispute.NormalizeNote(record, form.CaseID)
	if i := w.caseIndex(form.CaseID); i >= 0 {
		if form.ID == "" {
			w.cases[i].Notes = append(w.cases[i].Notes, note)
		} else {
			w.cases[i].Notes = replaceByID(w.cases[i].Notes, note, note.ID, func(n dispute.DisputeNote) string { return n.ID })
		}
		w.recompute()
	}

	w.noteEditor = editor[NoteForm]{}
	w.setBanner(KindNote, ToneSuccess, "Note saved.")
	return nil
}

// DeleteNote deletes a note from its owning case.
func (w *Workspace) DeleteNote(ctx context.Context, caseID, noteID string) error {
	w.mu.Lock()
	delete(w.banners, KindNote)
	w.mu.Unlock()

	err := w.gw.DeleteNote(ctx, caseID, noteID)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.setBanner(KindNote, ToneError, deleteFailureMessage(err, "note"))
		w.logger.WithError(err).WithFields(logrus.Fields{"case": caseID, "note": noteID}).Warn("note delete failed")
		return err
	}

	if i := w.caseIndex(caseID); i >= 0 {
		w.cases[i].Notes = removeByID(w.cases[i].Notes, noteID, func(n dispute.DisputeNote) string { return n.ID })
		w.recompute()
	}

	w.setBanner(KindNote, ToneSuccess, "Note deleted.")
	return nil
}

// SubmitEvidence sends the evidence editor's form.
func (w *Workspace) SubmitEvidence(ctx context.Context, form EvidenceForm) error {
	w.mu.Lock()
	if w.caseIndex(form.CaseID) < 0 {
		w.mu.Unlock()
		return fmt.Errorf("case not found: %s", form.CaseID)
	}
	if err := w.evidenceEditor.beginSubmit(form); err != nil {
		w.mu.Unlock()
		return err
	}
	delete(w.banners, KindEvidence)
	w.mu.Unlock()

	var record map[string]any
	var err error
	if form.ID == "" {
		record, err = w.gw.CreateEvidence(ctx, form.CaseID, form.params())
	} else {
		record, err = w.gw.UpdateEvidence(ctx, form.CaseID, form.ID, form.params())
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.evidenceEditor.saving = false

	if err != nil {
		w.setBanner(KindEvidence, ToneError, failureMessage(err, "evidence item"))
		w.logger.WithError(err).WithFields(logrus.Fields{"case": form.CaseID, "evidence": form.ID}).Warn("evidence save failed")
		return err
	}

	ev := dispute.NormalizeEvidence(record, form.CaseID)
	if i := w.caseIndex(form.CaseID); i >= 0 {
		if form.ID == "" {
			w.cases[i].Evidence = append(w.cases[i].Evidence, ev)
		} else {
			w.cases[i].Evidence = replaceByID(w.cases[i].Evidence, ev, ev.ID, func(e dispute.DisputeEvidence) string { return e.ID })
		}
		w.recompute()
	}

	w.evidenceEditor = editor[EvidenceForm]{}
	w.setBanner(KindEvidence, ToneSuccess, "Evidence saved.")
	return nil
}

// DeleteEvidence deletes an evidence item from its owning case.
func (w *Workspace) DeleteEvidence(ctx context.Context, caseID, evidenceID string) error {
	w.mu.Lock()
	delete(w.banners, KindEvidence)
	w.mu.Unlock()

	err := w.gw.DeleteEvidence(ctx, caseID, evidenceID)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.setBanner(KindEvidence, ToneError, deleteFailureMessage(err, "evidence item"))
		w.logger.WithError(err).WithFields(logrus.Fields{"case": caseID, "evidence": evidenceID}).Warn("evidence delete failed")
		return err
	}

	if i := w.caseIndex(caseID); i >= 0 {
		w.cases[i].Evidence = removeByID(w.cases[i].Evidence, evidenceID, func(e dispute.DisputeEvidence) string { return e.ID })
		w.recompute()
	}

	w.setBanner(KindEvidence, ToneSuccess, "Evidence deleted.")
	return nil
}

// replaceByID substitutes the element with the matching id wholesale. When no
// element matches, the list is returned unchanged.
func replaceByID[T any](list []T, item T, id string, getID func(T) string) []T {
	for i := range list {
		if getID(list[i]) == id {
			list[i] = item
			break
		}
	}
	return list
}

// removeByID drops the element with the matching id.
func removeByID[T any](list []T, id string, getID func(T) string) []T {
	for i := range list {
		if getID(list[i]) == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
