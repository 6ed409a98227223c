// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fixnado/console/internal/dispute"
)

// SubmitCase sends the case editor's form to the server. An empty form ID
// creates a case, a non-empty ID updates one. Local state changes only after
// the server confirms: a created case is appended, an updated case replaces
// the held record wholesale, and metrics are recomputed before returning.
func (w *Workspace) SubmitCase(ctx context.Context, form CaseForm) error {
	w.mu.Lock()
	if err := w.caseEditor.beginSubmit(form); err != nil {
		w.mu.Unlock()
		return err
	}
	delete(w.banners, KindCase)
	w.mu.Unlock()

	var record map[string]any
	var err error
	if form.ID == "" {
		record, err = w.gw.CreateCase(ctx, form.params())
	} else {
		record, err = w.gw.UpdateCase(ctx, form.ID, form.params())
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.caseEditor.saving = false

	if err != nil {
		w.setBanner(KindCase, ToneError, failureMessage(err, "case"))
		w.logger.WithError(err).WithField("case", form.ID).Warn("case save failed")
		return err
	}

	c := dispute.NormalizeCase(record)
	if form.ID == "" {
		// The server assigned the id; the local collection never holds a
		// draft-in-flight.
		w.cases = append(w.cases, c)
	} else if i := w.caseIndex(c.ID); i >= 0 {
		w.cases[i] = c
	}
	w.recompute()

	w.caseEditor = editor[CaseForm]{}
	w.setBanner(KindCase, ToneSuccess, "Case saved.")
	w.logger.WithFields(logrus.Fields{"case": c.ID, "status": c.Status}).Info("case saved")
	return nil
}

// DeleteCase deletes a case and, on success, strips it and its contribution
// to the metrics from local state.
func (w *Workspace) DeleteCase(ctx context.Context, id string) error {
	w.mu.Lock()
	delete(w.banners, KindCase)
	w.mu.Unlock()

	err := w.gw.DeleteCase(ctx, id)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.setBanner(KindCase, ToneError, deleteFailureMessage(err, "case"))
		w.logger.WithError(err).WithField("case", id).Warn("case delete failed")
		return err
	}

	if i := w.caseIndex(id); i >= 0 {
		w.cases = append(w.cases[:i], w.cases[i+1:]...)
	}
	w.recompute()

	w.setBanner(KindCase, ToneSuccess, "Case deleted.")
	w.logger.WithField("case", id).Info("case deleted")
	return nil
}
