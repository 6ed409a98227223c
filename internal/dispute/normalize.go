// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package dispute

// Normalization turns a possibly-partial, possibly-malformed raw record from
// the API into a total in-memory record. Absent or wrong-typed fields resolve
// to documented defaults instead of failing, so a half-populated server
// response never blocks rendering or editing.

// NormalizeCase builds a canonical DisputeCase from a raw decoded record.
// It never panics; nil input yields an empty case with empty collections.
func NormalizeCase(raw map[string]any) DisputeCase {
	c := DisputeCase{
		ID:                asString(raw["id"]),
		CaseNumber:        asString(raw["caseNumber"]),
		Status:            CaseStatus(asString(raw["status"])),
		Severity:          Severity(asString(raw["severity"])),
		Category:          asString(raw["category"]),
		AmountDisputed:    NormalizeAmount(raw["amountDisputed"]),
		Currency:          asString(raw["currency"]),
		OpenedAt:          NormalizeDate(raw["openedAt"]),
		DueAt:             NormalizeDate(raw["dueAt"]),
		SLADueAt:          NormalizeDate(raw["slaDueAt"]),
		ResolvedAt:        NormalizeDate(raw["resolvedAt"]),
		LastReviewedAt:    NormalizeDate(raw["lastReviewedAt"]),
		Title:             asString(raw["title"]),
		Summary:           asString(raw["summary"]),
		NextStep:          asString(raw["nextStep"]),
		ResolutionNotes:   asString(raw["resolutionNotes"]),
		AssignedTeam:      asString(raw["assignedTeam"]),
		AssignedOwner:     asString(raw["assignedOwner"]),
		ExternalReference: asString(raw["externalReference"]),
		RequiresFollowUp:  asBool(raw["requiresFollowUp"]),
		Tasks:             []DisputeTask{},
		Notes:             []DisputeNote{},
		Evidence:          []DisputeEvidence{},
	}

	for _, el := range asRecordSlice(raw["tasks"]) {
		c.Tasks = append(c.Tasks, NormalizeTask(el, c.ID))
	}
	for _, el := range asRecordSlice(raw["notes"]) {
		c.Notes = append(c.Notes, NormalizeNote(el, c.ID))
	}
	for _, el := range asRecordSlice(raw["evidence"]) {
		c.Evidence = append(c.Evidence, NormalizeEvidence(el, c.ID))
	}

	return c
}

// NormalizeTask builds a canonical DisputeTask owned by caseID.
func NormalizeTask(raw map[string]any, caseID string) DisputeTask {
	t := DisputeTask{
		ID:           asString(raw["id"]),
		Label:        asString(raw["label"]),
		Status:       TaskStatus(asString(raw["status"])),
		DueAt:        NormalizeDate(raw["dueAt"]),
		CompletedAt:  NormalizeDate(raw["completedAt"]),
		AssignedTo:   asString(raw["assignedTo"]),
		Instructions: asString(raw["instructions"]),
	}
	// Sub-entities always carry their owner's id; the wire value is ignored
	// when an owner is known so local state never holds an orphan.
	t.DisputeCaseID = ownerID(raw, caseID)
	return t
}

// NormalizeNote builds a canonical DisputeNote owned by caseID.
func NormalizeNote(raw map[string]any, caseID string) DisputeNote {
	n := DisputeNote{
		ID:         asString(raw["id"]),
		NoteType:   asString(raw["noteType"]),
		Visibility: NoteVisibility(asString(raw["visibility"])),
		Body:       asString(raw["body"]),
		NextSteps:  asString(raw["nextSteps"]),
		Pinned:     asBool(raw["pinned"]),
		CreatedAt:  NormalizeDate(raw["createdAt"]),
	}
	n.DisputeCaseID = ownerID(raw, caseID)
	return n
}

// NormalizeEvidence builds a canonical DisputeEvidence owned by caseID.
func NormalizeEvidence(raw map[string]any, caseID string) DisputeEvidence {
	e := DisputeEvidence{
		ID:           asString(raw["id"]),
		Label:        asString(raw["label"]),
		FileURL:      asString(raw["fileUrl"]),
		FileType:     asString(raw["fileType"]),
		ThumbnailURL: asString(raw["thumbnailUrl"]),
		Notes:        asString(raw["notes"]),
	}
	e.DisputeCaseID = ownerID(raw, caseID)
	return e
}

func ownerID(raw map[string]any, caseID string) string {
	if caseID != "" {
		return caseID
	}
	return asString(raw["disputeCaseId"])
}

// asString returns the value if it is a string, else "".
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asBool returns the value if it is a bool, else false.
func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asRecordSlice returns the elements of v that decoded as JSON objects.
// Non-slice values and non-object elements are dropped.
func asRecordSlice(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
