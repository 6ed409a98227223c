// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixnado/console/internal/dispute"
	"github.com/fixnado/console/pkg/client"
)

// fakeGateway is a scriptable Gateway. Each write returns the configured
// record or error; calls are recorded for assertion. An optional release
// channel holds responses open to exercise the in-flight saving flag.
type fakeGateway struct {
	mu      sync.Mutex
	calls   []string
	release chan struct{}

	listRes *client.ListResult
	listErr error

	record map[string]any
	err    error
}

func (g *fakeGateway) called(name string) {
	g.mu.Lock()
	g.calls = append(g.calls, name)
	g.mu.Unlock()
	if g.release != nil {
		<-g.release
	}
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *fakeGateway) List(ctx context.Context) (*client.ListResult, error) {
	g.called("List")
	if err := ctx.Err(); err != nil {
		return nil, &client.APIError{Message: err.Error()}
	}
	if g.listErr != nil {
		return nil, g.listErr
	}
	if g.listRes != nil {
		return g.listRes, nil
	}
	return &client.ListResult{}, nil
}

func (g *fakeGateway) write(name string) (map[string]any, error) {
	g.called(name)
	if g.err != nil {
		return nil, g.err
	}
	return g.record, nil
}

func (g *fakeGateway) CreateCase(ctx context.Context, p client.CaseParams) (map[string]any, error) {
	return g.write("CreateCase")
}
func (g *fakeGateway) UpdateCase(ctx context.Context, id string, p client.CaseParams) (map[string]any, error) {
	return g.write("UpdateCase " + id)
}
func (g *fakeGateway) DeleteCase(ctx context.Context, id string) error {
	g.called("DeleteCase " + id)
	return g.err
}
func (g *fakeGateway) CreateTask(ctx context.Context, caseID string, p client.TaskParams) (map[string]any, error) {
	return g.write("CreateTask " + caseID)
}
func (g *fakeGateway) UpdateTask(ctx context.Context, caseID, id string, p client.TaskParams) (map[string]any, error) {
	return g.write("UpdateTask " + caseID + "/" + id)
}
func (g *fakeGateway) DeleteTask(ctx context.Context, caseID, id string) error {
	g.called("DeleteTask " + caseID + "/" + id)
	return g.err
}
func (g *fakeGateway) CreateNote(ctx context.Context, caseID string, p client.NoteParams) (map[string]any, error) {
	return g.write("CreateNote " + caseID)
}
func (g *fakeGateway) UpdateNote(ctx context.Context, caseID, id string, p client.NoteParams) (map[string]any, error) {
	return g.write("UpdateNote " + caseID + "/" + id)
}
func (g *fakeGateway) DeleteNote(ctx context.Context, caseID, id string) error {
	g.called("DeleteNote " + caseID + "/" + id)
	return g.err
}
func (g *fakeGateway) CreateEvidence(ctx context.Context, caseID string, p client.EvidenceParams) (map[string]any, error) {
	return g.write("CreateEvidence " + caseID)
}
func (g *fakeGateway) UpdateEvidence(ctx context.Context, caseID, id string, p client.EvidenceParams) (map[string]any, error) {
	return g.write("UpdateEvidence " + caseID + "/" + id)
}
func (g *fakeGateway) DeleteEvidence(ctx context.Context, caseID, id string) error {
	g.called("DeleteEvidence " + caseID + "/" + id)
	return g.err
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newWorkspace(t *testing.T, gw Gateway) *Workspace {
	t.Helper()
	return New(gw, WithLogger(quietLogger()))
}

// loadedWorkspace builds a workspace preloaded with the given raw cases.
func loadedWorkspace(t *testing.T, gw *fakeGateway, rawCases ...map[string]any) *Workspace {
	t.Helper()
	gw.listRes = &client.ListResult{Cases: rawCases}
	w := newWorkspace(t, gw)
	require.NoError(t, w.Load(context.Background()))
	return w
}

func TestCreateCaseScenario(t *testing.T) {
	gw := &fakeGateway{
		record: map[string]any{
			"id":             "c1",
			"title":          "Deposit dispute",
			"status":         "draft",
			"amountDisputed": "250.00",
			"currency":       "GBP",
		},
	}
	w := loadedWorkspace(t, gw)

	require.NoError(t, w.OpenCaseEditor(""))
	err := w.SubmitCase(context.Background(), CaseForm{
		Title:          "Deposit dispute",
		Status:         "draft",
		AmountDisputed: "250.00",
		Currency:       "GBP",
	})
	require.NoError(t, err)

	snap := w.Snapshot()
	require.Len(t, snap.Cases, 1)
	assert.Equal(t, "c1", snap.Cases[0].ID)
	assert.Equal(t, "250", snap.Metrics.TotalDisputedAmount.String())
	assert.Equal(t, 1, snap.Metrics.StatusCounts[dispute.StatusDraft])
	assert.Equal(t, 1, snap.Metrics.TotalCases)

	assert.False(t, snap.CaseEditor.Open, "editor closes on success")
	assert.Equal(t, ToneSuccess, snap.Banners[KindCase].Tone)
}

func TestSubmitCaseRequiresOpenEditor(t *testing.T) {
	w := loadedWorkspace(t, &fakeGateway{})
	err := w.SubmitCase(context.Background(), CaseForm{Title: "x"})
	assert.ErrorIs(t, err, ErrEditorClosed)
}

func TestWholesaleReplaceIdempotence(t *testing.T) {
	raw := map[string]any{
		"id":             "c1",
		"title":          "Deposit dispute",
		"status":         "open",
		"amountDisputed": 250.0,
		"tasks":          []any{map[string]any{"id": "t1", "status": "pending"}},
	}
	gw := &fakeGateway{record: raw}
	w := loadedWorkspace(t, gw, raw)

	before := w.Snapshot()

	require.NoError(t, w.OpenCaseEditor("c1"))
	require.NoError(t, w.SubmitCase(context.Background(), CaseFormFrom(before.Cases[0])))

	after := w.Snapshot()
	assert.Equal(t, before.Cases, after.Cases)
	assert.Equal(t, before.Metrics.StatusCounts, after.Metrics.StatusCounts)
	assert.Equal(t, before.Metrics.ActiveTasks, after.Metrics.ActiveTasks)
	assert.True(t, before.Metrics.TotalDisputedAmount.Equal(after.Metrics.TotalDisputedAmount))
	assert.Equal(t, before.Metrics.TotalCases, after.Metrics.TotalCases)
}

func TestUpdateReplacesWholesale(t *testing.T) {
	gw := &fakeGateway{
		// Server recalculated lastReviewedAt; stale local fields must not survive.
		record: map[string]any{
			"id":             "c1",
			"title":          "Renamed",
			"status":         "under_review",
			"lastReviewedAt": "2024-05-01T10:00:00Z",
		},
	}
	w := loadedWorkspace(t, gw, map[string]any{
		"id": "c1", "title": "Original", "status": "open", "summary": "old summary",
	})

	require.NoError(t, w.OpenCaseEditor("c1"))
	form := w.Snapshot().CaseEditor.Form
	form.Title = "Renamed"
	require.NoError(t, w.SubmitCase(context.Background(), form))

	snap := w.Snapshot()
	require.Len(t, snap.Cases, 1)
	assert.Equal(t, "Renamed", snap.Cases[0].Title)
	assert.Equal(t, dispute.StatusUnderReview, snap.Cases[0].Status)
	assert.Equal(t, "", snap.Cases[0].Summary, "fields absent from the server record do not linger")
	assert.NotEmpty(t, snap.Cases[0].LastReviewedAt)
	assert.Equal(t, 1, snap.Metrics.StatusCounts[dispute.StatusUnderReview])
	assert.Equal(t, 0, snap.Metrics.StatusCounts[dispute.StatusOpen])
}

func TestDeleteCaseRemovesOnlyTarget(t *testing.T) {
	gw := &fakeGateway{}
	w := loadedWorkspace(t, gw,
		map[string]any{"id": "c1", "status": "open", "amountDisputed": "100.00"},
		map[string]any{"id": "c2", "status": "open", "amountDisputed": "50.00"},
	)

	require.NoError(t, w.DeleteCase(context.Background(), "c1"))

	snap := w.Snapshot()
	require.Len(t, snap.Cases, 1)
	assert.Equal(t, "c2", snap.Cases[0].ID)
	assert.Equal(t, 1, snap.Metrics.TotalCases)
	assert.Equal(t, "50", snap.Metrics.TotalDisputedAmount.String())
	assert.Equal(t, ToneSuccess, snap.Banners[KindCase].Tone)
}

func TestFailureLeavesStateUntouched(t *testing.T) {
	rejection := &client.APIError{Status: http.StatusConflict, Message: "task already completed"}
	gw := &fakeGateway{}
	w := loadedWorkspace(t, gw, map[string]any{
		"id": "c1", "status": "open",
		"tasks": []any{map[string]any{"id": "t1", "label": "Collect receipts", "status": "pending"}},
	})

	before := w.Snapshot()

	require.NoError(t, w.OpenTaskEditor("c1", "t1"))
	gw.err = rejection

	form := w.Snapshot().TaskEditor.Form
	form.Label = "Changed label"
	err := w.SubmitTask(context.Background(), form)
	require.Error(t, err)

	after := w.Snapshot()
	assert.Equal(t, before.Cases, after.Cases, "collection unchanged on rejection")
	assert.Equal(t, before.Metrics, after.Metrics, "metrics unchanged on rejection")

	assert.True(t, after.TaskEditor.Open, "editor stays open for retry")
	assert.False(t, after.TaskEditor.Saving, "saving flag cleared on failure")
	assert.Equal(t, "Changed label", after.TaskEditor.Form.Label, "entered values kept")
	assert.Equal(t, ToneError, after.Banners[KindTask].Tone)
	assert.Equal(t, "task already completed", after.Banners[KindTask].Message)
}

func TestTransportFailureUsesFallbackMessage(t *testing.T) {
	gw := &fakeGateway{}
	w := loadedWorkspace(t, gw, map[string]any{"id": "c1", "status": "open"})

	gw.err = &client.APIError{Message: "connection refused"}
	require.Error(t, w.DeleteCase(context.Background(), "c1"))

	snap := w.Snapshot()
	require.Len(t, snap.Cases, 1, "failed delete leaves the case visible")
	assert.Equal(t, ToneError, snap.Banners[KindCase].Tone)
	assert.Contains(t, snap.Banners[KindCase].Message, "try again")
}

func TestSaveInFlightRejected(t *testing.T) {
	gw := &fakeGateway{record: map[string]any{"id": "c1", "status": "draft"}}
	w := loadedWorkspace(t, gw)
	gw.release = make(chan struct{}) // hold subsequent writes open

	require.NoError(t, w.OpenCaseEditor(""))

	done := make(chan error, 1)
	go func() {
		done <- w.SubmitCase(context.Background(), CaseForm{Title: "first"})
	}()

	// Wait until the first submit is holding the gateway open.
	for !w.Snapshot().CaseEditor.Saving {
		time.Sleep(time.Millisecond)
	}

	err := w.SubmitCase(context.Background(), CaseForm{Title: "second"})
	assert.ErrorIs(t, err, ErrSaveInFlight)

	close(gw.release)
	require.NoError(t, <-done)

	snap := w.Snapshot()
	require.Len(t, snap.Cases, 1, "only the first submit landed")
	assert.False(t, snap.CaseEditor.Saving)
}

func TestBannerClearedAtNextOperation(t *testing.T) {
	gw := &fakeGateway{record: map[string]any{"id": "c1", "status": "draft"}}
	w := loadedWorkspace(t, gw)

	require.NoError(t, w.OpenCaseEditor(""))
	require.NoError(t, w.SubmitCase(context.Background(), CaseForm{Title: "x"}))
	require.Equal(t, ToneSuccess, w.Snapshot().Banners[KindCase].Tone)

	// The next case operation clears the banner before the request runs.
	gw.err = &client.APIError{Status: 500, Message: "boom"}
	require.Error(t, w.DeleteCase(context.Background(), "c1"))
	assert.Equal(t, "boom", w.Snapshot().Banners[KindCase].Message)
}

func TestLoadFailureSetsWorkspaceError(t *testing.T) {
	gw := &fakeGateway{listErr: &client.APIError{Status: 503, Message: "down for maintenance"}}
	w := newWorkspace(t, gw)

	require.Error(t, w.Load(context.Background()))

	snap := w.Snapshot()
	assert.False(t, snap.Loaded)
	assert.Equal(t, "down for maintenance", snap.LoadError)
	assert.Empty(t, snap.Cases)
}

func TestCancelledLoadMutatesNothing(t *testing.T) {
	gw := &fakeGateway{listRes: &client.ListResult{
		Cases: []map[string]any{{"id": "c1", "status": "open"}},
	}}
	w := newWorkspace(t, gw)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, w.Load(ctx))

	snap := w.Snapshot()
	assert.False(t, snap.Loaded)
	assert.Empty(t, snap.LoadError, "cancellation surfaces no error banner")
	assert.Empty(t, snap.Cases)
}

func TestTaskLifecycleDrivesActiveTasks(t *testing.T) {
	gw := &fakeGateway{}
	w := loadedWorkspace(t, gw, map[string]any{"id": "c1", "status": "open"})
	assert.Equal(t, 0, w.Metrics().ActiveTasks)

	// Create a pending task: the case now counts as having active work.
	gw.record = map[string]any{"id": "t1", "label": "Chase refund", "status": "pending"}
	require.NoError(t, w.OpenTaskEditor("c1", ""))
	require.NoError(t, w.SubmitTask(context.Background(), TaskForm{CaseID: "c1", Label: "Chase refund", Status: "pending"}))
	assert.Equal(t, 1, w.Metrics().ActiveTasks)

	c, ok := w.Case("c1")
	require.True(t, ok)
	require.Len(t, c.Tasks, 1)
	assert.Equal(t, "c1", c.Tasks[0].DisputeCaseID, "appended task carries its owner id")

	// Complete it: the count drops without any case-level write.
	gw.record = map[string]any{"id": "t1", "label": "Chase refund", "status": "completed"}
	require.NoError(t, w.OpenTaskEditor("c1", "t1"))
	form := w.Snapshot().TaskEditor.Form
	form.Status = "completed"
	require.NoError(t, w.SubmitTask(context.Background(), form))
	assert.Equal(t, 0, w.Metrics().ActiveTasks)

	// Delete it.
	require.NoError(t, w.DeleteTask(context.Background(), "c1", "t1"))
	c, _ = w.Case("c1")
	assert.Empty(t, c.Tasks)
}

func TestNoteAndEvidenceLifecycle(t *testing.T) {
	gw := &fakeGateway{}
	w := loadedWorkspace(t, gw, map[string]any{"id": "c1", "status": "open"})

	gw.record = map[string]any{"id": "n1", "body": "Spoke to customer", "visibility": "internal"}
	require.NoError(t, w.OpenNoteEditor("c1", ""))
	require.NoError(t, w.SubmitNote(context.Background(), NoteForm{CaseID: "c1", Body: "Spoke to customer", Visibility: "internal"}))

	gw.record = map[string]any{"id": "e1", "label": "Receipt", "fileUrl": "https://cdn.example/r.pdf"}
	require.NoError(t, w.OpenEvidenceEditor("c1", ""))
	require.NoError(t, w.SubmitEvidence(context.Background(), EvidenceForm{CaseID: "c1", Label: "Receipt", FileURL: "https://cdn.example/r.pdf"}))

	c, ok := w.Case("c1")
	require.True(t, ok)
	require.Len(t, c.Notes, 1)
	require.Len(t, c.Evidence, 1)
	assert.Equal(t, "c1", c.Notes[0].DisputeCaseID)
	assert.Equal(t, "c1", c.Evidence[0].DisputeCaseID)

	require.NoError(t, w.DeleteNote(context.Background(), "c1", "n1"))
	require.NoError(t, w.DeleteEvidence(context.Background(), "c1", "e1"))
	c, _ = w.Case("c1")
	assert.Empty(t, c.Notes)
	assert.Empty(t, c.Evidence)
}

func TestOpenEditorsPrefill(t *testing.T) {
	w := loadedWorkspace(t, &fakeGateway{}, map[string]any{
		"id": "c1", "title": "Deposit dispute", "status": "open", "amountDisputed": "99.50",
		"tasks": []any{map[string]any{"id": "t1", "label": "Collect receipts", "status": "pending"}},
		"notes": []any{map[string]any{"id": "n1", "body": "hello", "pinned": true}},
	})

	require.NoError(t, w.OpenCaseEditor("c1"))
	form := w.Snapshot().CaseEditor.Form
	assert.Equal(t, "Deposit dispute", form.Title)
	assert.Equal(t, "99.5", form.AmountDisputed)

	require.NoError(t, w.OpenTaskEditor("c1", "t1"))
	assert.Equal(t, "Collect receipts", w.Snapshot().TaskEditor.Form.Label)

	require.NoError(t, w.OpenNoteEditor("c1", "n1"))
	assert.True(t, w.Snapshot().NoteEditor.Form.Pinned)

	assert.Error(t, w.OpenCaseEditor("missing"))
	assert.Error(t, w.OpenTaskEditor("c1", "missing"))
	assert.Error(t, w.OpenEvidenceEditor("missing", ""))
}

func TestSnapshotIsACopy(t *testing.T) {
	w := loadedWorkspace(t, &fakeGateway{}, map[string]any{
		"id": "c1", "status": "open",
		"tasks": []any{map[string]any{"id": "t1", "status": "pending"}},
	})

	snap := w.Snapshot()
	snap.Cases[0].Title = "mutated"
	snap.Cases[0].Tasks[0].Status = dispute.TaskCompleted
	snap.Metrics.StatusCounts[dispute.StatusOpen] = 99

	fresh := w.Snapshot()
	assert.Equal(t, "", fresh.Cases[0].Title)
	assert.Equal(t, dispute.TaskPending, fresh.Cases[0].Tasks[0].Status)
	assert.Equal(t, 1, fresh.Metrics.StatusCounts[dispute.StatusOpen])
}

func TestConcurrentLoadCollapses(t *testing.T) {
	gw := &fakeGateway{listRes: &client.ListResult{}}
	w := newWorkspace(t, gw)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Load(context.Background())
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, gw.callCount(), 8)
	assert.True(t, w.Snapshot().Loaded)
}
