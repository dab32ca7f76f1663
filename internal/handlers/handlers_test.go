package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/models"
)

// fakeOrchestrator returns canned outcomes without fetching
type fakeOrchestrator struct {
	outcome models.PipelineOutcome
	lookup  models.LookupResult

	lastState string
	lastDay   string
	lastCNR   string
}

func (f *fakeOrchestrator) RefreshCauseList(ctx context.Context, state, day string) models.PipelineOutcome {
	f.lastState, f.lastDay = state, day
	return f.outcome
}

func (f *fakeOrchestrator) LookupCase(ctx context.Context, cnr string) (models.LookupResult, models.PipelineOutcome) {
	f.lastCNR = cnr
	if !f.outcome.Succeeded {
		return nil, f.outcome
	}
	return f.lookup, f.outcome
}

// stubStore holds fixed slot values
type stubStore struct {
	snapshot *models.IngestionSnapshot
	results  models.LookupResult
}

func (s *stubStore) ReadSnapshot(ctx context.Context) (*models.IngestionSnapshot, error) {
	if s.snapshot == nil {
		return nil, interfaces.ErrSlotEmpty
	}
	return s.snapshot, nil
}

func (s *stubStore) WriteSnapshot(ctx context.Context, snapshot *models.IngestionSnapshot) error {
	s.snapshot = snapshot
	return nil
}

func (s *stubStore) ReadResults(ctx context.Context) (models.LookupResult, error) {
	if s.results == nil {
		return nil, interfaces.ErrSlotEmpty
	}
	return s.results, nil
}

func (s *stubStore) WriteResults(ctx context.Context, results models.LookupResult) error {
	s.results = results
	return nil
}

func (s *stubStore) Close() error { return nil }

func snapshotWithRecords(count int) *models.IngestionSnapshot {
	result := models.ParseResult{File: "list.pdf", Records: []models.Record{}}
	for i := 1; i <= count; i++ {
		result.Records = append(result.Records,
			models.NewSerialEntry(fmt.Sprintf("%d", i), fmt.Sprintf("%d. Case %d", i, i)))
	}
	return &models.IngestionSnapshot{
		GeneratedAt: time.Now().UTC(),
		Documents:   []models.ParseResult{result},
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCauseListPreviewIsCapped(t *testing.T) {
	orchestrator := &fakeOrchestrator{outcome: models.SuccessOutcome()}
	store := &stubStore{snapshot: snapshotWithRecords(12)}
	handler := NewCauseListHandler(orchestrator, store, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetCauseListHandler(rec, httptest.NewRequest("GET", "/causelist", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(12), body["total_records"])
	assert.Len(t, body["sample"], 5)
	assert.Equal(t, "Karnataka", orchestrator.lastState)
	assert.Equal(t, "today", orchestrator.lastDay)
}

func TestCauseListSmallSnapshotReturnsAllRecords(t *testing.T) {
	orchestrator := &fakeOrchestrator{outcome: models.SuccessOutcome()}
	store := &stubStore{snapshot: snapshotWithRecords(3)}
	handler := NewCauseListHandler(orchestrator, store, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetCauseListHandler(rec, httptest.NewRequest("GET", "/causelist?state=Delhi&day=tomorrow", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["total_records"])
	assert.Len(t, body["sample"], 3)
	assert.Equal(t, "Delhi", orchestrator.lastState)
	assert.Equal(t, "tomorrow", orchestrator.lastDay)
}

func TestCauseListRejectsInvalidDay(t *testing.T) {
	handler := NewCauseListHandler(&fakeOrchestrator{}, &stubStore{}, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetCauseListHandler(rec, httptest.NewRequest("GET", "/causelist?day=yesterday", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCauseListFetchFailureReturns500(t *testing.T) {
	orchestrator := &fakeOrchestrator{outcome: models.FailedOutcome("portal returned 503")}
	handler := NewCauseListHandler(orchestrator, &stubStore{}, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetCauseListHandler(rec, httptest.NewRequest("GET", "/causelist", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "503")
}

func TestCaseLookupReturnsDetails(t *testing.T) {
	orchestrator := &fakeOrchestrator{
		outcome: models.SuccessOutcome(),
		lookup:  models.LookupResult{"cnr": "KABC010012342023", "status": "Pending"},
	}
	handler := NewCaseHandler(orchestrator, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetCaseHandler(rec, httptest.NewRequest("GET", "/cnr/KABC010012342023", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "KABC010012342023", orchestrator.lastCNR)
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Pending", details["status"])
}

func TestCaseLookupEmptyPayloadReturnsMarker(t *testing.T) {
	orchestrator := &fakeOrchestrator{
		outcome: models.SuccessOutcome(),
		lookup:  models.LookupResult{},
	}
	handler := NewCaseHandler(orchestrator, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetCaseHandler(rec, httptest.NewRequest("GET", "/cnr/KABC010012342023", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "No structured data found for this case", body["details"])
}

func TestCaseLookupMissingCNRReturns400(t *testing.T) {
	handler := NewCaseHandler(&fakeOrchestrator{}, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetCaseHandler(rec, httptest.NewRequest("GET", "/cnr/", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResultsEmptyStoreReturns404(t *testing.T) {
	handler := NewDataHandler(&stubStore{}, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetResultsHandler(rec, httptest.NewRequest("GET", "/results", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "No results found yet", body["message"])
}

func TestResultsReturnsStoredPayload(t *testing.T) {
	store := &stubStore{results: models.LookupResult{"cnr": "X", "status": "Disposed"}}
	handler := NewDataHandler(store, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetResultsHandler(rec, httptest.NewRequest("GET", "/results", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["total"])
}

func TestParsedEmptyStoreReturns404(t *testing.T) {
	handler := NewDataHandler(&stubStore{}, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetParsedHandler(rec, httptest.NewRequest("GET", "/parsed", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "No parsed data found", body["message"])
}

func TestParsedReturnsStoredSnapshot(t *testing.T) {
	store := &stubStore{snapshot: snapshotWithRecords(4)}
	handler := NewDataHandler(store, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetParsedHandler(rec, httptest.NewRequest("GET", "/parsed", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total"]) // one document in the snapshot
}

func TestMethodNotAllowed(t *testing.T) {
	handler := NewDataHandler(&stubStore{}, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.GetParsedHandler(rec, httptest.NewRequest("POST", "/parsed", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
