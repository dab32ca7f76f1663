package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/models"
	"github.com/ternarybob/causelist/internal/services/ingest"
	"github.com/ternarybob/causelist/internal/services/parser"
)

// memStore is an in-memory store for orchestrator tests
type memStore struct {
	mu       sync.Mutex
	snapshot *models.IngestionSnapshot
	results  models.LookupResult
}

func (m *memStore) ReadSnapshot(ctx context.Context) (*models.IngestionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return nil, interfaces.ErrSlotEmpty
	}
	return m.snapshot, nil
}

func (m *memStore) WriteSnapshot(ctx context.Context, snapshot *models.IngestionSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snapshot
	return nil
}

func (m *memStore) ReadResults(ctx context.Context) (models.LookupResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.results == nil {
		return nil, interfaces.ErrSlotEmpty
	}
	return m.results, nil
}

func (m *memStore) WriteResults(ctx context.Context, results models.LookupResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = results
	return nil
}

func (m *memStore) Close() error { return nil }

// scriptedFetcher returns canned outcomes and optionally deposits intake
// files on cause-list fetches.
type scriptedFetcher struct {
	outcome    interfaces.FetchOutcome
	deposit    map[string]string // file name -> ignored content marker
	intakeDir  string
	lookup     models.LookupResult
	delay      time.Duration
	fetchCalls atomic.Int64
}

func (f *scriptedFetcher) FetchCauseList(ctx context.Context, req interfaces.CauseListRequest) interfaces.FetchOutcome {
	f.fetchCalls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	for name := range f.deposit {
		os.WriteFile(filepath.Join(f.intakeDir, name), []byte("%PDF-stub"), 0644)
	}
	return f.outcome
}

func (f *scriptedFetcher) FetchCaseDetails(ctx context.Context, cnr string) (models.LookupResult, interfaces.FetchOutcome) {
	f.fetchCalls.Add(1)
	if f.outcome.Status != interfaces.FetchOK {
		return nil, f.outcome
	}
	return f.lookup, f.outcome
}

// textExtractor serves one page of canned text keyed by base name
type textExtractor struct {
	texts map[string]string
}

func (e *textExtractor) ExtractPages(ctx context.Context, filePath string) ([]interfaces.PDFPageContent, error) {
	return []interfaces.PDFPageContent{{PageNumber: 1, Text: e.texts[filepath.Base(filePath)]}}, nil
}

func newTestPipeline(t *testing.T, fetcher interfaces.Fetcher, texts map[string]string, intakeDir string) (*Service, *memStore) {
	t.Helper()
	logger := arbor.NewLogger()
	docParser := parser.NewService(&textExtractor{texts: texts}, logger)
	ingestor := ingest.NewService(docParser, intakeDir, logger)
	store := &memStore{}
	return NewService(fetcher, ingestor, store, time.Minute, logger), store
}

func TestRefreshCauseListSuccess(t *testing.T) {
	intake := t.TempDir()
	fetcher := &scriptedFetcher{
		outcome:   interfaces.FetchOutcome{Status: interfaces.FetchOK},
		deposit:   map[string]string{"list.pdf": ""},
		intakeDir: intake,
	}
	service, store := newTestPipeline(t, fetcher, map[string]string{
		"list.pdf": "Court No. 1\n1. State vs Doe",
	}, intake)

	outcome := service.RefreshCauseList(context.Background(), "Karnataka", "today")
	assert.True(t, outcome.Succeeded)
	assert.Empty(t, outcome.Diagnostic)

	snapshot, err := store.ReadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.RecordCount())
}

func TestRefreshCauseListFetchFailureLeavesStoreUntouched(t *testing.T) {
	intake := t.TempDir()
	fetcher := &scriptedFetcher{
		outcome: interfaces.FetchOutcome{Status: interfaces.FetchFailed, Diagnostic: "portal returned 503"},
	}
	service, store := newTestPipeline(t, fetcher, nil, intake)

	// Seed a prior snapshot to verify it survives
	prior := &models.IngestionSnapshot{
		GeneratedAt: time.Now().UTC(),
		Documents:   []models.ParseResult{{File: "old.pdf", Records: []models.Record{models.NewCourtHeader("Court No. 9")}}},
	}
	require.NoError(t, store.WriteSnapshot(context.Background(), prior))

	outcome := service.RefreshCauseList(context.Background(), "Karnataka", "today")
	assert.False(t, outcome.Succeeded)
	assert.Contains(t, outcome.Diagnostic, "503")

	snapshot, err := store.ReadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, prior, snapshot)
}

func TestRefreshCauseListTimeout(t *testing.T) {
	intake := t.TempDir()
	fetcher := &scriptedFetcher{
		outcome: interfaces.FetchOutcome{Status: interfaces.FetchTimeout, Diagnostic: "context deadline exceeded"},
	}
	service, store := newTestPipeline(t, fetcher, nil, intake)

	outcome := service.RefreshCauseList(context.Background(), "Karnataka", "tomorrow")
	assert.False(t, outcome.Succeeded)

	_, err := store.ReadSnapshot(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrSlotEmpty)
}

func TestRefreshCauseListNoDocumentsIsNotAFailure(t *testing.T) {
	intake := t.TempDir()
	fetcher := &scriptedFetcher{outcome: interfaces.FetchOutcome{Status: interfaces.FetchOK}}
	service, store := newTestPipeline(t, fetcher, nil, intake)

	outcome := service.RefreshCauseList(context.Background(), "Karnataka", "today")
	assert.True(t, outcome.Succeeded)

	// Nothing was deposited, so the store stays untouched
	_, err := store.ReadSnapshot(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrSlotEmpty)
}

func TestLookupCaseSuccessPersistsResults(t *testing.T) {
	intake := t.TempDir()
	fetcher := &scriptedFetcher{
		outcome: interfaces.FetchOutcome{Status: interfaces.FetchOK},
		lookup:  models.LookupResult{"cnr": "KABC010012342023", "status": "Pending"},
	}
	service, store := newTestPipeline(t, fetcher, nil, intake)

	result, outcome := service.LookupCase(context.Background(), "KABC010012342023")
	assert.True(t, outcome.Succeeded)
	assert.Equal(t, "Pending", result["status"])

	stored, err := store.ReadResults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result, stored)
}

func TestLookupCaseEmptyPayloadStillSucceeds(t *testing.T) {
	intake := t.TempDir()
	fetcher := &scriptedFetcher{
		outcome: interfaces.FetchOutcome{Status: interfaces.FetchOK},
		lookup:  models.LookupResult{},
	}
	service, store := newTestPipeline(t, fetcher, nil, intake)

	result, outcome := service.LookupCase(context.Background(), "KABC010012342023")
	assert.True(t, outcome.Succeeded)
	assert.True(t, result.IsEmpty())

	stored, err := store.ReadResults(context.Background())
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())
}

func TestLookupCaseFailureLeavesResultsUntouched(t *testing.T) {
	intake := t.TempDir()
	fetcher := &scriptedFetcher{
		outcome: interfaces.FetchOutcome{Status: interfaces.FetchFailed, Diagnostic: "captcha challenge"},
	}
	service, store := newTestPipeline(t, fetcher, nil, intake)

	_, outcome := service.LookupCase(context.Background(), "KABC010012342023")
	assert.False(t, outcome.Succeeded)
	assert.Contains(t, outcome.Diagnostic, "captcha")

	_, err := store.ReadResults(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrSlotEmpty)
}

func TestConcurrentIdenticalRequestsAreCoalesced(t *testing.T) {
	intake := t.TempDir()
	fetcher := &scriptedFetcher{
		outcome: interfaces.FetchOutcome{Status: interfaces.FetchOK},
		delay:   50 * time.Millisecond,
	}
	service, _ := newTestPipeline(t, fetcher, nil, intake)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			outcome := service.RefreshCauseList(context.Background(), "Karnataka", "today")
			assert.True(t, outcome.Succeeded)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), fetcher.fetchCalls.Load())
}
