// -----------------------------------------------------------------------
// Acquisition Orchestrator - drive one fetch+ingest cycle and map its
// result to a pipeline outcome. Failed or timed-out fetches never touch
// the persisted store; the prior snapshot stays servable.
// -----------------------------------------------------------------------

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/models"
	"github.com/ternarybob/causelist/internal/services/ingest"
	"golang.org/x/sync/singleflight"
)

// Service coordinates the external fetch, batch ingestion, and store
// writes for one request.
type Service struct {
	fetcher  interfaces.Fetcher
	ingestor *ingest.Service
	store    interfaces.Store
	timeout  time.Duration
	logger   arbor.ILogger

	// Concurrent identical requests are coalesced per key: one fetch is
	// in flight per target, followers receive the leader's outcome.
	group singleflight.Group
}

// Compile-time interface assertion
var _ interfaces.Orchestrator = (*Service)(nil)

// NewService creates a new acquisition orchestrator
func NewService(fetcher interfaces.Fetcher, ingestor *ingest.Service, store interfaces.Store, timeout time.Duration, logger arbor.ILogger) *Service {
	if timeout <= 0 {
		timeout = 600 * time.Second
	}
	return &Service{
		fetcher:  fetcher,
		ingestor: ingestor,
		store:    store,
		timeout:  timeout,
		logger:   logger,
	}
}

// RefreshCauseList runs one cause-list fetch+ingest cycle for the given
// jurisdiction and relative day and returns the pipeline outcome.
func (s *Service) RefreshCauseList(ctx context.Context, state, day string) models.PipelineOutcome {
	key := fmt.Sprintf("causelist:%s:%s", state, day)
	v, _, shared := s.group.Do(key, func() (interface{}, error) {
		return s.refreshCauseList(ctx, state, day), nil
	})
	if shared {
		s.logger.Debug().Str("key", key).Msg("Joined in-flight fetch for identical request")
	}
	return v.(models.PipelineOutcome)
}

func (s *Service) refreshCauseList(ctx context.Context, state, day string) models.PipelineOutcome {
	runID := uuid.New().String()
	log := s.logger.WithCorrelationId(runID)

	log.Info().Str("state", state).Str("day", day).Msg("Starting cause-list pipeline")

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	outcome := s.fetcher.FetchCauseList(fetchCtx, interfaces.CauseListRequest{State: state, Day: day})
	switch outcome.Status {
	case interfaces.FetchTimeout:
		log.Warn().Str("diagnostic", outcome.Diagnostic).Msg("Cause-list fetch timed out")
		return models.FailedOutcome(diagnosticOr(outcome.Diagnostic, "fetch exceeded timeout"))
	case interfaces.FetchFailed:
		log.Warn().Str("diagnostic", outcome.Diagnostic).Msg("Cause-list fetch failed")
		return models.FailedOutcome(diagnosticOr(outcome.Diagnostic, "fetch failed"))
	}

	snapshot, err := s.ingestor.Run(ctx)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoDocuments) {
			// Data absence is not a failure: the fetch produced nothing
			// to ingest and the prior snapshot remains the visible state.
			log.Info().Msg("Fetch deposited no documents; store left untouched")
			return models.SuccessOutcome()
		}
		log.Error().Err(err).Msg("Batch ingestion failed")
		return models.FailedOutcome(err.Error())
	}

	if err := s.store.WriteSnapshot(ctx, snapshot); err != nil {
		log.Error().Err(err).Msg("Failed to persist ingestion snapshot")
		return models.FailedOutcome(err.Error())
	}

	log.Info().
		Int("documents", len(snapshot.Documents)).
		Int("records", snapshot.RecordCount()).
		Msg("Cause-list pipeline complete")

	return models.SuccessOutcome()
}

// lookupResponse pairs the payload with the outcome for singleflight.
type lookupResponse struct {
	result  models.LookupResult
	outcome models.PipelineOutcome
}

// LookupCase runs one single-case fetch cycle for a CNR, persists the
// resulting payload, and returns it with the pipeline outcome.
func (s *Service) LookupCase(ctx context.Context, cnr string) (models.LookupResult, models.PipelineOutcome) {
	key := "cnr:" + cnr
	v, _, shared := s.group.Do(key, func() (interface{}, error) {
		result, outcome := s.lookupCase(ctx, cnr)
		return lookupResponse{result: result, outcome: outcome}, nil
	})
	if shared {
		s.logger.Debug().Str("key", key).Msg("Joined in-flight fetch for identical request")
	}
	resp := v.(lookupResponse)
	return resp.result, resp.outcome
}

func (s *Service) lookupCase(ctx context.Context, cnr string) (models.LookupResult, models.PipelineOutcome) {
	runID := uuid.New().String()
	log := s.logger.WithCorrelationId(runID)

	log.Info().Str("cnr", cnr).Msg("Starting case-lookup pipeline")

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, outcome := s.fetcher.FetchCaseDetails(fetchCtx, cnr)
	switch outcome.Status {
	case interfaces.FetchTimeout:
		log.Warn().Str("diagnostic", outcome.Diagnostic).Msg("Case lookup timed out")
		return nil, models.FailedOutcome(diagnosticOr(outcome.Diagnostic, "fetch exceeded timeout"))
	case interfaces.FetchFailed:
		log.Warn().Str("diagnostic", outcome.Diagnostic).Msg("Case lookup failed")
		return nil, models.FailedOutcome(diagnosticOr(outcome.Diagnostic, "fetch failed"))
	}

	if result == nil {
		result = models.LookupResult{}
	}

	if err := s.store.WriteResults(ctx, result); err != nil {
		log.Error().Err(err).Msg("Failed to persist lookup result")
		return nil, models.FailedOutcome(err.Error())
	}

	log.Info().Str("cnr", cnr).Int("fields", len(result)).Msg("Case-lookup pipeline complete")

	return result, models.SuccessOutcome()
}

func diagnosticOr(diagnostic, fallback string) string {
	if diagnostic != "" {
		return diagnostic
	}
	return fallback
}
