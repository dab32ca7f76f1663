package interfaces

import (
	"context"

	"github.com/ternarybob/causelist/internal/models"
)

// Orchestrator drives one fetch+ingest cycle per request and reports a
// pipeline outcome. Handlers depend on this interface so they can be
// tested without a real fetch.
type Orchestrator interface {
	// RefreshCauseList fetches and ingests the cause list for a
	// jurisdiction and relative day.
	RefreshCauseList(ctx context.Context, state, day string) models.PipelineOutcome

	// LookupCase fetches and persists the details for one CNR.
	LookupCase(ctx context.Context, cnr string) (models.LookupResult, models.PipelineOutcome)
}
