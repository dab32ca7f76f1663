package interfaces

import (
	"context"

	"github.com/ternarybob/causelist/internal/models"
)

// Store is the persisted holder for the two independent data slots:
// the parsed-data slot (ingestion snapshot) and the results slot
// (single-case lookup payload). Writes replace a slot wholesale and must
// be atomic with respect to concurrent readers; a reader never observes
// a partially written value. Reads of a never-written slot return
// ErrSlotEmpty, which is a data-absence condition, not a failure.
type Store interface {
	ReadSnapshot(ctx context.Context) (*models.IngestionSnapshot, error)
	WriteSnapshot(ctx context.Context, snapshot *models.IngestionSnapshot) error

	ReadResults(ctx context.Context) (models.LookupResult, error)
	WriteResults(ctx context.Context, results models.LookupResult) error

	// Close releases any underlying resources.
	Close() error
}
