package badger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/common"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(arbor.NewLogger(), &common.BadgerConfig{
		Path: filepath.Join(t.TempDir(), "db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestReadEmptySlots(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.ReadSnapshot(ctx)
	assert.ErrorIs(t, err, interfaces.ErrSlotEmpty)

	_, err = store.ReadResults(ctx)
	assert.ErrorIs(t, err, interfaces.ErrSlotEmpty)
}

func TestSlotRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snapshot := &models.IngestionSnapshot{
		GeneratedAt: time.Now().UTC(),
		Documents: []models.ParseResult{
			{File: "list.pdf", Records: []models.Record{
				models.NewSerialEntry("1", "1. State vs Doe"),
				models.NewCourtHeader("Court No. 3"),
			}},
		},
	}
	require.NoError(t, store.WriteSnapshot(ctx, snapshot))

	read, err := store.ReadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, read.RecordCount())
	assert.Equal(t, snapshot.Documents, read.Documents)

	// Results slot is still untouched
	_, err = store.ReadResults(ctx)
	assert.ErrorIs(t, err, interfaces.ErrSlotEmpty)

	results := models.LookupResult{"cnr": "KABC010012342023"}
	require.NoError(t, store.WriteResults(ctx, results))

	readResults, err := store.ReadResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, "KABC010012342023", readResults["cnr"])
}

func TestWriteReplacesWholesale(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.WriteResults(ctx, models.LookupResult{"a": "1", "b": "2"}))
	require.NoError(t, store.WriteResults(ctx, models.LookupResult{"c": "3"}))

	read, err := store.ReadResults(ctx)
	require.NoError(t, err)
	assert.Len(t, read, 1)
	assert.Equal(t, "3", read["c"])
}
