// -----------------------------------------------------------------------
// Badger Store - slot storage backed by BadgerDB. Each slot is one
// record replaced wholesale per write; badgerhold upserts run in a
// single transaction, so readers see the previous or the next value.
// -----------------------------------------------------------------------

package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/common"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

const (
	slotParsedData = "parsed-data"
	slotResults    = "results"
)

// slotRecord is the stored representation of one slot
type slotRecord struct {
	Slot      string `badgerhold:"key"`
	Data      []byte
	UpdatedAt time.Time
}

// Store implements the Store interface for Badger
type Store struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.Store = (*Store)(nil)

// NewStore creates a Badger-backed store
func NewStore(logger arbor.ILogger, config *common.BadgerConfig) (*Store, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("path", config.Path).Msg("Badger store initialized")

	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// ReadSnapshot returns the parsed-data slot, or ErrSlotEmpty if it has
// never been written.
func (s *Store) ReadSnapshot(ctx context.Context) (*models.IngestionSnapshot, error) {
	var snapshot models.IngestionSnapshot
	if err := s.readSlot(slotParsedData, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// WriteSnapshot replaces the parsed-data slot wholesale.
func (s *Store) WriteSnapshot(ctx context.Context, snapshot *models.IngestionSnapshot) error {
	return s.writeSlot(slotParsedData, snapshot)
}

// ReadResults returns the results slot, or ErrSlotEmpty if it has never
// been written.
func (s *Store) ReadResults(ctx context.Context) (models.LookupResult, error) {
	var results models.LookupResult
	if err := s.readSlot(slotResults, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteResults replaces the results slot wholesale.
func (s *Store) WriteResults(ctx context.Context, results models.LookupResult) error {
	return s.writeSlot(slotResults, results)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) readSlot(slot string, value any) error {
	var record slotRecord
	err := s.db.Store().Get(slot, &record)
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrSlotEmpty
	}
	if err != nil {
		return fmt.Errorf("failed to read store slot %s: %w", slot, err)
	}

	if err := json.Unmarshal(record.Data, value); err != nil {
		return fmt.Errorf("failed to decode store slot %s: %w", slot, err)
	}
	return nil
}

func (s *Store) writeSlot(slot string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode store slot %s: %w", slot, err)
	}

	record := slotRecord{
		Slot:      slot,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.db.Store().Upsert(slot, &record); err != nil {
		return fmt.Errorf("failed to write store slot %s: %w", slot, err)
	}

	s.logger.Debug().Str("slot", slot).Int("bytes", len(data)).Msg("Store slot written")
	return nil
}
