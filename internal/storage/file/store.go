// -----------------------------------------------------------------------
// File Store - two JSON documents at fixed paths, one per slot.
// Writes go to a temp file and rename into place so a concurrent reader
// never observes a partially written slot.
// -----------------------------------------------------------------------

package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/common"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/models"
)

// Store implements the Store interface over two JSON files
type Store struct {
	parsedPath  string
	resultsPath string
	logger      arbor.ILogger
	mu          sync.RWMutex
}

// Compile-time interface assertion
var _ interfaces.Store = (*Store)(nil)

// NewStore creates a file-backed store at the configured paths
func NewStore(logger arbor.ILogger, config *common.FileStoreConfig) (*Store, error) {
	for _, path := range []string{config.ParsedPath, config.ResultsPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory for %s: %w", path, err)
		}
	}

	logger.Debug().
		Str("parsed_path", config.ParsedPath).
		Str("results_path", config.ResultsPath).
		Msg("File store initialized")

	return &Store{
		parsedPath:  config.ParsedPath,
		resultsPath: config.ResultsPath,
		logger:      logger,
	}, nil
}

// ReadSnapshot returns the parsed-data slot, or ErrSlotEmpty if it has
// never been written.
func (s *Store) ReadSnapshot(ctx context.Context) (*models.IngestionSnapshot, error) {
	var snapshot models.IngestionSnapshot
	if err := s.readSlot(s.parsedPath, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// WriteSnapshot replaces the parsed-data slot wholesale.
func (s *Store) WriteSnapshot(ctx context.Context, snapshot *models.IngestionSnapshot) error {
	return s.writeSlot(s.parsedPath, snapshot)
}

// ReadResults returns the results slot, or ErrSlotEmpty if it has never
// been written.
func (s *Store) ReadResults(ctx context.Context) (models.LookupResult, error) {
	var results models.LookupResult
	if err := s.readSlot(s.resultsPath, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteResults replaces the results slot wholesale.
func (s *Store) WriteResults(ctx context.Context, results models.LookupResult) error {
	return s.writeSlot(s.resultsPath, results)
}

// Close is a no-op for the file backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) readSlot(path string, value any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return interfaces.ErrSlotEmpty
		}
		return fmt.Errorf("failed to read store slot %s: %w", path, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("failed to decode store slot %s: %w", path, err)
	}
	return nil
}

// writeSlot serializes the value to a temp file in the slot's directory
// and renames it into place. Rename is atomic on the same filesystem.
func (s *Store) writeSlot(path string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store slot %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store slot %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace store slot %s: %w", path, err)
	}

	s.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Store slot written")
	return nil
}
