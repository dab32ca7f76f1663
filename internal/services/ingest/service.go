// -----------------------------------------------------------------------
// Batch Ingestor - scan the intake location and parse every document
// into one ingestion snapshot
// -----------------------------------------------------------------------

package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/models"
	"github.com/ternarybob/causelist/internal/services/parser"
)

// Service runs the document parser over every PDF in the intake location
type Service struct {
	parser    *parser.Service
	intakeDir string
	logger    arbor.ILogger
}

// NewService creates a new batch ingestor over the given intake directory
func NewService(docParser *parser.Service, intakeDir string, logger arbor.ILogger) *Service {
	return &Service{
		parser:    docParser,
		intakeDir: intakeDir,
		logger:    logger,
	}
}

// Run enumerates the intake directory and parses each document
// independently. Parse failures are absorbed per document (an empty
// record list stays in the snapshot); an empty intake returns
// ErrNoDocuments, which is a data-absence condition rather than a
// processing failure.
func (s *Service) Run(ctx context.Context) (*models.IngestionSnapshot, error) {
	entries, err := os.ReadDir(s.intakeDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, interfaces.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to read intake directory %s: %w", s.intakeDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(s.intakeDir, entry.Name()))
		}
	}

	if len(files) == 0 {
		s.logger.Info().Str("dir", s.intakeDir).Msg("No documents in intake location")
		return nil, interfaces.ErrNoDocuments
	}

	snapshot := &models.IngestionSnapshot{
		GeneratedAt: time.Now().UTC(),
		Documents:   make([]models.ParseResult, 0, len(files)),
	}

	for _, file := range files {
		snapshot.Documents = append(snapshot.Documents, s.parser.Parse(ctx, file))
	}

	s.logger.Info().
		Int("documents", len(snapshot.Documents)).
		Int("records", snapshot.RecordCount()).
		Msg("Ingestion batch complete")

	return snapshot, nil
}
