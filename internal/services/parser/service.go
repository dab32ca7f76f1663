// -----------------------------------------------------------------------
// Document Parser - read a document's text in page order and classify
// each line into cause-list records
// -----------------------------------------------------------------------

package parser

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/models"
	"github.com/ternarybob/causelist/internal/services/classifier"
)

// Service parses one source document into a ParseResult
type Service struct {
	extractor interfaces.PDFExtractor
	logger    arbor.ILogger
}

// NewService creates a new document parser
func NewService(extractor interfaces.PDFExtractor, logger arbor.ILogger) *Service {
	return &Service{
		extractor: extractor,
		logger:    logger,
	}
}

// Parse extracts the document's text in page order, classifies each
// trimmed line, and returns the records in line order. A document that
// fails to open or decode is a local failure: the result carries an
// empty record list and ingestion of the remaining batch continues.
func (s *Service) Parse(ctx context.Context, filePath string) models.ParseResult {
	result := models.ParseResult{
		File:    filePath,
		Records: []models.Record{},
	}

	pages, err := s.extractor.ExtractPages(ctx, filePath)
	if err != nil {
		s.logger.Warn().Err(err).Str("file", filePath).Msg("Failed to extract document text")
		return result
	}

	var text strings.Builder
	for _, page := range pages {
		text.WriteString(page.Text)
		text.WriteString("\n")
	}

	for _, line := range strings.Split(text.String(), "\n") {
		line = strings.TrimSpace(line)
		if record, ok := classifier.Classify(line); ok {
			result.Records = append(result.Records, record)
		}
	}

	s.logger.Debug().
		Str("file", filePath).
		Int("pages", len(pages)).
		Int("records", len(result.Records)).
		Msg("Parsed document")

	return result
}
