// -----------------------------------------------------------------------
// PDF Extractor - Extract text content from cause-list PDF documents
// Uses pdfcpu for Go-native PDF processing
// -----------------------------------------------------------------------

package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/interfaces"
)

// pageFileMarker is the page-number marker in pdfcpu's extracted content
// file names, which take the form <basename>_Content_page_<N>.txt.
const pageFileMarker = "Content_page_"

// Extractor implements the PDFExtractor interface using pdfcpu
type Extractor struct {
	logger  arbor.ILogger
	tempDir string
}

// Compile-time interface assertion
var _ interfaces.PDFExtractor = (*Extractor)(nil)

// NewExtractor creates a new PDF extractor
func NewExtractor(logger arbor.ILogger) *Extractor {
	return &Extractor{
		logger:  logger,
		tempDir: filepath.Join(os.TempDir(), "causelist-pdf"),
	}
}

// ExtractPages extracts text content by page from a PDF file, in page
// order. A file that cannot be read or decoded returns an error; the
// caller decides how to recover.
func (e *Extractor) ExtractPages(ctx context.Context, filePath string) ([]interfaces.PDFPageContent, error) {
	pdfCtx, err := api.ReadContextFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	pageCount := pdfCtx.PageCount

	// pdfcpu extracts page content to files, so stage through a unique
	// per-call output directory. Concurrent extractions of the same
	// document must not share a directory: each call deletes its own on
	// return.
	if err := os.MkdirAll(e.tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create extraction directory: %w", err)
	}
	outDir, err := os.MkdirTemp(e.tempDir, "pages_"+sanitizeName(filePath)+"_")
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(filePath, outDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract PDF content: %w", err)
	}

	// Read extracted content files, keyed by page number
	files, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read extracted content: %w", err)
	}
	pageTexts := make(map[int]string)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		pageNum, ok := pageNumberFromName(file.Name())
		if !ok {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read extracted page %d: %w", pageNum, err)
		}
		pageTexts[pageNum] = contentText(string(content))
	}

	pages := make([]interfaces.PDFPageContent, 0, pageCount)
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		pages = append(pages, interfaces.PDFPageContent{
			PageNumber: pageNum,
			Text:       pageTexts[pageNum],
		})
	}

	return pages, nil
}

// pageNumberFromName parses the page number out of an extracted content
// file name. The marker sits at the tail of the name, after the source
// document's basename.
func pageNumberFromName(name string) (int, bool) {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	idx := strings.LastIndex(name, pageFileMarker)
	if idx < 0 {
		return 0, false
	}
	pageNum, err := strconv.Atoi(name[idx+len(pageFileMarker):])
	if err != nil || pageNum < 1 {
		return 0, false
	}
	return pageNum, true
}

// contentText converts a page's raw content stream into plain text.
// pdfcpu extracts the decoded operator stream, not rendered text, so the
// show-text operands (Tj, TJ, ', ") are unwrapped here: each show
// operation becomes one line, and strings within one TJ array are
// concatenated.
func contentText(raw string) string {
	var lines []string
	var pending strings.Builder

	flush := func() {
		if s := strings.TrimSpace(pending.String()); s != "" {
			lines = append(lines, s)
		}
		pending.Reset()
	}

	for i := 0; i < len(raw); {
		switch raw[i] {
		case '(':
			text, next := parseLiteralString(raw, i)
			pending.WriteString(text)
			i = next
		case 'T':
			if i+1 < len(raw) && (raw[i+1] == 'j' || raw[i+1] == 'J') {
				flush()
				i += 2
				continue
			}
			i++
		case '\'', '"':
			flush()
			i++
		default:
			i++
		}
	}
	flush()

	return strings.Join(lines, "\n")
}

// parseLiteralString consumes one PDF literal string starting at the
// opening parenthesis and returns its unescaped text and the index just
// past the closing parenthesis. Balanced nested parentheses are part of
// the string per the PDF syntax.
func parseLiteralString(raw string, start int) (string, int) {
	var b strings.Builder
	depth := 1
	i := start + 1
	for i < len(raw) && depth > 0 {
		c := raw[i]
		switch c {
		case '\\':
			if i+1 >= len(raw) {
				i++
				continue
			}
			switch raw[i+1] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '(', ')', '\\':
				b.WriteByte(raw[i+1])
			}
			i += 2
		case '(':
			depth++
			b.WriteByte(c)
			i++
		case ')':
			depth--
			if depth > 0 {
				b.WriteByte(c)
			}
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), i
}

// sanitizeName reduces a file path to a string safe for use in a
// directory name.
func sanitizeName(path string) string {
	base := filepath.Base(path)
	out := make([]byte, 0, len(base))
	for i := 0; i < len(base); i++ {
		c := base[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}
