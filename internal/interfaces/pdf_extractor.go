// -----------------------------------------------------------------------
// PDF Extractor Interface - Extract text content from PDF documents
// -----------------------------------------------------------------------

package interfaces

import "context"

// PDFPageContent represents extracted content from a single PDF page.
type PDFPageContent struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
}

// PDFExtractor defines the interface for extracting text from PDF
// documents. Abstracting the backend keeps the document parser testable
// without real PDF bytes.
type PDFExtractor interface {
	// ExtractPages extracts text content by page from a PDF file on disk,
	// in page order.
	ExtractPages(ctx context.Context, filePath string) ([]PDFPageContent, error)
}
