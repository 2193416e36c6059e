// Package pdf extracts text from PDF uploads.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/custodia-labs/groundchat/internal/core/domain"
	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents. Text is extracted per page in
// document order; pages are joined with a blank line so page
// boundaries survive into chunking.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract parses the PDF and returns the concatenated page text.
// Returns domain.ErrUnsupportedFormat when the bytes are not a
// parseable PDF or when no page yields any text (scanned or image-only
// documents).
func (e *Extractor) Extract(_ string, data []byte) (text string, err error) {
	// The parser panics on some malformed inputs; treat those as an
	// unsupported file rather than crashing the request.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: failed to process PDF file: %v", domain.ErrUnsupportedFormat, r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to process PDF file: %v", domain.ErrUnsupportedFormat, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: failed to process PDF file: %v", domain.ErrUnsupportedFormat, err)
		}
		pages = append(pages, content)
	}

	extracted := strings.Join(pages, "\n\n")
	if strings.TrimSpace(extracted) == "" {
		return "", fmt.Errorf("%w: PDF file appears to be empty or contains no extractable text",
			domain.ErrUnsupportedFormat)
	}

	return extracted, nil
}
