// Package plaintext decodes UTF-8 text uploads.
package plaintext

import (
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/groundchat/internal/core/domain"
	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents. It is the registry fallback,
// so it also receives every upload with an unrecognised extension.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt", ".md"}
}

// Extract validates the bytes as UTF-8 and returns them as a string.
// Decoding is strict: binary content is rejected rather than lossily
// replaced, which would silently corrupt the document.
func (e *Extractor) Extract(_ string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file must be a text document (UTF-8 encoded) or a PDF file",
			domain.ErrUnsupportedFormat)
	}
	return string(data), nil
}
