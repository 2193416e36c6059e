package driven

// Extractor decodes one class of uploaded file into plain text.
// Extraction is CPU-bound and bounded by input size, so it takes no
// context; only remote calls are cancellable.
type Extractor interface {
	// Extensions returns the lowercase filename extensions this
	// extractor handles, including the leading dot.
	Extensions() []string

	// Extract decodes raw uploaded bytes into a single UTF-8 string.
	// Returns domain.ErrUnsupportedFormat (possibly wrapped) when the
	// bytes cannot be decoded.
	Extract(filename string, data []byte) (string, error)
}

// ExtractorRegistry selects the appropriate extractor for an upload.
// Dispatch is by filename extension, with plain text as the fallback
// for unknown extensions.
type ExtractorRegistry interface {
	// Extract decodes an upload using the best matching extractor.
	Extract(filename string, data []byte) (string, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedExtensions returns all extensions with a dedicated extractor.
	SupportedExtensions() []string
}
