package extractors

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches uploads to extractors by filename extension.
// Unknown extensions fall back to the configured default extractor,
// so any UTF-8 text file is accepted regardless of its name.
type Registry struct {
	byExtension map[string]driven.Extractor
	fallback    driven.Extractor
}

// NewRegistry creates a registry with the given fallback extractor.
// The fallback is also registered for its own extensions.
func NewRegistry(fallback driven.Extractor) *Registry {
	r := &Registry{
		byExtension: make(map[string]driven.Extractor),
		fallback:    fallback,
	}
	r.Register(fallback)
	return r
}

// Register adds an extractor, replacing any previous registration for
// the same extensions.
func (r *Registry) Register(extractor driven.Extractor) {
	for _, ext := range extractor.Extensions() {
		r.byExtension[strings.ToLower(ext)] = extractor
	}
}

// Extract decodes an upload using the extractor registered for the
// file's extension, or the fallback when none matches.
func (r *Registry) Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if extractor, ok := r.byExtension[ext]; ok {
		return extractor.Extract(filename, data)
	}
	return r.fallback.Extract(filename, data)
}

// SupportedExtensions returns all extensions with a dedicated
// extractor, sorted for stable output.
func (r *Registry) SupportedExtensions() []string {
	extensions := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}
