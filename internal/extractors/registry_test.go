package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor is a test double recording which files reached it.
type fakeExtractor struct {
	extensions []string
	out        string
	err        error
	calls      int
}

func (f *fakeExtractor) Extensions() []string {
	return f.extensions
}

func (f *fakeExtractor) Extract(_ string, _ []byte) (string, error) {
	f.calls++
	return f.out, f.err
}

func TestRegistry_DispatchByExtension(t *testing.T) {
	fallback := &fakeExtractor{extensions: []string{".txt"}, out: "text"}
	special := &fakeExtractor{extensions: []string{".pdf"}, out: "pdf"}

	registry := NewRegistry(fallback)
	registry.Register(special)

	got, err := registry.Extract("report.pdf", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "pdf", got)
	assert.Equal(t, 1, special.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestRegistry_ExtensionCaseInsensitive(t *testing.T) {
	fallback := &fakeExtractor{extensions: []string{".txt"}, out: "text"}
	special := &fakeExtractor{extensions: []string{".pdf"}, out: "pdf"}

	registry := NewRegistry(fallback)
	registry.Register(special)

	got, err := registry.Extract("REPORT.PDF", nil)
	require.NoError(t, err)
	assert.Equal(t, "pdf", got)
}

func TestRegistry_UnknownExtensionUsesFallback(t *testing.T) {
	fallback := &fakeExtractor{extensions: []string{".txt"}, out: "text"}

	registry := NewRegistry(fallback)

	for _, filename := range []string{"notes.rst", "README", "archive.tar.gz", ""} {
		got, err := registry.Extract(filename, nil)
		require.NoError(t, err)
		assert.Equal(t, "text", got)
	}
	assert.Equal(t, 4, fallback.calls)
}

func TestRegistry_SupportedExtensions(t *testing.T) {
	fallback := &fakeExtractor{extensions: []string{".txt", ".md"}}
	special := &fakeExtractor{extensions: []string{".pdf"}}

	registry := NewRegistry(fallback)
	registry.Register(special)

	assert.Equal(t, []string{".md", ".pdf", ".txt"}, registry.SupportedExtensions())
}
