package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
}

func TestExtensions(t *testing.T) {
	extractor := New()
	assert.Equal(t, []string{".pdf"}, extractor.Extensions())
}

func TestExtract_NotAPDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty input", data: nil},
		{name: "plain text bytes", data: []byte("just some text, not a pdf")},
		{name: "binary garbage", data: []byte{0x00, 0x01, 0x02, 0x03, 0xff}},
		{name: "truncated header", data: []byte("%PDF-1.7\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := New()
			got, err := extractor.Extract("broken.pdf", tt.data)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
			assert.Empty(t, got)
		})
	}
}
