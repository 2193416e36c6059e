// Package chunker splits extracted document text into bounded-size
// chunks along semantic boundaries.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// DefaultTargetSize is the default chunk size budget in characters.
const DefaultTargetSize = 500

// sentenceBoundary matches sentence-ending punctuation followed by
// whitespace. The punctuation stays attached to the preceding sentence
// so generated answers can quote snippets verbatim.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// Splitter chunks text by grouping paragraphs, falling back to grouping
// sentences when the text has no paragraph breaks. The target size is
// an approximate character budget, not a hard cap: a paragraph or
// sentence larger than the budget becomes its own oversized chunk
// rather than being cut mid-unit.
type Splitter struct {
	targetSize int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithTargetSize sets the chunk size budget in characters.
func WithTargetSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.targetSize = size
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		targetSize: DefaultTargetSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// TargetSize returns the configured chunk size budget.
func (s *Splitter) TargetSize() int {
	return s.targetSize
}

// Split chunks text into an ordered sequence of bounded-size chunks.
// It never fails and never discards input: text without any paragraph
// or sentence boundary comes back as a single chunk. Empty or
// whitespace-only text produces no chunks.
func (s *Splitter) Split(text string) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	paragraphs := splitParagraphs(text)

	var parts []string
	if len(paragraphs) > 1 {
		parts = pack(paragraphs, s.targetSize, "\n\n")
	} else {
		// One giant paragraph: group sentences instead.
		parts = pack(splitSentences(paragraphs[0]), s.targetSize, " ")
	}
	if len(parts) == 0 {
		parts = []string{paragraphs[0]}
	}

	chunks := make([]domain.Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, domain.Chunk{Text: part, Index: i})
	}

	return chunks
}

// splitParagraphs splits text on blank-line boundaries and drops
// empty or whitespace-only paragraphs.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

// splitSentences splits text after sentence-ending punctuation. The
// whitespace between sentences is consumed; the punctuation is not.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, m := range sentenceBoundary.FindAllStringIndex(text, -1) {
		if unit := text[start : m[0]+1]; strings.TrimSpace(unit) != "" {
			sentences = append(sentences, unit)
		}
		start = m[1]
	}
	if start < len(text) {
		if unit := text[start:]; strings.TrimSpace(unit) != "" {
			sentences = append(sentences, unit)
		}
	}
	return sentences
}

// pack greedily groups units into chunks of roughly targetSize
// characters. A running chunk is flushed only once it has content, so
// a single unit over the budget becomes its own oversized chunk. Unit
// sizes are counted without the join separator.
func pack(units []string, targetSize int, sep string) []string {
	var (
		chunks  []string
		current []string
		size    int
	)

	for _, unit := range units {
		unitSize := utf8.RuneCountInString(unit)

		if size+unitSize > targetSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, sep))
			current = []string{unit}
			size = unitSize
			continue
		}

		current = append(current, unit)
		size += unitSize
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, sep))
	}

	return chunks
}
