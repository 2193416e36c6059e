// Package prompt composes grounding prompts for LLM answer generation.
package prompt

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// DefaultTemplate is the built-in document QA template. It instructs
// the model to answer strictly from the supplied context and to state
// clearly when the context is insufficient. The template expects two
// %s placeholders: the rendered context block and the user query,
// in that order.
const DefaultTemplate = `You are a helpful assistant that answers questions based on the provided document context.

Context from documents:
%s

User question: %s

Instructions:
- Answer the question based ONLY on the information provided in the context above
- If the context doesn't contain enough information to answer the question, say so clearly
- Be concise and accurate
- Cite specific parts of the context when relevant

Answer:
`

// RenderContext renders retrieved chunks as one-indexed, explicitly
// numbered blocks joined by blank lines. Input order is preserved: the
// chunks arrive in the grounding service's relevance order and no
// re-ranking happens here.
func RenderContext(chunks []domain.RetrievedChunk) string {
	blocks := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		blocks = append(blocks, fmt.Sprintf("[Document chunk %d]:\n%s", i+1, chunk.Content))
	}
	return strings.Join(blocks, "\n\n")
}

// Compose renders chunks and the query into the built-in template.
// Pure and total; empty chunks produce a prompt with an empty context
// block, which callers are expected to avoid by skipping the LLM call.
func Compose(chunks []domain.RetrievedChunk, query string) string {
	return ComposeWith(DefaultTemplate, chunks, query)
}

// ComposeWith renders chunks and the query into a custom template
// carrying two %s placeholders (context first, query second).
func ComposeWith(template string, chunks []domain.RetrievedChunk, query string) string {
	return fmt.Sprintf(template, RenderContext(chunks), query)
}
