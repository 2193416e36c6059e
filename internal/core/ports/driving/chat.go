package driving

import (
	"context"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// ChatService answers natural-language questions grounded in an
// uploaded document's collection.
type ChatService interface {
	// Chat searches the collection for chunks relevant to the query and
	// generates an answer constrained to them. Retrieval that finds
	// nothing, or an unavailable LLM, degrades to an explanatory
	// response rather than an error.
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResult, error)
}
