package domain

// ChatRequest is one grounded question against a collection.
type ChatRequest struct {
	// CollectionID identifies the collection to search.
	CollectionID string

	// Query is the natural-language question.
	Query string

	// MaxChunks caps the number of retrieved chunks (1-20).
	// Zero selects the configured default.
	MaxChunks int

	// Model names the LLM used for answer generation.
	// Empty selects the configured default.
	Model string

	// Temperature controls generation randomness (0.0-2.0).
	// Nil selects the configured default; an explicit 0.0 is honoured.
	Temperature *float64

	// MaxTokens caps the generated answer length.
	// Zero selects the configured default.
	MaxTokens int
}

// ChatResult is the answer to a grounded question together with the
// evidence it was generated from.
type ChatResult struct {
	// CollectionID echoes the collection that was searched.
	CollectionID string `json:"collection_id"`

	// Query echoes the user's question.
	Query string `json:"query"`

	// Response is the generated answer. When retrieval finds nothing,
	// or the LLM is unavailable, it carries an explanatory message
	// instead of a generated answer.
	Response string `json:"response"`

	// Chunks are the retrieved passages the answer is grounded in,
	// in the grounding service's relevance order.
	Chunks []RetrievedChunk `json:"chunks"`

	// ChunksFound is the number of retrieved passages.
	ChunksFound int `json:"chunks_found"`
}
