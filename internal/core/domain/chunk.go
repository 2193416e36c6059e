package domain

// Chunk represents a bounded-size slice of a document's extracted text.
// Chunks are the atomic unit sent to the grounding service for
// vectorization. They are created once by the chunker and never
// modified afterwards.
type Chunk struct {
	// Text is the chunk content.
	Text string

	// Index is the ordinal position within the source document.
	// Indices are contiguous from zero and double as the chunk's
	// position in the ingest payload.
	Index int
}
