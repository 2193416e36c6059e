package domain

// SearchResponse is the wire shape returned by the grounding service's
// retrieval endpoint. Hits nest four levels deep: one entry per search
// filter, then per data repository, then per document, then the chunks
// themselves. The tree is decoded once per search and flattened
// immediately into RetrievedChunk records.
type SearchResponse struct {
	Results []FilterResult `json:"results"`
}

// FilterResult holds the hits for a single search filter.
type FilterResult struct {
	Results []RepositoryResult `json:"results"`
}

// RepositoryResult wraps one data repository's matches.
type RepositoryResult struct {
	DataRepository DataRepository `json:"dataRepository"`
}

// DataRepository groups the matched documents of one repository.
type DataRepository struct {
	Documents []SearchDocument `json:"documents"`
}

// SearchDocument holds the matched chunks of one document.
type SearchDocument struct {
	Chunks []SearchChunk `json:"chunks"`
}

// SearchChunk is a single matched chunk as the grounding service
// returns it, with its metadata entries and nested score block.
type SearchChunk struct {
	Content      string          `json:"content"`
	Metadata     []MetadataEntry `json:"metadata"`
	SearchScores SearchScores    `json:"searchScores"`
}

// SearchScores carries the relevance scoring block of a chunk.
// A zero value means the service reported no score.
type SearchScores struct {
	AggregatedScore AggregatedScore `json:"aggregatedScore"`
}

// AggregatedScore is the combined relevance score for a chunk.
type AggregatedScore struct {
	Value float64 `json:"value"`
}

// RetrievedChunk is one flattened search hit: the chunk text, its
// relevance score, and its metadata reduced to plain string pairs.
// Order follows the traversal of the SearchResponse tree.
type RetrievedChunk struct {
	// Content is the chunk text.
	Content string `json:"content"`

	// Score is the relevance score (0.0-1.0). Defaults to 0.0 when the
	// service omits the score block.
	Score float64 `json:"score"`

	// Metadata holds the chunk's metadata flattened to string values.
	Metadata map[string]string `json:"metadata"`
}
