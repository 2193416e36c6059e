package domain

// UploadRequest carries one uploaded file into the ingestion pipeline.
// The raw bytes are transient: they are decoded once and discarded.
type UploadRequest struct {
	// Filename is the original name of the uploaded file. Its extension
	// selects the text extractor; when empty, a content-hash name is
	// generated for the document.
	Filename string

	// Data is the raw uploaded file content.
	Data []byte

	// ChunkSize is the approximate character budget per chunk.
	// Zero or negative selects the configured default.
	ChunkSize int

	// Metadata holds optional caller-supplied document metadata,
	// recorded alongside the built-in entries on ingestion.
	Metadata map[string]string
}

// UploadResult reports the outcome of a successful document upload.
type UploadResult struct {
	// CollectionID identifies the collection created for this document.
	// Subsequent chat requests search against it.
	CollectionID string `json:"collection_id"`

	// DocumentName is the name the document was ingested under.
	DocumentName string `json:"document_name"`

	// ChunksCount is the number of chunks submitted for vectorization.
	ChunksCount int `json:"chunks_count"`

	// Message is a human-readable summary of the upload.
	Message string `json:"message,omitempty"`
}
