package domain

import (
	"sort"
	"strconv"
)

// MetadataEntry is a single key with a list of string values. The
// grounding service encodes all document and chunk metadata in this
// shape, both on ingestion and in search responses.
type MetadataEntry struct {
	Key   string   `json:"key"`
	Value []string `json:"value"`
}

// IngestChunk is one chunk within an ingestion request.
type IngestChunk struct {
	Content  string          `json:"content"`
	Metadata []MetadataEntry `json:"metadata"`
}

// IngestDocument groups chunks with document-level metadata.
type IngestDocument struct {
	Metadata []MetadataEntry `json:"metadata"`
	Chunks   []IngestChunk   `json:"chunks"`
}

// IngestPayload is the request body for the grounding service's
// document ingestion endpoint.
type IngestPayload struct {
	Documents []IngestDocument `json:"documents"`
}

// NewIngestPayload wraps chunks and document metadata into the shape
// the grounding service ingests. The document always carries a "name"
// entry and a "source" entry marking it as a user upload; caller
// extras follow in sorted key order so the payload is deterministic.
// Each chunk records its own index as metadata so original order can
// be recovered after retrieval.
func NewIngestPayload(documentName string, chunks []Chunk, extra map[string]string) IngestPayload {
	metadata := []MetadataEntry{
		{Key: "name", Value: []string{documentName}},
		{Key: "source", Value: []string{"user_upload"}},
	}

	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		metadata = append(metadata, MetadataEntry{Key: key, Value: []string{extra[key]}})
	}

	ingestChunks := make([]IngestChunk, 0, len(chunks))
	for _, chunk := range chunks {
		ingestChunks = append(ingestChunks, IngestChunk{
			Content: chunk.Text,
			Metadata: []MetadataEntry{
				{Key: "chunk_index", Value: []string{strconv.Itoa(chunk.Index)}},
			},
		})
	}

	return IngestPayload{
		Documents: []IngestDocument{{
			Metadata: metadata,
			Chunks:   ingestChunks,
		}},
	}
}
