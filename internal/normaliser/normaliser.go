// Package normaliser flattens the grounding service's nested search
// responses into flat, order-preserving chunk lists.
//
// The response shape is owned by the remote API, so the flattening
// degrades rather than fails: anything missing yields fewer chunks,
// never an error.
package normaliser

import (
	"strings"

	"github.com/custodia-labs/groundchat/internal/core/domain"
	"github.com/custodia-labs/groundchat/internal/logger"
)

// Flatten converts a search response tree into the flat chunk list the
// rest of the system consumes. The four nesting levels (filter result,
// repository result, document, chunk) are walked in encounter order
// with no re-sorting. A response without the top-level results list
// logs a warning and yields an empty slice; a missing inner level
// simply contributes no chunks. The result is never nil.
func Flatten(resp *domain.SearchResponse) []domain.RetrievedChunk {
	chunks := []domain.RetrievedChunk{}

	if resp == nil || resp.Results == nil {
		logger.Warn("search response missing expected results field, returning no chunks")
		return chunks
	}

	for _, filterResult := range resp.Results {
		for _, repoResult := range filterResult.Results {
			for _, document := range repoResult.DataRepository.Documents {
				for _, chunk := range document.Chunks {
					chunks = append(chunks, domain.RetrievedChunk{
						Content:  chunk.Content,
						Score:    chunk.SearchScores.AggregatedScore.Value,
						Metadata: flattenMetadata(chunk.Metadata),
					})
				}
			}
		}
	}

	return chunks
}

// flattenMetadata reduces metadata entries to plain string pairs:
// a single-element value list unwraps to its bare string, a
// multi-element list joins with ", ". Duplicate keys overwrite
// earlier ones, so the last occurrence wins.
func flattenMetadata(entries []domain.MetadataEntry) map[string]string {
	metadata := make(map[string]string, len(entries))
	for _, entry := range entries {
		if len(entry.Value) == 1 {
			metadata[entry.Key] = entry.Value[0]
			continue
		}
		metadata[entry.Key] = strings.Join(entry.Value, ", ")
	}
	return metadata
}
