// Package domain defines the core business entities for Groundchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A bounded slice of extracted document text
//   - IngestPayload: The wire shape the grounding service ingests
//   - SearchResponse: The nested wire shape the grounding service returns
//   - RetrievedChunk: A flattened search hit
//   - Collection: A remote vector collection descriptor
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
