package driven

import (
	"context"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// GroundingStore manages vector collections hosted by the remote
// document-grounding service. The store owns no durable state of its
// own: collections, documents, and embeddings all live remotely, and
// every call is a thin authenticated RPC.
//
// Implementations may include:
//   - SAP AI Core Document Grounding (vector data repositories)
type GroundingStore interface {
	// CreateCollection provisions an empty collection and returns its
	// service-assigned identifier.
	CreateCollection(ctx context.Context, title string) (string, error)

	// Ingest submits a document's chunks to a collection. The service
	// embeds and indexes them; the payload is discarded afterwards.
	Ingest(ctx context.Context, collectionID string, payload domain.IngestPayload) error

	// Search retrieves the chunks most relevant to query from one
	// collection, capped at maxChunks. The response keeps the service's
	// nested wire shape; callers flatten it before use.
	Search(ctx context.Context, collectionID, query string, maxChunks int) (*domain.SearchResponse, error)

	// ListCollections returns all collections in the configured
	// resource group.
	ListCollections(ctx context.Context) ([]domain.Collection, error)

	// DeleteCollection removes a collection and all its documents.
	// Returns domain.ErrNotFound when the collection does not exist.
	DeleteCollection(ctx context.Context, id string) error

	// Ping validates the service is reachable and the credentials are
	// accepted by making a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
