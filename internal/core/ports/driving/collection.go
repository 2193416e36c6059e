package driving

import (
	"context"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// CollectionService manages the remotely hosted vector collections.
type CollectionService interface {
	// List returns all collections in the configured resource group.
	List(ctx context.Context) ([]domain.Collection, error)

	// Delete removes a collection and all its documents.
	// Returns domain.ErrNotFound when the collection does not exist.
	Delete(ctx context.Context, id string) error
}
