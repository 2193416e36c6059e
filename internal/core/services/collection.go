package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/groundchat/internal/core/domain"
	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
	"github.com/custodia-labs/groundchat/internal/core/ports/driving"
	"github.com/custodia-labs/groundchat/internal/logger"
)

// Ensure CollectionService implements the interface.
var _ driving.CollectionService = (*CollectionService)(nil)

// CollectionService manages document collections in the grounding
// service.
type CollectionService struct {
	grounding driven.GroundingStore
}

// NewCollectionService creates a new collection service.
func NewCollectionService(grounding driven.GroundingStore) *CollectionService {
	return &CollectionService{grounding: grounding}
}

// List returns all collections visible to the configured resource
// group.
func (s *CollectionService) List(ctx context.Context) ([]domain.Collection, error) {
	if s.grounding == nil {
		return nil, domain.ErrGroundingUnavailable
	}

	collections, err := s.grounding.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	logger.Debug("Listed %d collections", len(collections))
	return collections, nil
}

// Delete removes a collection and all documents ingested into it.
func (s *CollectionService) Delete(ctx context.Context, id string) error {
	if s.grounding == nil {
		return domain.ErrGroundingUnavailable
	}
	if id == "" {
		return fmt.Errorf("%w: collection id must not be empty", domain.ErrInvalidInput)
	}

	if err := s.grounding.DeleteCollection(ctx, id); err != nil {
		return fmt.Errorf("delete collection %s: %w", id, err)
	}

	logger.Info("Deleted collection %s", id)
	return nil
}
