package driving

import (
	"context"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// DocumentService ingests uploaded documents into the grounding service.
type DocumentService interface {
	// Upload runs the full ingestion pipeline for one file: extract
	// text, chunk it, create a dedicated collection, and submit the
	// chunks for vectorization. Returns domain.ErrUnsupportedFormat
	// (possibly wrapped) when the file cannot be decoded.
	Upload(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error)
}
