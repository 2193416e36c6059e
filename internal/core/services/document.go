package services

import (
	"context"
	"crypto/md5" //nolint:gosec // content fingerprint for naming, not a security boundary
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/groundchat/internal/chunker"
	"github.com/custodia-labs/groundchat/internal/core/domain"
	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
	"github.com/custodia-labs/groundchat/internal/core/ports/driving"
	"github.com/custodia-labs/groundchat/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// maxCollectionNameLength caps the sanitized filename portion of a
// collection title. The grounding service rejects overly long titles.
const maxCollectionNameLength = 32

// DocumentService runs the upload pipeline: extract text from the
// uploaded file, split it into chunks, create a dedicated collection
// and ingest the chunks for vectorization.
type DocumentService struct {
	extractors driven.ExtractorRegistry
	grounding  driven.GroundingStore
	chunkSize  int
}

// NewDocumentService creates a new document service. defaultChunkSize
// is the chunk target size used when a request does not carry one;
// values <= 0 fall back to the chunker default.
func NewDocumentService(
	extractors driven.ExtractorRegistry,
	grounding driven.GroundingStore,
	defaultChunkSize int,
) *DocumentService {
	if defaultChunkSize <= 0 {
		defaultChunkSize = chunker.DefaultTargetSize
	}
	return &DocumentService{
		extractors: extractors,
		grounding:  grounding,
		chunkSize:  defaultChunkSize,
	}
}

// Upload extracts text from the uploaded file, creates a collection
// named after the file and ingests the chunked text into it.
func (s *DocumentService) Upload(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error) {
	logger.Section("Document Upload")

	if s.grounding == nil {
		return nil, domain.ErrGroundingUnavailable
	}
	if s.extractors == nil {
		return nil, fmt.Errorf("extract text: no extractors registered")
	}
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}

	logger.Debug("Uploading %q (%d bytes)", req.Filename, len(req.Data))

	text, err := s.extractors.Extract(req.Filename, req.Data)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	logger.Debug("Extracted %d characters", utf8.RuneCountInString(text))

	collectionID, err := s.grounding.CreateCollection(ctx, collectionTitle(req.Filename))
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	logger.Info("Created collection %s", collectionID)

	size := req.ChunkSize
	if size <= 0 {
		size = s.chunkSize
	}
	chunks := chunker.New(chunker.WithTargetSize(size)).Split(text)
	logger.Debug("Split text into %d chunks (target size %d)", len(chunks), size)

	documentName := req.Filename
	if documentName == "" {
		documentName = fingerprintName(text)
	}

	payload := domain.NewIngestPayload(documentName, chunks, req.Metadata)
	if err := s.grounding.Ingest(ctx, collectionID, payload); err != nil {
		return nil, fmt.Errorf("ingest document: %w", err)
	}
	logger.Info("Ingested %q into collection %s (%d chunks)", documentName, collectionID, len(chunks))

	return &domain.UploadResult{
		CollectionID: collectionID,
		DocumentName: documentName,
		ChunksCount:  len(chunks),
		Message: fmt.Sprintf(
			"Successfully uploaded document '%s' to collection '%s'. Document was split into %d chunks and vectorized.",
			documentName, collectionID, len(chunks)),
	}, nil
}

// collectionTitle derives a collection title from a filename. Spaces
// become underscores, the result is lowercased and truncated, and a
// short random suffix keeps repeated uploads of the same file apart.
func collectionTitle(filename string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(filename, " ", "_"))
	if sanitized == "" {
		sanitized = "document"
	}
	if utf8.RuneCountInString(sanitized) > maxCollectionNameLength {
		sanitized = string([]rune(sanitized)[:maxCollectionNameLength])
	}
	return sanitized + "_" + uuid.NewString()[:8]
}

// fingerprintName names an unnamed document after its content hash so
// uploads without a filename still get a stable identifier.
func fingerprintName(text string) string {
	sum := md5.Sum([]byte(text)) //nolint:gosec // naming only
	return fmt.Sprintf("document_%x", sum[:4])
}
