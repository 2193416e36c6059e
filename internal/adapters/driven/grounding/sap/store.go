// Package sap provides a grounding store adapter backed by the SAP AI
// Core Document Grounding service.
package sap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/groundchat/internal/core/domain"
	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.GroundingStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultEmbeddingModel = "text-embedding-ada-002"
	DefaultTimeout        = 60 * time.Second

	// DefaultRateLimit caps outbound grounding calls per second. AI Core
	// throttles aggressively on shared tenants.
	DefaultRateLimit = rate.Limit(10)
	DefaultRateBurst = 5
)

// groundingPath is the Document Grounding API prefix under the AI Core
// API URL.
const groundingPath = "/v2/lm/document-grounding"

// repositoryTypeVector marks searches against vector collections, as
// opposed to other data repository types the service offers.
const repositoryTypeVector = "vector"

// Config holds configuration for the SAP grounding store.
type Config struct {
	// APIURL is the AI Core API base URL without the /v2 suffix (required).
	APIURL string

	// ResourceGroup is the AI Core resource group (required). It must
	// carry the document-grounding label.
	ResourceGroup string

	// EmbeddingModel is the model used to embed chunks at ingestion
	// (default: text-embedding-ada-002).
	EmbeddingModel string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// RateLimit caps requests per second (default: 10).
	RateLimit rate.Limit

	// RateBurst is the rate limiter burst size (default: 5).
	RateBurst int
}

// Store provides grounding operations against SAP AI Core Document
// Grounding. Collections and embeddings live remotely; the store holds
// no durable state.
type Store struct {
	client         *http.Client
	baseURL        string
	resourceGroup  string
	embeddingModel string
	tokens         driven.TokenProvider
	limiter        *rate.Limiter
}

// createCollectionRequest is the POST /vector/collections body.
type createCollectionRequest struct {
	Title           string                 `json:"title"`
	EmbeddingConfig embeddingConfig        `json:"embeddingConfig"`
	Metadata        []domain.MetadataEntry `json:"metadata"`
}

// embeddingConfig selects the embedding model for a collection.
type embeddingConfig struct {
	ModelName string `json:"modelName"`
}

// createCollectionResponse is the fallback body shape when the service
// returns the new collection inline instead of via Location header.
type createCollectionResponse struct {
	ID string `json:"id"`
}

// searchRequest is the POST /retrieval/search body.
type searchRequest struct {
	Query   string         `json:"query"`
	Filters []searchFilter `json:"filters"`
}

// searchFilter scopes a search to specific data repositories.
type searchFilter struct {
	ID                  string       `json:"id"`
	DataRepositories    []string     `json:"dataRepositories"`
	DataRepositoryType  string       `json:"dataRepositoryType"`
	SearchConfiguration searchConfig `json:"searchConfiguration"`
}

// searchConfig caps the number of returned chunks.
type searchConfig struct {
	MaxChunkCount int `json:"maxChunkCount"`
}

// listCollectionsResponse is the GET /vector/collections envelope.
type listCollectionsResponse struct {
	Resources []domain.Collection `json:"resources"`
}

// NewStore creates a new SAP grounding store.
func NewStore(cfg Config, tokens driven.TokenProvider) (*Store, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("sap: API URL is required")
	}
	if cfg.ResourceGroup == "" {
		return nil, fmt.Errorf("sap: resource group is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("sap: token provider is required")
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = DefaultRateBurst
	}

	return &Store{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.APIURL, "/"),
		resourceGroup:  cfg.ResourceGroup,
		embeddingModel: cfg.EmbeddingModel,
		tokens:         tokens,
		limiter:        rate.NewLimiter(cfg.RateLimit, cfg.RateBurst),
	}, nil
}

// CreateCollection provisions an empty vector collection and returns
// its service-assigned identifier. The service reports the new ID via
// the Location header; some gateway configurations return it in the
// response body instead, so both are checked.
func (s *Store) CreateCollection(ctx context.Context, title string) (string, error) {
	reqBody := createCollectionRequest{
		Title:           title,
		EmbeddingConfig: embeddingConfig{ModelName: s.embeddingModel},
		Metadata:        []domain.MetadataEntry{},
	}

	var created createCollectionResponse
	header, err := s.do(ctx, http.MethodPost, groundingPath+"/vector/collections", reqBody, &created)
	if err != nil {
		return "", fmt.Errorf("create collection %q: %w", title, err)
	}

	if id := collectionIDFromLocation(header.Get("Location")); id != "" {
		return id, nil
	}
	if created.ID != "" {
		return created.ID, nil
	}

	return "", fmt.Errorf("%w: no collection id in Location header or response body", domain.ErrCollectionCreateFailed)
}

// Ingest submits a document's chunks to a collection for embedding and
// indexing.
func (s *Store) Ingest(ctx context.Context, collectionID string, payload domain.IngestPayload) error {
	path := fmt.Sprintf("%s/vector/collections/%s/documents", groundingPath, collectionID)
	if _, err := s.do(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("ingest into collection %s: %w", collectionID, err)
	}
	return nil
}

// Search retrieves the chunks most relevant to query from one
// collection, capped at maxChunks. The nested wire shape is returned
// as-is for the normaliser to flatten.
func (s *Store) Search(ctx context.Context, collectionID, query string, maxChunks int) (*domain.SearchResponse, error) {
	reqBody := searchRequest{
		Query: query,
		Filters: []searchFilter{{
			ID:                  uuid.NewString(),
			DataRepositories:    []string{collectionID},
			DataRepositoryType:  repositoryTypeVector,
			SearchConfiguration: searchConfig{MaxChunkCount: maxChunks},
		}},
	}

	var resp domain.SearchResponse
	if _, err := s.do(ctx, http.MethodPost, groundingPath+"/retrieval/search", reqBody, &resp); err != nil {
		return nil, fmt.Errorf("search collection %s: %w", collectionID, err)
	}

	return &resp, nil
}

// ListCollections returns all collections in the configured resource
// group.
func (s *Store) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	var resp listCollectionsResponse
	if _, err := s.do(ctx, http.MethodGet, groundingPath+"/vector/collections", nil, &resp); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return resp.Resources, nil
}

// DeleteCollection removes a collection and all its documents.
func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	path := fmt.Sprintf("%s/vector/collections/%s", groundingPath, id)
	if _, err := s.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete collection %s: %w", id, err)
	}
	return nil
}

// Ping validates connectivity and permissions by listing collections.
// A 403 here almost always means the resource group is missing the
// document-grounding label or the service key lacks role collections,
// so that case gets a more helpful message.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.do(ctx, http.MethodGet, groundingPath+"/vector/collections", nil, nil)
	if err == nil {
		return nil
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) && statusErr.code == http.StatusForbidden {
		return fmt.Errorf(
			"permission denied by SAP AI Core: check that the service key has the required role collections "+
				"and that resource group %q carries the 'document-grounding: true' label: %w",
			s.resourceGroup, err,
		)
	}

	return fmt.Errorf("grounding service unreachable: %w", err)
}

// Close releases resources.
func (s *Store) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// do performs one authenticated JSON request against the grounding
// API. The rate limiter is applied before the token fetch so queued
// calls don't hold stale tokens. Responses with error status are
// mapped onto domain sentinels where the status is meaningful.
func (s *Store) do(ctx context.Context, method, path string, reqBody, respBody any) (http.Header, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	token, err := s.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	var body io.Reader = http.NoBody
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("AI-Resource-Group", s.resourceGroup)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGroundingUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.Header, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return resp.Header, mapStatusError(resp.StatusCode, data)
	}

	if respBody != nil && len(data) > 0 {
		if err := json.Unmarshal(data, respBody); err != nil {
			return resp.Header, fmt.Errorf("decode response: %w", err)
		}
	}

	return resp.Header, nil
}

// statusError carries the HTTP status of a failed grounding call.
type statusError struct {
	code int
	body string
	err  error
}

func (e *statusError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%v (status %d): %s", e.err, e.code, e.body)
	}
	return fmt.Sprintf("grounding service returned status %d: %s", e.code, e.body)
}

func (e *statusError) Unwrap() error {
	return e.err
}

// mapStatusError converts an HTTP error status into a statusError
// wrapping the matching domain sentinel where one applies.
func mapStatusError(code int, body []byte) error {
	trimmed := strings.TrimSpace(string(body))
	switch code {
	case http.StatusNotFound:
		return &statusError{code: code, body: trimmed, err: domain.ErrNotFound}
	case http.StatusTooManyRequests:
		return &statusError{code: code, body: trimmed, err: domain.ErrRateLimited}
	default:
		return &statusError{code: code, body: trimmed}
	}
}

// collectionIDFromLocation extracts a collection ID from the Location
// header of a create response. The header usually looks like
// /v2/lm/document-grounding/vector/collections/{id}, but gateways have
// been seen appending extra path segments or query strings.
func collectionIDFromLocation(location string) string {
	if location == "" {
		return ""
	}

	segment := location
	if idx := strings.LastIndex(location, "/collections/"); idx >= 0 {
		segment = location[idx+len("/collections/"):]
	} else if idx := strings.LastIndex(location, "/"); idx >= 0 {
		segment = location[idx+1:]
	}

	segment, _, _ = strings.Cut(segment, "/")
	segment, _, _ = strings.Cut(segment, "?")
	return segment
}
