package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/groundchat/internal/core/domain"
	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
	"github.com/custodia-labs/groundchat/internal/core/ports/driving"
	"github.com/custodia-labs/groundchat/internal/logger"
	"github.com/custodia-labs/groundchat/internal/normaliser"
	"github.com/custodia-labs/groundchat/internal/prompt"
)

// Ensure ChatService implements the interfaces.
var (
	_ driving.ChatService     = (*ChatService)(nil)
	_ driven.PromptStoreAware = (*ChatService)(nil)
)

// Request parameter bounds and defaults. Requests outside the valid
// ranges are rejected; zero values take the configured default.
const (
	DefaultMaxChunks   = 5
	MaxChunksLimit     = 20
	DefaultModel       = "gpt-4o"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 10000
	MaxTemperature     = 2.0
)

// noEvidenceReply is returned when the search finds nothing relevant.
const noEvidenceReply = "No relevant information found in the documents to answer your question."

// ChatDefaults carries the configured generation parameters applied
// when a request leaves them unset.
type ChatDefaults struct {
	Model       string
	Temperature float64
	MaxTokens   int
	MaxChunks   int
}

// ChatService answers questions grounded in a document collection:
// search the collection, compose a prompt from the retrieved chunks
// and generate an answer with the LLM.
type ChatService struct {
	grounding driven.GroundingStore
	llm       driven.LLMService
	prompts   driven.PromptStore
	defaults  ChatDefaults
}

// NewChatService creates a new chat service. The LLM service may be
// nil, in which case chat degrades to retrieval without generation.
func NewChatService(grounding driven.GroundingStore, llm driven.LLMService, defaults ChatDefaults) *ChatService {
	if defaults.Model == "" {
		defaults.Model = DefaultModel
	}
	if defaults.Temperature <= 0 {
		defaults.Temperature = DefaultTemperature
	}
	if defaults.MaxTokens <= 0 {
		defaults.MaxTokens = DefaultMaxTokens
	}
	if defaults.MaxChunks <= 0 {
		defaults.MaxChunks = DefaultMaxChunks
	}
	return &ChatService{
		grounding: grounding,
		llm:       llm,
		defaults:  defaults,
	}
}

// SetPromptStore wires an optional prompt template store. Without one
// the built-in question answering template is used.
func (s *ChatService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Chat searches the collection for chunks relevant to the query and
// generates an answer grounded in them. A search miss returns a fixed
// reply; an LLM failure returns the retrieved chunks with the error
// text in place of an answer. Both are successes at this level so the
// caller always sees what retrieval found.
func (s *ChatService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResult, error) {
	logger.Section("Grounded Chat")

	if s.grounding == nil {
		return nil, domain.ErrGroundingUnavailable
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", domain.ErrInvalidInput)
	}
	if req.CollectionID == "" {
		return nil, fmt.Errorf("%w: collection id must not be empty", domain.ErrInvalidInput)
	}

	maxChunks := req.MaxChunks
	if maxChunks == 0 {
		maxChunks = s.defaults.MaxChunks
	}
	if maxChunks < 1 || maxChunks > MaxChunksLimit {
		return nil, fmt.Errorf("%w: max_chunks must be between 1 and %d", domain.ErrInvalidInput, MaxChunksLimit)
	}

	if req.Temperature != nil && (*req.Temperature < 0 || *req.Temperature > MaxTemperature) {
		return nil, fmt.Errorf("%w: temperature must be between 0 and %g", domain.ErrInvalidInput, MaxTemperature)
	}
	if req.MaxTokens < 0 {
		return nil, fmt.Errorf("%w: max_tokens must be positive", domain.ErrInvalidInput)
	}

	logger.Debug("Chat: collection=%s max_chunks=%d query=%q", req.CollectionID, maxChunks, query)

	resp, err := s.grounding.Search(ctx, req.CollectionID, query, maxChunks)
	if err != nil {
		return nil, fmt.Errorf("search collection %s: %w", req.CollectionID, err)
	}

	chunks := normaliser.Flatten(resp)
	logger.Debug("Retrieved %d chunks", len(chunks))

	result := &domain.ChatResult{
		CollectionID: req.CollectionID,
		Query:        query,
		Chunks:       chunks,
		ChunksFound:  len(chunks),
	}

	if len(chunks) == 0 {
		logger.Info("No relevant chunks found in collection %s", req.CollectionID)
		result.Response = noEvidenceReply
		return result, nil
	}

	result.Response = s.generate(ctx, chunks, query, req)
	return result, nil
}

// generate composes the grounding prompt and calls the LLM. Failures
// degrade to an error string so retrieval results are not lost.
func (s *ChatService) generate(ctx context.Context, chunks []domain.RetrievedChunk, query string, req domain.ChatRequest) string {
	if s.llm == nil {
		logger.Warn("LLM service not configured, returning retrieval results only")
		return fmt.Sprintf("Error generating response: %v", domain.ErrLLMUnavailable)
	}

	opts := driven.GenerateOptions{
		Model:       req.Model,
		Temperature: s.defaults.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if opts.Model == "" {
		opts.Model = s.defaults.Model
	}
	if req.Temperature != nil {
		opts.Temperature = *req.Temperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = s.defaults.MaxTokens
	}

	answer, err := s.llm.Generate(ctx, s.composePrompt(chunks, query), opts)
	if err != nil {
		logger.Warn("LLM generation failed: %v", err)
		return fmt.Sprintf("Error generating response: %v", err)
	}

	logger.Info("Generated answer with model %s from %d chunks", opts.Model, len(chunks))
	return answer
}

// composePrompt renders the question answering prompt, preferring a
// template from the prompt store over the built-in one.
func (s *ChatService) composePrompt(chunks []domain.RetrievedChunk, query string) string {
	if s.prompts != nil {
		if tmpl, err := s.prompts.Load(driven.PromptDocumentQA); err == nil && tmpl != "" {
			return prompt.ComposeWith(tmpl, chunks, query)
		} else if err != nil {
			logger.Warn("Failed to load %s prompt, using built-in template: %v", driven.PromptDocumentQA, err)
		}
	}
	return prompt.Compose(chunks, query)
}
