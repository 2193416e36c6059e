package services

import (
	"context"

	"github.com/custodia-labs/groundchat/internal/core/domain"
	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
)

// mockGroundingStore is a mock implementation of driven.GroundingStore.
// It records the arguments of each call so tests can assert on them.
type mockGroundingStore struct {
	collectionID  string
	createErr     error
	createdTitles []string

	ingestErr          error
	ingestedCollection string
	ingestedPayload    domain.IngestPayload

	searchResp    *domain.SearchResponse
	searchErr     error
	searchedID    string
	searchedQuery string
	searchedMax   int

	collections []domain.Collection
	listErr     error

	deleteErr  error
	deletedIDs []string

	pingErr error
}

func (m *mockGroundingStore) CreateCollection(_ context.Context, title string) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.createdTitles = append(m.createdTitles, title)
	return m.collectionID, nil
}

func (m *mockGroundingStore) Ingest(_ context.Context, collectionID string, payload domain.IngestPayload) error {
	if m.ingestErr != nil {
		return m.ingestErr
	}
	m.ingestedCollection = collectionID
	m.ingestedPayload = payload
	return nil
}

func (m *mockGroundingStore) Search(_ context.Context, collectionID, query string, maxChunks int) (*domain.SearchResponse, error) {
	m.searchedID = collectionID
	m.searchedQuery = query
	m.searchedMax = maxChunks
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResp, nil
}

func (m *mockGroundingStore) ListCollections(_ context.Context) ([]domain.Collection, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.collections, nil
}

func (m *mockGroundingStore) DeleteCollection(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockGroundingStore) Ping(_ context.Context) error {
	return m.pingErr
}

func (m *mockGroundingStore) Close() error {
	return nil
}

// mockLLM is a mock implementation of driven.LLMService.
type mockLLM struct {
	answer      string
	generateErr error

	calls  int
	prompt string
	opts   driven.GenerateOptions
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.calls++
	m.prompt = prompt
	m.opts = opts
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.answer, nil
}

func (m *mockLLM) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLM) Close() error {
	return nil
}

// mockExtractorRegistry is a mock implementation of driven.ExtractorRegistry.
type mockExtractorRegistry struct {
	text       string
	extractErr error

	filename string
	data     []byte
}

func (m *mockExtractorRegistry) Extract(filename string, data []byte) (string, error) {
	m.filename = filename
	m.data = data
	if m.extractErr != nil {
		return "", m.extractErr
	}
	return m.text, nil
}

func (m *mockExtractorRegistry) Register(_ driven.Extractor) {}

func (m *mockExtractorRegistry) SupportedExtensions() []string {
	return []string{".txt", ".md", ".pdf"}
}

// mockPromptStore is a mock implementation of driven.PromptStore.
type mockPromptStore struct {
	prompts map[string]string
	loadErr error
	reloads int
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	return m.prompts[name], nil
}

func (m *mockPromptStore) Reload() {
	m.reloads++
}
