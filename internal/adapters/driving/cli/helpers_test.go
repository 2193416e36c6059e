package cli

import (
	"context"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// Mock services for command tests. All follow the optional func-field
// pattern: tests override only the call they care about.

// MockSettingsService implements driving.SettingsService.
type MockSettingsService struct {
	GetFunc            func() (*domain.AppSettings, error)
	SetCredentialsFunc func(apiURL, authURL, clientID, clientSecret, resourceGroup string) error
	ValidateFunc       func() error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	settings := domain.DefaultAppSettings()
	return &settings, nil
}

func (m *MockSettingsService) Save(_ *domain.AppSettings) error { return nil }

func (m *MockSettingsService) SetCredentials(apiURL, authURL, clientID, clientSecret, resourceGroup string) error {
	if m.SetCredentialsFunc != nil {
		return m.SetCredentialsFunc(apiURL, authURL, clientID, clientSecret, resourceGroup)
	}
	return nil
}

func (m *MockSettingsService) Validate() error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc()
	}
	return nil
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *MockSettingsService) Path() string {
	return "/tmp/groundchat/config.toml"
}

// MockDocumentService implements driving.DocumentService.
type MockDocumentService struct {
	UploadFunc func(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error)
}

func (m *MockDocumentService) Upload(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, req)
	}
	return &domain.UploadResult{
		CollectionID: "col-123",
		DocumentName: "test.txt",
		ChunksCount:  3,
		Message:      "Document 'test.txt' uploaded into collection col-123",
	}, nil
}

// MockChatService implements driving.ChatService.
type MockChatService struct {
	ChatFunc func(ctx context.Context, req domain.ChatRequest) (*domain.ChatResult, error)
}

func (m *MockChatService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResult, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	return &domain.ChatResult{Response: "mock answer"}, nil
}

// MockCollectionService implements driving.CollectionService.
type MockCollectionService struct {
	ListFunc   func(ctx context.Context) ([]domain.Collection, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *MockCollectionService) List(ctx context.Context) ([]domain.Collection, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Collection{
		{ID: "col-1", Title: "handbook.pdf"},
		{ID: "col-2", Title: "notes.md"},
	}, nil
}

func (m *MockCollectionService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// setupTestServices wires mock services into the package vars and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldSettings := settingsService
	oldDocuments := documentService
	oldChat := chatService
	oldCollections := collectionService

	settingsService = &MockSettingsService{}
	documentService = &MockDocumentService{}
	chatService = &MockChatService{}
	collectionService = &MockCollectionService{}

	return func() {
		settingsService = oldSettings
		documentService = oldDocuments
		chatService = oldChat
		collectionService = oldCollections
	}
}
