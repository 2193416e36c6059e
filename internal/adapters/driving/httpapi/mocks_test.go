package httpapi

import (
	"context"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	result *domain.UploadResult
	err    error
	gotReq domain.UploadRequest
	called bool
}

func (m *mockDocumentService) Upload(_ context.Context, req domain.UploadRequest) (*domain.UploadResult, error) {
	m.called = true
	m.gotReq = req
	return m.result, m.err
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	result *domain.ChatResult
	err    error
	gotReq domain.ChatRequest
}

func (m *mockChatService) Chat(_ context.Context, req domain.ChatRequest) (*domain.ChatResult, error) {
	m.gotReq = req
	return m.result, m.err
}

// mockCollectionService is a mock implementation of driving.CollectionService.
type mockCollectionService struct {
	collections []domain.Collection
	listErr     error
	deleteErr   error
	deletedID   string
}

func (m *mockCollectionService) List(_ context.Context) ([]domain.Collection, error) {
	return m.collections, m.listErr
}

func (m *mockCollectionService) Delete(_ context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

// newTestServices returns a Services bundle with fresh mocks.
func newTestServices() (Services, *mockDocumentService, *mockChatService, *mockCollectionService) {
	docs := &mockDocumentService{}
	chat := &mockChatService{}
	collections := &mockCollectionService{}
	return Services{
		Documents:   docs,
		Chat:        chat,
		Collections: collections,
	}, docs, chat, collections
}
