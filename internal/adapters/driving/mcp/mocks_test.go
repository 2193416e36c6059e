package mcp

import (
	"context"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

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
	err         error
}

func (m *mockCollectionService) List(_ context.Context) ([]domain.Collection, error) {
	return m.collections, m.err
}

func (m *mockCollectionService) Delete(_ context.Context, _ string) error {
	return m.err
}
