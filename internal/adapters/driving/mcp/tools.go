package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// ChatInput is the input schema for the chat tool.
type ChatInput struct {
	CollectionID string `json:"collection_id" jsonschema:"the collection to search, from an earlier upload"`
	Query        string `json:"query" jsonschema:"the natural-language question to answer"`
	MaxChunks    int    `json:"max_chunks,omitempty" jsonschema:"maximum number of chunks to retrieve (default 5, max 20)"`
}

// ChatOutput is the output schema for the chat tool.
type ChatOutput struct {
	Response    string        `json:"response"`
	Chunks      []ChunkOutput `json:"chunks"`
	ChunksFound int           `json:"chunks_found"`
}

// ChunkOutput represents a single retrieved chunk.
type ChunkOutput struct {
	Content  string            `json:"content"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ListCollectionsInput is the input schema for the list_collections tool.
type ListCollectionsInput struct{}

// ListCollectionsOutput is the output schema for the list_collections tool.
type ListCollectionsOutput struct {
	Collections []CollectionOutput `json:"collections"`
	Count       int                `json:"count"`
}

// CollectionOutput represents a single collection.
type CollectionOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "chat",
		Description: "Ask a question answered from an uploaded document collection",
	}, s.handleChat)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_collections",
		Description: "List the document collections available for chat",
	}, s.handleListCollections)
}

// handleChat handles the chat tool invocation.
func (s *Server) handleChat(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChatInput,
) (*mcp.CallToolResult, ChatOutput, error) {
	result, err := s.ports.Chat.Chat(ctx, domain.ChatRequest{
		CollectionID: input.CollectionID,
		Query:        input.Query,
		MaxChunks:    input.MaxChunks,
	})
	if err != nil {
		return nil, ChatOutput{}, err
	}

	output := ChatOutput{
		Response:    result.Response,
		Chunks:      make([]ChunkOutput, len(result.Chunks)),
		ChunksFound: result.ChunksFound,
	}

	for i := range result.Chunks {
		output.Chunks[i] = ChunkOutput{
			Content:  result.Chunks[i].Content,
			Score:    result.Chunks[i].Score,
			Metadata: result.Chunks[i].Metadata,
		}
	}

	return nil, output, nil
}

// handleListCollections handles the list_collections tool invocation.
func (s *Server) handleListCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCollectionsInput,
) (*mcp.CallToolResult, ListCollectionsOutput, error) {
	if s.ports.Collections == nil {
		return nil, ListCollectionsOutput{Collections: []CollectionOutput{}}, nil
	}

	collections, err := s.ports.Collections.List(ctx)
	if err != nil {
		return nil, ListCollectionsOutput{}, err
	}

	output := ListCollectionsOutput{
		Collections: make([]CollectionOutput, len(collections)),
		Count:       len(collections),
	}

	for i, col := range collections {
		output.Collections[i] = CollectionOutput{
			ID:    col.ID,
			Title: col.Title,
		}
	}

	return nil, output, nil
}
