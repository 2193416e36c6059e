package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the URI scheme for groundchat resources.
const uriScheme = "groundchat://"

// collectionInfo is the JSON shape of a collection in resource listings.
type collectionInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "collections",
		Name:        "collections",
		Description: "Document collections available for grounded chat",
		MIMEType:    "application/json",
	}, s.handleCollectionsResource)
}

// handleCollectionsResource returns the list of collections as JSON.
func (s *Server) handleCollectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Collections == nil {
		return jsonResource(req.Params.URI, []byte("[]")), nil
	}

	collections, err := s.ports.Collections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	infos := make([]collectionInfo, len(collections))
	for i, col := range collections {
		infos[i] = collectionInfo{
			ID:    col.ID,
			Title: col.Title,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling collections: %w", err)
	}

	return jsonResource(req.Params.URI, data), nil
}

// jsonResource wraps JSON data in a resource result.
func jsonResource(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}
}
