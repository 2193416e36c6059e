package mcp

import (
	"github.com/custodia-labs/groundchat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers grounded questions against a collection.
	Chat driving.ChatService

	// Collections lists the available collections.
	Collections driving.CollectionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	// Collections is optional; the tools degrade to empty listings.
	return nil
}
