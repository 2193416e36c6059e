// Package tui provides an interactive chat session over one document
// collection. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/groundchat/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers questions grounded in the collection.
	Chat driving.ChatService

	// Collections resolves collection titles for the header. Optional;
	// without it the session header shows the raw collection ID.
	Collections driving.CollectionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
