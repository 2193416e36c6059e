package tui

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("tui: chat service is required")

// ErrMissingCollectionID is returned when no collection is given to chat against.
var ErrMissingCollectionID = errors.New("tui: collection id is required")
