// Package mcp provides an MCP (Model Context Protocol) server adapter
// for groundchat. It lets AI assistants query uploaded documents
// through the grounded chat pipeline.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")
