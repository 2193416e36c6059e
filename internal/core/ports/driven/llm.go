// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService generates grounded answers from composed prompts.
// This is an optional service - when nil, chat degrades gracefully to
// returning retrieved chunks without a generated answer.
//
// Implementations may include:
//   - SAP Generative AI Hub (proxied GPT-4o, Claude, and others)
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Ping validates the service is reachable by making a lightweight test request.
	// This is used at startup to verify connectivity before accepting traffic.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// Model names the model to generate with.
	// Empty selects the adapter's configured default.
	Model string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 2.0 = most creative).
	Temperature float64
}
