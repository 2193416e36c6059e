package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates an uploaded file is neither valid
	// UTF-8 text nor a PDF with extractable text.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrCollectionCreateFailed indicates the grounding service did not
	// return a usable collection identifier.
	ErrCollectionCreateFailed = errors.New("collection creation failed")

	// ErrGroundingUnavailable indicates the grounding service is not
	// configured. Upload and chat are disabled without it.
	ErrGroundingUnavailable = errors.New("grounding service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Answer generation is disabled; retrieval still works.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the remote API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
