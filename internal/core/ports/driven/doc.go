// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - GroundingStore: Remote collection management, chunk ingestion, and retrieval
//   - ExtractorRegistry: Decodes uploaded files into plain text
//   - TokenProvider: Access tokens for authenticated remote calls
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Answer generation. Without it, chat still returns the
//     retrieved chunks, with an explanatory message in place of an answer.
//   - PromptStore: Customisable prompt templates. Without it, embedded
//     defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
