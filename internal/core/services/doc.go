// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services never talk to the grounding or LLM APIs directly; all
// remote access goes through driven ports so transports can be
// swapped in tests.
package services
