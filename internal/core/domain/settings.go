package domain

import (
	"net"
	"strconv"
)

// SAPSettings holds SAP AI Core connection configuration.
type SAPSettings struct {
	// APIURL is the AI Core API base URL (without the /v2 suffix).
	APIURL string

	// AuthURL is the XSUAA OAuth server base URL.
	AuthURL string

	// ClientID is the OAuth client ID from the service key.
	ClientID string

	// ClientSecret is the OAuth client secret from the service key.
	ClientSecret string

	// ResourceGroup is the AI Core resource group. It must carry the
	// document-grounding label for grounding calls to succeed.
	ResourceGroup string
}

// IsConfigured returns true if all required SAP credentials are set.
func (s SAPSettings) IsConfigured() bool {
	return s.APIURL != "" && s.AuthURL != "" && s.ClientID != "" && s.ClientSecret != "" && s.ResourceGroup != ""
}

// MissingFields returns the names of required SAP fields that are unset.
func (s SAPSettings) MissingFields() []string {
	var missing []string
	if s.APIURL == "" {
		missing = append(missing, "api_url")
	}
	if s.AuthURL == "" {
		missing = append(missing, "auth_url")
	}
	if s.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if s.ClientSecret == "" {
		missing = append(missing, "client_secret")
	}
	if s.ResourceGroup == "" {
		missing = append(missing, "resource_group")
	}
	return missing
}

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Host is the listen address.
	Host string

	// Port is the listen port.
	Port int

	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string
}

// Addr returns the host:port listen address.
func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LLMSettings holds answer-generation defaults.
type LLMSettings struct {
	// Model is the generative model used to answer questions.
	Model string

	// Temperature is the default sampling temperature.
	Temperature float64

	// MaxTokens is the default completion token limit.
	MaxTokens int
}

// ChunkingSettings holds document chunking configuration.
type ChunkingSettings struct {
	// ChunkSize is the target chunk size in characters.
	ChunkSize int
}

// GroundingSettings holds vector collection configuration.
type GroundingSettings struct {
	// EmbeddingModel is the model used to embed chunks at ingestion.
	EmbeddingModel string
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	SAP       SAPSettings
	Server    ServerSettings
	LLM       LLMSettings
	Chunking  ChunkingSettings
	Grounding GroundingSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// SAP credentials are left unconfigured and must come from the
// config file, environment, or the configure command.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		SAP: SAPSettings{},
		Server: ServerSettings{
			Host:        "0.0.0.0",
			Port:        8000,
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		LLM: LLMSettings{
			Model:       "gpt-4o",
			Temperature: 0.7,
			MaxTokens:   10000,
		},
		Chunking: ChunkingSettings{
			ChunkSize: 500,
		},
		Grounding: GroundingSettings{
			EmbeddingModel: "text-embedding-ada-002",
		},
	}
}
