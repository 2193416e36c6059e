package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/groundchat/internal/core/domain"
	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
	"github.com/custodia-labs/groundchat/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySAPAPIURL        = "sap.api_url"
	keySAPAuthURL       = "sap.auth_url"
	keySAPClientID      = "sap.client_id"
	keySAPClientSecret  = "sap.client_secret"
	keySAPResourceGroup = "sap.resource_group"
	keyServerHost       = "server.host"
	keyServerPort       = "server.port"
	keyServerCORS       = "server.cors_origins"
	keyLLMModel         = "llm.model"
	keyLLMTemperature   = "llm.temperature"
	keyLLMMaxTokens     = "llm.max_tokens"
	keyChunkSize        = "chunking.chunk_size"
	keyEmbeddingModel   = "grounding.embedding_model"
)

// Environment variables that override config file values.
//
//nolint:gosec // G101: These are env var names, not actual credentials.
const (
	envSAPAPIURL        = "SAP_API_URL"
	envSAPAuthURL       = "SAP_AUTH_URL"
	envSAPClientID      = "SAP_CLIENT_ID"
	envSAPClientSecret  = "SAP_CLIENT_SECRET"
	envSAPResourceGroup = "SAP_RESOURCE_GROUP"
	envServerHost       = "HOST"
	envServerPort       = "PORT"
	envServerCORS       = "CORS_ORIGINS"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. File values fill in over
// defaults, and environment variables take precedence over both.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		SAP: domain.SAPSettings{
			APIURL:        s.envOr(envSAPAPIURL, s.configStore.GetString(keySAPAPIURL)),
			AuthURL:       s.envOr(envSAPAuthURL, s.configStore.GetString(keySAPAuthURL)),
			ClientID:      s.envOr(envSAPClientID, s.configStore.GetString(keySAPClientID)),
			ClientSecret:  s.envOr(envSAPClientSecret, s.configStore.GetString(keySAPClientSecret)),
			ResourceGroup: s.envOr(envSAPResourceGroup, s.configStore.GetString(keySAPResourceGroup)),
		},
		Server: domain.ServerSettings{
			Host:        s.envOr(envServerHost, s.getString(keyServerHost, defaults.Server.Host)),
			Port:        s.envPort(s.getInt(keyServerPort, defaults.Server.Port)),
			CORSOrigins: s.envOrigins(s.getStringSlice(keyServerCORS, defaults.Server.CORSOrigins)),
		},
		LLM: domain.LLMSettings{
			Model:       s.getString(keyLLMModel, defaults.LLM.Model),
			Temperature: s.getFloat(keyLLMTemperature, defaults.LLM.Temperature),
			MaxTokens:   s.getInt(keyLLMMaxTokens, defaults.LLM.MaxTokens),
		},
		Chunking: domain.ChunkingSettings{
			ChunkSize: s.getInt(keyChunkSize, defaults.Chunking.ChunkSize),
		},
		Grounding: domain.GroundingSettings{
			EmbeddingModel: s.getString(keyEmbeddingModel, defaults.Grounding.EmbeddingModel),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.saveSAP(settings.SAP); err != nil {
		return err
	}

	if err := s.configStore.Set(keyServerHost, settings.Server.Host); err != nil {
		return fmt.Errorf("save server host: %w", err)
	}
	if err := s.configStore.Set(keyServerPort, settings.Server.Port); err != nil {
		return fmt.Errorf("save server port: %w", err)
	}
	if err := s.configStore.Set(keyServerCORS, settings.Server.CORSOrigins); err != nil {
		return fmt.Errorf("save cors origins: %w", err)
	}

	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMTemperature, settings.LLM.Temperature); err != nil {
		return fmt.Errorf("save llm temperature: %w", err)
	}
	if err := s.configStore.Set(keyLLMMaxTokens, settings.LLM.MaxTokens); err != nil {
		return fmt.Errorf("save llm max_tokens: %w", err)
	}

	if err := s.configStore.Set(keyChunkSize, settings.Chunking.ChunkSize); err != nil {
		return fmt.Errorf("save chunk size: %w", err)
	}
	if err := s.configStore.Set(keyEmbeddingModel, settings.Grounding.EmbeddingModel); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}

	return nil
}

func (s *SettingsService) saveSAP(sap domain.SAPSettings) error {
	if err := s.configStore.Set(keySAPAPIURL, sap.APIURL); err != nil {
		return fmt.Errorf("save sap api_url: %w", err)
	}
	if err := s.configStore.Set(keySAPAuthURL, sap.AuthURL); err != nil {
		return fmt.Errorf("save sap auth_url: %w", err)
	}
	if err := s.configStore.Set(keySAPClientID, sap.ClientID); err != nil {
		return fmt.Errorf("save sap client_id: %w", err)
	}
	// Never overwrite a stored secret with an empty one.
	if sap.ClientSecret != "" {
		if err := s.configStore.Set(keySAPClientSecret, sap.ClientSecret); err != nil {
			return fmt.Errorf("save sap client_secret: %w", err)
		}
	}
	if err := s.configStore.Set(keySAPResourceGroup, sap.ResourceGroup); err != nil {
		return fmt.Errorf("save sap resource_group: %w", err)
	}
	return nil
}

// SetCredentials stores the SAP AI Core service key fields.
func (s *SettingsService) SetCredentials(apiURL, authURL, clientID, clientSecret, resourceGroup string) error {
	sap := domain.SAPSettings{
		APIURL:        strings.TrimRight(strings.TrimSpace(apiURL), "/"),
		AuthURL:       strings.TrimRight(strings.TrimSpace(authURL), "/"),
		ClientID:      strings.TrimSpace(clientID),
		ClientSecret:  strings.TrimSpace(clientSecret),
		ResourceGroup: strings.TrimSpace(resourceGroup),
	}

	if !sap.IsConfigured() {
		return fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, strings.Join(sap.MissingFields(), ", "))
	}

	return s.saveSAP(sap)
}

// Validate checks that the settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.SAP.IsConfigured() {
		return fmt.Errorf(
			"SAP AI Core credentials incomplete: missing %s (run 'groundchat configure' or set the environment variables)",
			strings.Join(settings.SAP.MissingFields(), ", "),
		)
	}

	if settings.Server.Port < 1 || settings.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", settings.Server.Port)
	}

	if settings.LLM.Temperature < 0 || settings.LLM.Temperature > MaxTemperature {
		return fmt.Errorf("invalid llm temperature: %g (must be between 0 and %g)", settings.LLM.Temperature, MaxTemperature)
	}

	if settings.Chunking.ChunkSize < 1 {
		return fmt.Errorf("invalid chunk size: %d", settings.Chunking.ChunkSize)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the config file path backing these settings.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) envOr(envVar, fallback string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return fallback
}

func (s *SettingsService) envPort(fallback int) int {
	val := os.Getenv(envServerPort)
	if val == "" {
		return fallback
	}
	port, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return port
}

// envOrigins reads CORS origins from the environment as a
// comma-separated list.
func (s *SettingsService) envOrigins(fallback []string) []string {
	val := os.Getenv(envServerCORS)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return fallback
	}
	return origins
}
