package driving

import "github.com/custodia-labs/groundchat/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings. Values come from the
	// config file with environment variables taking precedence.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetCredentials stores the SAP AI Core service key fields.
	SetCredentials(apiURL, authURL, clientID, clientSecret, resourceGroup string) error

	// Validate checks that the settings are usable, in particular that
	// the SAP credentials are complete.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns the config file path backing these settings.
	Path() string
}
