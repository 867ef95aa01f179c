package driving

import "github.com/custodia-labs/scribe-cli/internal/core/domain"

// SettingsService manages client settings.
type SettingsService interface {
	// Get retrieves the current settings with defaults applied.
	Get() domain.ClientSettings

	// Set validates and persists a single setting.
	Set(key, value string) error

	// Unset removes a setting so its default applies again.
	Unset(key string) error

	// Lookup returns the effective value of a setting as display text.
	Lookup(key string) (string, error)

	// Validate checks the settings are usable by the API client.
	Validate() error

	// Path returns where settings are stored.
	Path() string
}
