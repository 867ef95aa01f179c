package domain

import "time"

// Settings keys as stored in the config file.
// Nested TOML tables are flattened into dot-notation keys.
const (
	SettingAPIURL         = "api.url"
	SettingRequestTimeout = "api.timeout"
	SettingUploadTimeout  = "api.upload_timeout"
	SettingRateLimit      = "api.rate_limit"
	SettingRateBurst      = "api.rate_burst"
	SettingDebounceDelay  = "search.debounce"
	SettingHealthInterval = "health.interval"
)

// APIURLEnvVar overrides the configured API URL when set.
const APIURLEnvVar = "SCRIBE_API_URL"

// APISettings holds transcription API client configuration.
type APISettings struct {
	// URL is the API base URL. There is no default.
	URL string

	// RequestTimeout bounds health and search requests.
	RequestTimeout time.Duration

	// UploadTimeout bounds a transcription upload.
	UploadTimeout time.Duration

	// RateLimit is the sustained requests per second. Zero disables pacing.
	RateLimit float64

	// RateBurst is the maximum burst size.
	RateBurst int
}

// SearchSettings holds incremental search behaviour.
type SearchSettings struct {
	// DebounceDelay is the quiet period before a typed term is dispatched.
	DebounceDelay time.Duration
}

// HealthSettings holds health polling behaviour.
type HealthSettings struct {
	// Interval is the polling period.
	Interval time.Duration
}

// ClientSettings holds all client settings.
type ClientSettings struct {
	API    APISettings
	Search SearchSettings
	Health HealthSettings
}

// DefaultClientSettings returns settings with sensible defaults.
// The API URL is deliberately left empty.
func DefaultClientSettings() ClientSettings {
	return ClientSettings{
		API: APISettings{
			RequestTimeout: 30 * time.Second,
			UploadTimeout:  10 * time.Minute,
			RateLimit:      5,
			RateBurst:      5,
		},
		Search: SearchSettings{
			DebounceDelay: 300 * time.Millisecond,
		},
		Health: HealthSettings{
			Interval: 30 * time.Second,
		},
	}
}

// AllSettingKeys returns the keys accepted by the settings service.
func AllSettingKeys() []string {
	return []string{
		SettingAPIURL,
		SettingRequestTimeout,
		SettingUploadTimeout,
		SettingRateLimit,
		SettingRateBurst,
		SettingDebounceDelay,
		SettingHealthInterval,
	}
}
