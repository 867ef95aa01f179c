package services

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
	"github.com/custodia-labs/scribe-cli/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages client settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current settings with defaults applied.
func (s *SettingsService) Get() domain.ClientSettings {
	defaults := domain.DefaultClientSettings()

	return domain.ClientSettings{
		API: domain.APISettings{
			URL:            s.apiURL(),
			RequestTimeout: s.getDuration(domain.SettingRequestTimeout, defaults.API.RequestTimeout),
			UploadTimeout:  s.getDuration(domain.SettingUploadTimeout, defaults.API.UploadTimeout),
			RateLimit:      s.getFloat(domain.SettingRateLimit, defaults.API.RateLimit),
			RateBurst:      s.getInt(domain.SettingRateBurst, defaults.API.RateBurst),
		},
		Search: domain.SearchSettings{
			DebounceDelay: s.getDuration(domain.SettingDebounceDelay, defaults.Search.DebounceDelay),
		},
		Health: domain.HealthSettings{
			Interval: s.getDuration(domain.SettingHealthInterval, defaults.Health.Interval),
		},
	}
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := parseSetting(key, strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	logger.Debug("Setting %s = %v", key, parsed)
	return nil
}

// Unset removes a stored setting so the default applies again.
func (s *SettingsService) Unset(key string) error {
	if !isKnownSetting(key) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Lookup returns the effective value of key as display text.
func (s *SettingsService) Lookup(key string) (string, error) {
	settings := s.Get()

	switch key {
	case domain.SettingAPIURL:
		return settings.API.URL, nil
	case domain.SettingRequestTimeout:
		return settings.API.RequestTimeout.String(), nil
	case domain.SettingUploadTimeout:
		return settings.API.UploadTimeout.String(), nil
	case domain.SettingRateLimit:
		return strconv.FormatFloat(settings.API.RateLimit, 'g', -1, 64), nil
	case domain.SettingRateBurst:
		return strconv.Itoa(settings.API.RateBurst), nil
	case domain.SettingDebounceDelay:
		return settings.Search.DebounceDelay.String(), nil
	case domain.SettingHealthInterval:
		return settings.Health.Interval.String(), nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
}

// Validate checks the settings are usable by the API client.
func (s *SettingsService) Validate() error {
	settings := s.Get()
	if settings.API.URL == "" {
		return domain.ErrAPIURLNotConfigured
	}
	if err := validateURL(settings.API.URL); err != nil {
		return err
	}
	return nil
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) apiURL() string {
	if s.lookupEnv != nil {
		if v, ok := s.lookupEnv(domain.APIURLEnvVar); ok && strings.TrimSpace(v) != "" {
			return strings.TrimRight(strings.TrimSpace(v), "/")
		}
	}
	return strings.TrimRight(s.configStore.GetString(domain.SettingAPIURL), "/")
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	raw := s.configStore.GetString(key)
	if raw == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		logger.Warn("Ignoring invalid duration %q for %s", raw, key)
		return defaultVal
	}
	return d
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func isKnownSetting(key string) bool {
	return slices.Contains(domain.AllSettingKeys(), key)
}

// parseSetting converts a user supplied value into the type stored for key.
func parseSetting(key, value string) (any, error) {
	switch key {
	case domain.SettingAPIURL:
		if err := validateURL(value); err != nil {
			return nil, err
		}
		return strings.TrimRight(value, "/"), nil

	case domain.SettingRequestTimeout, domain.SettingUploadTimeout,
		domain.SettingDebounceDelay, domain.SettingHealthInterval:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a duration like 300ms or 30s", domain.ErrInvalidInput, key)
		}
		if d < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, key)
		}
		if d == 0 && key != domain.SettingDebounceDelay {
			return nil, fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, key)
		}
		return d.String(), nil

	case domain.SettingRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		return f, nil

	case domain.SettingRateBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return n, nil

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: API URL must be an absolute http(s) URL, got %q", domain.ErrInvalidInput, raw)
	}
	return nil
}
