package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

func newTestSettings(env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)
	svc.lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return svc, store
}

func TestSettingsService_Defaults(t *testing.T) {
	svc, _ := newTestSettings(nil)

	assert.Equal(t, domain.DefaultClientSettings(), svc.Get())
	assert.ErrorIs(t, svc.Validate(), domain.ErrAPIURLNotConfigured)
}

func TestSettingsService_SetAndGet(t *testing.T) {
	svc, _ := newTestSettings(nil)

	require.NoError(t, svc.Set(domain.SettingAPIURL, "http://localhost:8000/"))
	require.NoError(t, svc.Set(domain.SettingDebounceDelay, "150ms"))
	require.NoError(t, svc.Set(domain.SettingHealthInterval, "1m"))
	require.NoError(t, svc.Set(domain.SettingRequestTimeout, "5s"))
	require.NoError(t, svc.Set(domain.SettingUploadTimeout, "2m"))
	require.NoError(t, svc.Set(domain.SettingRateLimit, "0.5"))
	require.NoError(t, svc.Set(domain.SettingRateBurst, "2"))

	got := svc.Get()
	assert.Equal(t, "http://localhost:8000", got.API.URL)
	assert.Equal(t, 150*time.Millisecond, got.Search.DebounceDelay)
	assert.Equal(t, time.Minute, got.Health.Interval)
	assert.Equal(t, 5*time.Second, got.API.RequestTimeout)
	assert.Equal(t, 2*time.Minute, got.API.UploadTimeout)
	assert.InDelta(t, 0.5, got.API.RateLimit, 0.0001)
	assert.Equal(t, 2, got.API.RateBurst)
	assert.NoError(t, svc.Validate())
}

func TestSettingsService_SetRejectsInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{domain.SettingAPIURL, "not a url"},
		{domain.SettingAPIURL, "ftp://host"},
		{domain.SettingAPIURL, "/relative"},
		{domain.SettingDebounceDelay, "soon"},
		{domain.SettingDebounceDelay, "-1s"},
		{domain.SettingHealthInterval, "0s"},
		{domain.SettingRateLimit, "-1"},
		{domain.SettingRateLimit, "fast"},
		{domain.SettingRateBurst, "0"},
		{domain.SettingRateBurst, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			svc, store := newTestSettings(nil)
			assert.ErrorIs(t, svc.Set(tt.key, tt.value), domain.ErrInvalidInput)
			assert.Empty(t, store.Keys())
		})
	}
}

func TestSettingsService_ZeroDebounceAllowed(t *testing.T) {
	svc, _ := newTestSettings(nil)
	require.NoError(t, svc.Set(domain.SettingDebounceDelay, "0s"))
	assert.Equal(t, time.Duration(0), svc.Get().Search.DebounceDelay)
}

func TestSettingsService_UnknownKey(t *testing.T) {
	svc, _ := newTestSettings(nil)

	assert.ErrorIs(t, svc.Set("colour", "blue"), domain.ErrUnknownSetting)
	assert.ErrorIs(t, svc.Unset("colour"), domain.ErrUnknownSetting)
	_, err := svc.Lookup("colour")
	assert.ErrorIs(t, err, domain.ErrUnknownSetting)
}

func TestSettingsService_Unset(t *testing.T) {
	svc, _ := newTestSettings(nil)
	require.NoError(t, svc.Set(domain.SettingDebounceDelay, "1s"))

	require.NoError(t, svc.Unset(domain.SettingDebounceDelay))

	assert.Equal(t, 300*time.Millisecond, svc.Get().Search.DebounceDelay)
}

func TestSettingsService_EnvOverridesAPIURL(t *testing.T) {
	svc, _ := newTestSettings(map[string]string{domain.APIURLEnvVar: " http://env:9000/ "})
	require.NoError(t, svc.Set(domain.SettingAPIURL, "http://file:8000"))

	assert.Equal(t, "http://env:9000", svc.Get().API.URL)
}

func TestSettingsService_InvalidStoredDurationFallsBack(t *testing.T) {
	svc, store := newTestSettings(nil)
	require.NoError(t, store.Set(domain.SettingHealthInterval, "whenever"))

	assert.Equal(t, 30*time.Second, svc.Get().Health.Interval)
}

func TestSettingsService_Lookup(t *testing.T) {
	svc, _ := newTestSettings(nil)
	require.NoError(t, svc.Set(domain.SettingAPIURL, "https://scribe.example.com"))

	expected := map[string]string{
		domain.SettingAPIURL:         "https://scribe.example.com",
		domain.SettingRequestTimeout: "30s",
		domain.SettingUploadTimeout:  "10m0s",
		domain.SettingRateLimit:      "5",
		domain.SettingRateBurst:      "5",
		domain.SettingDebounceDelay:  "300ms",
		domain.SettingHealthInterval: "30s",
	}
	for _, key := range domain.AllSettingKeys() {
		got, err := svc.Lookup(key)
		require.NoError(t, err)
		assert.Equal(t, expected[key], got, key)
	}
}

func TestSettingsService_Path(t *testing.T) {
	svc, _ := newTestSettings(nil)
	assert.Equal(t, ":memory:", svc.Path())
}
