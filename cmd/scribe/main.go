// Command scribe is a terminal client for an audio transcription service.
package main

import (
	"os"
	"runtime/debug"
	"strings"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scribe-cli/internal/core/services"
	"github.com/custodia-labs/scribe-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

func main() {
	cli.SetVersion(buildVersion())
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return ""
}

// bootstrap wires the core services to their adapters.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	logger.Section("Bootstrap")

	var store driven.ConfigStore
	fileStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		logger.Warn("Config unavailable, using defaults: %v", err)
		store = memory.NewConfigStore()
	} else {
		logger.Debug("Config: %s", fileStore.Path())
		store = fileStore
	}

	settingsService := services.NewSettingsService(store)
	settings := settingsService.Get()

	out := &cli.Services{
		Settings:      settingsService,
		DebounceDelay: settings.Search.DebounceDelay,
	}

	baseURL := settings.API.URL
	if u := strings.TrimSpace(opts.APIURL); u != "" {
		baseURL = u
	}

	rps := settings.API.RateLimit
	if rps == 0 {
		rps = -1
	}

	client, err := api.NewClient(api.Config{
		BaseURL:           baseURL,
		Timeout:           settings.API.RequestTimeout,
		UploadTimeout:     settings.API.UploadTimeout,
		RequestsPerSecond: rps,
		Burst:             settings.API.RateBurst,
		UserAgent:         "scribe-cli/" + cliVersion(),
	})
	if err != nil {
		logger.Debug("API client not created: %v", err)
		out.APIErr = err
		return out, nil
	}
	logger.Debug("API: %s", baseURL)

	out.Search = services.NewSearchDispatcher(client)
	out.Highlight = services.NewHighlightResolver()
	out.Transcription = services.NewTranscriptionService(client)
	out.Health = services.NewHealthMonitor(client, settings.Health.Interval)
	return out, nil
}

func cliVersion() string {
	if v := buildVersion(); v != "" {
		return v
	}
	return "dev"
}
