// Package cli provides the cobra commands for scribe.
// It is a driving adapter: commands only talk to the core through the
// driving ports set by the wiring layer.
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
	"github.com/custodia-labs/scribe-cli/internal/logger"
)

// version is set by the wiring layer from build info.
var version = "dev"

// Options holds the values of the root persistent flags.
type Options struct {
	// APIURL overrides the configured API base URL.
	APIURL string

	// ConfigDir overrides the directory holding config.toml.
	ConfigDir string

	// Verbose enables debug logging.
	Verbose bool
}

// Services holds the core services the commands drive.
type Services struct {
	Settings      driving.SettingsService
	Search        driving.SearchDispatcher
	Highlight     driving.HighlightResolver
	Transcription driving.TranscriptionService
	Health        driving.HealthMonitor

	// DebounceDelay is the TUI search debounce delay.
	DebounceDelay time.Duration

	// APIErr explains why the API services are nil, usually
	// domain.ErrAPIURLNotConfigured.
	APIErr error
}

// BootstrapFunc builds the services once flags are parsed.
type BootstrapFunc func(opts Options) (*Services, error)

var (
	rootOpts  Options
	bootstrap BootstrapFunc

	settingsService      driving.SettingsService
	searchDispatcher     driving.SearchDispatcher
	highlightResolver    driving.HighlightResolver
	transcriptionService driving.TranscriptionService
	healthMonitor        driving.HealthMonitor
	debounceDelay        = domain.DefaultClientSettings().Search.DebounceDelay
	apiErr               error
)

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Upload audio for transcription and search the transcripts",
	Long: `scribe is a terminal client for an audio transcription service.

It uploads audio files, shows the health of the service and searches
transcribed text with the matched words highlighted.

Point it at the service with --api-url, the SCRIBE_API_URL environment
variable or 'scribe config set api.url URL'.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootOpts.APIURL, "api-url", "", "transcription API base URL (overrides config)")
	flags.StringVar(&rootOpts.ConfigDir, "config-dir", "", "directory holding config.toml (default ~/.scribe)")
	flags.BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "enable debug logging")
}

// SetBootstrap registers the function that builds services before a
// command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services for the commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	settingsService = s.Settings
	searchDispatcher = s.Search
	highlightResolver = s.Highlight
	transcriptionService = s.Transcription
	healthMonitor = s.Health
	if s.DebounceDelay >= 0 {
		debounceDelay = s.DebounceDelay
	}
	apiErr = s.APIErr
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(rootOpts.Verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	svc, err := bootstrap(rootOpts)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(svc)
	return nil
}

// requireAPI reports why commands that talk to the API cannot run.
func requireAPI() error {
	if searchDispatcher != nil && transcriptionService != nil && healthMonitor != nil {
		return nil
	}
	if apiErr != nil {
		if errors.Is(apiErr, domain.ErrAPIURLNotConfigured) {
			return fmt.Errorf("%w: use --api-url, set %s or run 'scribe config set %s URL'",
				apiErr, domain.APIURLEnvVar, domain.SettingAPIURL)
		}
		return apiErr
	}
	return errors.New("api client not configured")
}
