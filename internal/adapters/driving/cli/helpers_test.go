package cli

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/services"
)

// mockAPI implements driven.TranscriptionAPI for CLI tests.
type mockAPI struct {
	mu sync.Mutex

	hits          []domain.SearchHit
	searchErr     error
	health        string
	healthErr     error
	transcribeErr error

	queries  []string
	uploaded [][]string
}

func (m *mockAPI) Health(context.Context) (string, error) {
	if m.healthErr != nil {
		return "", m.healthErr
	}
	if m.health == "" {
		return "Service is healthy! ^_^", nil
	}
	return m.health, nil
}

func (m *mockAPI) Transcribe(_ context.Context, files []domain.AudioFile) error {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	m.mu.Lock()
	m.uploaded = append(m.uploaded, names)
	m.mu.Unlock()
	return m.transcribeErr
}

func (m *mockAPI) Search(_ context.Context, query string) ([]domain.SearchHit, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()
	return m.hits, m.searchErr
}

func (m *mockAPI) Uploads() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.uploaded...)
}

// setupTestServices installs services backed by a default mock API.
func setupTestServices() func() {
	return setupTestServicesWith(&mockAPI{})
}

// setupTestServicesWith installs services backed by api and an in-memory
// config store. The returned func restores the previous state.
func setupTestServicesWith(api *mockAPI) func() {
	prev := Services{
		Settings:      settingsService,
		Search:        searchDispatcher,
		Highlight:     highlightResolver,
		Transcription: transcriptionService,
		Health:        healthMonitor,
		DebounceDelay: debounceDelay,
		APIErr:        apiErr,
	}
	prevBootstrap := bootstrap

	bootstrap = nil
	resetFlags()
	SetServices(&Services{
		Settings:      services.NewSettingsService(memory.NewConfigStore()),
		Search:        services.NewSearchDispatcher(api),
		Highlight:     services.NewHighlightResolver(),
		Transcription: services.NewTranscriptionService(api),
		Health:        services.NewHealthMonitor(api, 10*time.Millisecond),
	})

	return func() {
		SetServices(&prev)
		bootstrap = prevBootstrap
		resetFlags()
	}
}

// resetFlags restores flag variables, which cobra keeps between runs.
func resetFlags() {
	rootOpts = Options{}
	searchLimit = 0
	searchFormat = FormatText
	transcribeWatchDir = ""
	transcribeQuiet = 50 * time.Millisecond
	healthWatch = false
	tuiLogFile = ""
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
