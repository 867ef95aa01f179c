package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/scribe-cli/internal/logger"
)

var tuiLogFile string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for scribe.

The search pane searches as you type and highlights matches. The upload
pane selects files, directories or globs and sends them for
transcription. The header shows the service health, refreshed every
health.interval.

Controls:
  tab      - Switch between search and upload
  ↑/↓      - Navigate results
  esc      - Clear the search
  enter    - Add the typed path to the upload selection
  ctrl+t   - Transcribe the selected files
  ctrl+x   - Clear the upload selection
  ctrl+c   - Quit

Logs would corrupt the screen, so they are discarded unless --log-file
is given.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file while the TUI runs")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if err := requireAPI(); err != nil {
		return err
	}

	restore, err := redirectLogs(tuiLogFile)
	if err != nil {
		return err
	}
	defer restore()

	ports := tui.NewPorts(searchDispatcher, highlightResolver, transcriptionService, healthMonitor).
		WithDebounceDelay(debounceDelay)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs sends logger output to path, or discards it when path is
// empty. The returned func restores the previous output.
func redirectLogs(path string) (func(), error) {
	prev := logger.Output()

	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(prev) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(prev)
		_ = f.Close()
	}, nil
}
