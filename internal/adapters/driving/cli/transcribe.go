package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/selection"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

var (
	transcribeWatchDir string
	transcribeQuiet    time.Duration
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [file|dir|glob]...",
	Short: "Upload audio files for transcription",
	Long: `Uploads audio files to the transcription service in one request.

Arguments may be files, directories (their audio files, not recursive) or
globs such as 'calls/**/*.wav'. Quote globs so the shell does not expand
them first.

With --watch the command keeps running and uploads new audio files that
appear in the directory once it has been quiet for --quiet-period.`,
	Example: `  scribe transcribe standup.wav
  scribe transcribe 'recordings/**/*.m4a'
  scribe transcribe --watch ~/Recordings`,
	RunE: runTranscribe,
}

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeWatchDir, "watch", "w", "", "watch a directory and upload new audio files")
	transcribeCmd.Flags().DurationVar(&transcribeQuiet, "quiet-period", watch.DefaultQuietPeriod,
		"with --watch, how long the directory must be quiet before uploading")
	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && transcribeWatchDir == "" {
		return fmt.Errorf("%w: pass files, directories or globs, or --watch DIR", domain.ErrNoFiles)
	}
	if err := requireAPI(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if len(args) > 0 {
		paths, err := selection.Expand(args...)
		if err != nil {
			return err
		}
		if err := upload(cmd.Context(), out, paths); err != nil {
			return err
		}
	}

	if transcribeWatchDir == "" {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchAndUpload(ctx, out, watch.New(transcribeWatchDir, transcribeQuiet))
}

// upload transcribes paths and prints the outcome.
func upload(ctx context.Context, out io.Writer, paths []string) error {
	fmt.Fprintf(out, "Uploading %d file(s)...\n", len(paths))
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p)
	}

	status, err := transcriptionService.Transcribe(ctx, paths)
	fmt.Fprintf(out, "Transcription: %s\n", status)
	return err
}

// watchAndUpload uploads each settled batch until ctx is cancelled.
// Failed uploads are reported and watching continues.
func watchAndUpload(ctx context.Context, out io.Writer, w *watch.Watcher) error {
	batches, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Watching %s for new audio files (ctrl+c to stop)\n", w.Dir())
	for batch := range batches {
		if err := upload(ctx, out, batch); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(out, "Upload failed: %v\n", err)
		}
	}
	return nil
}
