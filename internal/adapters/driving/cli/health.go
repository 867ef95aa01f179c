package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

var healthWatch bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show the transcription service health",
	Long: `Calls the service health endpoint and prints the reported status.

Any failure to reach the service, or an unexpected answer, is shown as
Unhealthy. With --watch the status is printed again on every
health.interval until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().BoolVarP(&healthWatch, "watch", "w", false, "keep polling at the configured interval")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if err := requireAPI(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	show := func(r domain.HealthReport) {
		fmt.Fprintf(out, "Server health: %s\n", r.Status)
	}

	if !healthWatch {
		report := healthMonitor.Check(cmd.Context())
		show(report)
		if !report.IsHealthy() {
			return errors.New("service is unhealthy")
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := healthMonitor.Start(ctx, show)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
