package driving

import (
	"context"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// HealthMonitor checks and polls the API health endpoint.
type HealthMonitor interface {
	// Check performs one health check. Failures map to domain.HealthUnhealthy.
	Check(ctx context.Context) domain.HealthReport

	// Start checks immediately and then on every interval, calling onReport
	// after each check. Blocks until Stop is called or ctx is cancelled.
	Start(ctx context.Context, onReport func(domain.HealthReport)) error

	// Stop ends polling.
	Stop() error

	// Status returns the latest report.
	Status() domain.HealthReport
}
