package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
	"github.com/custodia-labs/scribe-cli/internal/logger"
)

// Ensure HealthMonitor implements the interface.
var _ driving.HealthMonitor = (*HealthMonitor)(nil)

// HealthMonitor polls the API health endpoint on a fixed interval.
// Checks are not mutually excluded; the latest report always wins.
type HealthMonitor struct {
	api      driven.TranscriptionAPI
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	report  domain.HealthReport
	running bool
	stopCh  chan struct{}
}

// NewHealthMonitor creates a monitor polling every interval.
func NewHealthMonitor(api driven.TranscriptionAPI, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = domain.DefaultClientSettings().Health.Interval
	}
	return &HealthMonitor{
		api:      api,
		interval: interval,
		now:      time.Now,
		report:   domain.HealthReport{Status: domain.HealthUnknown},
	}
}

// Check performs one health check and records the result.
func (m *HealthMonitor) Check(ctx context.Context) domain.HealthReport {
	status, err := m.api.Health(ctx)
	if err != nil {
		logger.Error("health check failed: %v", err)
		status = domain.HealthUnhealthy
	} else if strings.TrimSpace(status) == "" {
		logger.Warn("health check returned no status")
		status = domain.HealthUnhealthy
	}

	report := domain.HealthReport{Status: status, CheckedAt: m.now()}

	m.mu.Lock()
	m.report = report
	m.mu.Unlock()

	logger.Debug("health: %s", status)
	return report
}

// Start checks immediately and then every interval until Stop is called or
// ctx is cancelled. onReport may be nil.
func (m *HealthMonitor) Start(ctx context.Context, onReport func(domain.HealthReport)) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil // Already running
	}
	m.running = true
	m.stopCh = make(chan struct{})
	stopCh := m.stopCh
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		if m.stopCh == stopCh {
			m.running = false
		}
		m.mu.Unlock()
	}()

	publish := func() {
		report := m.Check(ctx)
		if onReport != nil {
			onReport(report)
		}
	}

	publish()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			publish()
		}
	}
}

// Stop ends polling. It is safe to call when not running.
func (m *HealthMonitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil
	}
	m.running = false
	close(m.stopCh)
	return nil
}

// Status returns the latest report.
func (m *HealthMonitor) Status() domain.HealthReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.report
}

// Interval returns the polling period.
func (m *HealthMonitor) Interval() time.Duration {
	return m.interval
}
