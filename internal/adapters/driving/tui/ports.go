// Package tui provides an interactive terminal user interface for scribe.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"time"

	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search turns debounced terms into requests.
	Search driving.SearchDispatcher

	// Highlight partitions result text into segments.
	Highlight driving.HighlightResolver

	// Transcription uploads audio files.
	Transcription driving.TranscriptionService

	// Health polls the API health endpoint. Optional; without it the
	// header shows the status as unknown.
	Health driving.HealthMonitor

	// DebounceDelay is the quiet period before a search is sent.
	DebounceDelay time.Duration
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchDispatcher,
	highlight driving.HighlightResolver,
	transcription driving.TranscriptionService,
	health driving.HealthMonitor,
) *Ports {
	return &Ports{
		Search:        search,
		Highlight:     highlight,
		Transcription: transcription,
		Health:        health,
	}
}

// WithDebounceDelay sets the search debounce delay.
func (p *Ports) WithDebounceDelay(d time.Duration) *Ports {
	p.DebounceDelay = d
	return p
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchDispatcher
	}
	if p.Highlight == nil {
		return ErrMissingHighlightResolver
	}
	if p.Transcription == nil {
		return ErrMissingTranscriptionService
	}
	if p.DebounceDelay < 0 {
		return ErrInvalidPorts
	}
	return nil
}
