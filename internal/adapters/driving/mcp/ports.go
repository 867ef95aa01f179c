package mcp

import (
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search turns queries into API requests.
	Search driving.SearchDispatcher

	// Highlight partitions result text into segments.
	Highlight driving.HighlightResolver

	// Transcription uploads audio files. Optional; without it the
	// transcribe_files tool is not offered.
	Transcription driving.TranscriptionService

	// Health checks the API. Optional; without it the check_health tool
	// and the health resource are not offered.
	Health driving.HealthMonitor
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchDispatcher
	}
	if p.Highlight == nil {
		return ErrMissingHighlightResolver
	}
	return nil
}
