// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and command results that flow through the
// Elm architecture.
package messages

import (
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// QueryDebounced is sent when the search input has been quiet for the
// debounce delay. Term is the input value at that moment.
type QueryDebounced struct {
	Term string
}

// SearchCompleted carries the dispatcher state after a search ran.
// Stale snapshots must be ignored by the receiver.
type SearchCompleted struct {
	Snapshot domain.SearchSnapshot
}

// HealthChecked carries a health report from the monitor.
type HealthChecked struct {
	Report domain.HealthReport
}

// FilesSelected carries the audio files matched by an upload path or glob.
type FilesSelected struct {
	Pattern string
	Paths   []string
	Err     error
}

// TranscriptionCompleted carries the outcome of an upload.
type TranscriptionCompleted struct {
	Status domain.TranscriptionStatus
	Files  int
	Err    error
}

// PaneChanged is sent when the active pane switches.
type PaneChanged struct {
	Pane Pane
}

// Pane identifies which pane has focus.
type Pane int

const (
	// PaneSearch is the incremental search pane.
	PaneSearch Pane = iota
	// PaneUpload is the file selection and transcription pane.
	PaneUpload
)

// String returns the display name of the pane.
func (p Pane) String() string {
	switch p {
	case PaneSearch:
		return "Search"
	case PaneUpload:
		return "Upload"
	default:
		return "Unknown"
	}
}

// Next returns the pane after p, wrapping around.
func (p Pane) Next() Pane {
	if p == PaneSearch {
		return PaneUpload
	}
	return PaneSearch
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
