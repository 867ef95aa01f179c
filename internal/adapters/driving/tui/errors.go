package tui

import "errors"

// ErrMissingSearchDispatcher is returned when the search dispatcher is not provided.
var ErrMissingSearchDispatcher = errors.New("tui: search dispatcher is required")

// ErrMissingHighlightResolver is returned when the highlight resolver is not provided.
var ErrMissingHighlightResolver = errors.New("tui: highlight resolver is required")

// ErrMissingTranscriptionService is returned when the transcription service is not provided.
var ErrMissingTranscriptionService = errors.New("tui: transcription service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
