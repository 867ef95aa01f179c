package domain

import "errors"

// Domain errors represent failures the core knows how to recover from.
// Adapters wrap these so callers can classify failures with errors.Is.
var (
	// ErrNetwork indicates the request never produced an HTTP response
	// (connection refused, DNS failure, timeout, cancelled context).
	ErrNetwork = errors.New("network failure")

	// ErrProtocol indicates the API answered with a non-2xx status or a
	// body that could not be decoded.
	ErrProtocol = errors.New("protocol failure")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoFiles indicates a transcription was requested without files.
	ErrNoFiles = errors.New("no files selected")

	// ErrAPIURLNotConfigured indicates the API base URL is missing.
	// The core never checks this; outer surfaces report it to the user.
	ErrAPIURLNotConfigured = errors.New("api url not configured")

	// ErrUnknownSetting indicates a settings key that does not exist.
	ErrUnknownSetting = errors.New("unknown setting")
)
