// Package mcp provides an MCP (Model Context Protocol) server adapter for scribe.
// It lets AI assistants search transcriptions, check the service health and
// submit audio files.
package mcp

import "errors"

// ErrMissingSearchDispatcher is returned when the search dispatcher is not provided.
var ErrMissingSearchDispatcher = errors.New("mcp: search dispatcher is required")

// ErrMissingHighlightResolver is returned when the highlight resolver is not provided.
var ErrMissingHighlightResolver = errors.New("mcp: highlight resolver is required")

// ErrSearchFailed is returned by the search tool when the request failed.
var ErrSearchFailed = errors.New("search failed")
