package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoDispatcher indicates that no search dispatcher was provided.
	ErrNoDispatcher = errors.New("search dispatcher is required")
)
