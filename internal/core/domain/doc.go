// Package domain defines the core entities of the scribe client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchHit: A raw search record as returned by the transcription API
//   - SearchResult: A normalised, immutable search result
//   - HighlightRange: A character span marking a match inside a result
//   - Segment: A plain or matched run of text ready for rendering
//   - HealthReport: The last observed health of the API
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
