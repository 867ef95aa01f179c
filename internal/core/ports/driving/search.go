package driving

import (
	"context"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// SearchDispatcher turns debounced search terms into API requests and keeps
// the latest generation's results.
type SearchDispatcher interface {
	// Begin registers a new debounced term and returns its ticket.
	// Blank terms clear the results immediately and need no Run.
	Begin(term string) domain.SearchTicket

	// Run performs the request for a ticket. Responses for superseded
	// tickets are discarded and reported with Stale set.
	Run(ctx context.Context, ticket domain.SearchTicket) domain.SearchSnapshot

	// Dispatch is Begin followed by Run.
	Dispatch(ctx context.Context, term string) domain.SearchSnapshot

	// Search performs a one-off request that bypasses the shared state,
	// for request/response callers that may overlap.
	Search(ctx context.Context, term string) ([]domain.SearchResult, error)

	// Snapshot returns the current state.
	Snapshot() domain.SearchSnapshot
}

// HighlightResolver partitions result text into plain and matched segments.
type HighlightResolver interface {
	// Resolve returns the segments for content. Server ranges take
	// precedence; without them the raw term is matched case-insensitively.
	Resolve(content, rawTerm string, ranges []domain.HighlightRange) []domain.Segment
}
