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

// Ensure SearchDispatcher implements the interface.
var _ driving.SearchDispatcher = (*SearchDispatcher)(nil)

// SearchDispatcher issues one search request per debounced term.
//
// Every Begin increments a generation counter. Run commits a response only
// if its ticket still carries the latest generation, so a slow response
// for an old term can never replace the results of a newer one.
type SearchDispatcher struct {
	api driven.TranscriptionAPI
	now func() time.Time

	mu         sync.Mutex
	generation uint64
	term       string
	results    []domain.SearchResult
	busy       bool
	failed     bool
}

// NewSearchDispatcher creates a dispatcher backed by the given API.
func NewSearchDispatcher(api driven.TranscriptionAPI) *SearchDispatcher {
	return &SearchDispatcher{
		api:     api,
		now:     time.Now,
		results: []domain.SearchResult{},
	}
}

// WithClock replaces the clock used for client-assigned timestamps.
func (d *SearchDispatcher) WithClock(now func() time.Time) *SearchDispatcher {
	d.now = now
	return d
}

// Begin registers a new debounced term.
// A blank term clears the results and marks the ticket as Cleared; it also
// supersedes any request still in flight.
func (d *SearchDispatcher) Begin(term string) domain.SearchTicket {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	ticket := domain.SearchTicket{
		Generation: d.generation,
		Term:       term,
		IssuedAt:   d.now(),
	}

	if strings.TrimSpace(term) == "" {
		logger.Debug("search gen=%d: blank term, clearing results", ticket.Generation)
		ticket.Cleared = true
		d.term = ""
		d.results = []domain.SearchResult{}
		d.busy = false
		d.failed = false
		return ticket
	}

	logger.Debug("search gen=%d: dispatching %q", ticket.Generation, term)
	d.busy = true
	return ticket
}

// Run performs the request for ticket and commits the outcome if the
// ticket is still the latest. Failures clear the results; they are logged
// and reported through the Failed flag, never returned.
func (d *SearchDispatcher) Run(ctx context.Context, ticket domain.SearchTicket) domain.SearchSnapshot {
	if ticket.Cleared {
		return d.Snapshot()
	}

	hits, err := d.api.Search(ctx, ticket.Term)

	d.mu.Lock()
	defer d.mu.Unlock()

	if ticket.Generation != d.generation {
		logger.Debug("search gen=%d: discarding stale response (latest=%d)", ticket.Generation, d.generation)
		snap := d.snapshotLocked()
		snap.Stale = true
		return snap
	}

	d.busy = false
	d.term = ticket.Term

	if err != nil {
		logger.Error("search %q failed: %v", ticket.Term, err)
		d.results = []domain.SearchResult{}
		d.failed = true
		return d.snapshotLocked()
	}

	d.results = normaliseHits(hits, ticket.IssuedAt)
	d.failed = false
	logger.Debug("search gen=%d: %d results", ticket.Generation, len(d.results))
	return d.snapshotLocked()
}

// Dispatch begins and runs a search for term.
func (d *SearchDispatcher) Dispatch(ctx context.Context, term string) domain.SearchSnapshot {
	return d.Run(ctx, d.Begin(term))
}

// Search performs one request for term and returns its own normalised
// results without touching the dispatcher state. Concurrent callers each
// get the results for their own term. A blank term returns no results.
func (d *SearchDispatcher) Search(ctx context.Context, term string) ([]domain.SearchResult, error) {
	if strings.TrimSpace(term) == "" {
		return []domain.SearchResult{}, nil
	}

	issuedAt := d.now()
	hits, err := d.api.Search(ctx, term)
	if err != nil {
		logger.Error("search %q failed: %v", term, err)
		return nil, err
	}
	return normaliseHits(hits, issuedAt), nil
}

// Snapshot returns the current dispatcher state.
func (d *SearchDispatcher) Snapshot() domain.SearchSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// snapshotLocked copies the state (caller must hold lock).
func (d *SearchDispatcher) snapshotLocked() domain.SearchSnapshot {
	results := make([]domain.SearchResult, len(d.results))
	copy(results, d.results)
	return domain.SearchSnapshot{
		Term:       d.term,
		Generation: d.generation,
		Results:    results,
		Busy:       d.busy,
		Failed:     d.failed,
	}
}

// normaliseHits maps wire hits to results in response order.
func normaliseHits(hits []domain.SearchHit, issuedAt time.Time) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, domain.NewSearchResult(hit, issuedAt))
	}
	return results
}
