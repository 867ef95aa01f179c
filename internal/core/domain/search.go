package domain

import "time"

// TimestampLayout is the ISO-8601 layout used for client-assigned
// timestamps (UTC, millisecond precision).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// HighlightRange marks a match inside a result's content.
// Start and End are half-open offsets counted in characters (Unicode code
// points). Ranges arrive unsorted and may overlap.
type HighlightRange struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// SearchHit is a single record of the GET /search response.
type SearchHit struct {
	ID            int              `json:"id"`
	FileName      string           `json:"file_name"`
	Transcription string           `json:"transcription"`
	Highlights    []HighlightRange `json:"highlights"`

	// Timestamp and CreatedAt are optional; older API versions omit both.
	Timestamp string `json:"timestamp,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// SearchResult is a normalised search hit.
// Results are immutable once built and live for one response generation.
type SearchResult struct {
	// ID is the API's identifier for the transcription.
	ID int `json:"id"`

	// FileName is the name of the uploaded audio file.
	FileName string `json:"fileName"`

	// Content is the transcribed text.
	Content string `json:"content"`

	// Timestamp is the API timestamp, or the time the request was issued.
	Timestamp string `json:"timestamp"`

	// Highlights are the server-supplied match ranges. Never nil.
	Highlights []HighlightRange `json:"highlights"`
}

// NewSearchResult normalises a wire hit into a SearchResult.
// issuedAt is used when the API supplied no timestamp.
func NewSearchResult(hit SearchHit, issuedAt time.Time) SearchResult {
	ts := hit.Timestamp
	if ts == "" {
		ts = hit.CreatedAt
	}
	if ts == "" {
		ts = issuedAt.UTC().Format(TimestampLayout)
	}

	highlights := make([]HighlightRange, len(hit.Highlights))
	copy(highlights, hit.Highlights)

	return SearchResult{
		ID:         hit.ID,
		FileName:   hit.FileName,
		Content:    hit.Transcription,
		Timestamp:  ts,
		Highlights: highlights,
	}
}

// SearchTicket identifies one dispatched search.
// Tickets are handed out in strictly increasing Generation order.
type SearchTicket struct {
	// Generation is the dispatcher counter captured at dispatch time.
	Generation uint64

	// Term is the debounced term the ticket was issued for.
	Term string

	// IssuedAt is when the ticket was created.
	IssuedAt time.Time

	// Cleared is true when the term was blank and no request is needed.
	Cleared bool
}

// SearchSnapshot is the observable dispatcher state.
type SearchSnapshot struct {
	// Term is the term the current results belong to.
	Term string

	// Generation is the latest dispatched generation.
	Generation uint64

	// Results are the current results, empty on failure or blank term.
	Results []SearchResult

	// Busy is true while the latest generation's request is in flight.
	Busy bool

	// Failed is true when the latest request ended in an error.
	Failed bool

	// Stale is set on the snapshot returned for a superseded response.
	// Its results were discarded.
	Stale bool
}
