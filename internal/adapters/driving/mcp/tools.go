package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/selection"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"words to find in transcribed audio"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Query   string               `json:"query"`
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result. Segments partition
// Content into plain and matched runs.
type SearchResultOutput struct {
	ID         int                     `json:"id"`
	FileName   string                  `json:"file_name"`
	Content    string                  `json:"content"`
	Timestamp  string                  `json:"timestamp"`
	Highlights []domain.HighlightRange `json:"highlights"`
	Segments   []domain.Segment        `json:"segments"`
}

// HealthInput is the (empty) input schema for the health tool.
type HealthInput struct{}

// HealthOutput is the output schema for the health tool.
type HealthOutput struct {
	Status    string `json:"status"`
	Healthy   bool   `json:"healthy"`
	CheckedAt string `json:"checked_at"`
}

// TranscribeInput is the input schema for the transcribe tool.
type TranscribeInput struct {
	Paths []string `json:"paths" jsonschema:"audio files, directories or globs such as calls/**/*.wav"`
}

// TranscribeOutput is the output schema for the transcribe tool.
type TranscribeOutput struct {
	Status string   `json:"status"`
	Files  []string `json:"files"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_transcriptions",
		Description: "Search transcribed audio. Returns matching files with the matched text marked in segments.",
	}, s.handleSearch)

	if s.ports.Health != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "check_health",
			Description: "Check whether the transcription service is reachable and healthy",
		}, s.handleHealth)
	}

	if s.ports.Transcription != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "transcribe_files",
			Description: "Upload local audio files to the transcription service",
		}, s.handleTranscribe)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	results, err := s.ports.Search.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("%w for %q: %w", ErrSearchFailed, input.Query, err)
	}

	if len(results) > limit {
		results = results[:limit]
	}

	output := SearchOutput{
		Query:   input.Query,
		Results: s.buildResults(results, input.Query),
		Count:   len(results),
	}
	return nil, output, nil
}

func (s *Server) buildResults(results []domain.SearchResult, term string) []SearchResultOutput {
	out := make([]SearchResultOutput, len(results))
	for i := range results {
		r := results[i]
		out[i] = SearchResultOutput{
			ID:         r.ID,
			FileName:   r.FileName,
			Content:    r.Content,
			Timestamp:  r.Timestamp,
			Highlights: r.Highlights,
			Segments:   s.ports.Highlight.Resolve(r.Content, term, r.Highlights),
		}
	}
	return out
}

// handleHealth handles the health tool invocation.
func (s *Server) handleHealth(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ HealthInput,
) (*mcp.CallToolResult, HealthOutput, error) {
	return nil, healthOutput(s.ports.Health.Check(ctx)), nil
}

func healthOutput(r domain.HealthReport) HealthOutput {
	out := HealthOutput{Status: r.Status, Healthy: r.IsHealthy()}
	if !r.CheckedAt.IsZero() {
		out.CheckedAt = r.CheckedAt.UTC().Format(time.RFC3339)
	}
	return out
}

// handleTranscribe handles the transcribe tool invocation.
func (s *Server) handleTranscribe(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TranscribeInput,
) (*mcp.CallToolResult, TranscribeOutput, error) {
	paths, err := selection.Expand(input.Paths...)
	if err != nil {
		return nil, TranscribeOutput{}, err
	}

	status, err := s.ports.Transcription.Transcribe(ctx, paths)
	if err != nil {
		return nil, TranscribeOutput{}, err
	}
	return nil, TranscribeOutput{Status: status.String(), Files: paths}, nil
}
