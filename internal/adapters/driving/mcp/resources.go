package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for scribe resources.
	uriScheme = "scribe://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Health != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "health",
			Name:        "health",
			Description: "Latest health report of the transcription service",
			MIMEType:    "application/json",
		}, s.handleHealthResource)
	}

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "search/{query}",
		Name:        "search-results",
		Description: "Transcriptions matching a query, with highlight segments",
		MIMEType:    "application/json",
	}, s.handleSearchResource)
}

// handleHealthResource returns the last health report without a new check.
func (s *Server) handleHealthResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(healthOutput(s.ports.Health.Status()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling health: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

// handleSearchResource searches for the query in the URI.
func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query := extractQuery(req.Params.URI)
	if strings.TrimSpace(query) == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	results, err := s.ports.Search.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w for %q: %w", ErrSearchFailed, query, err)
	}

	data, err := json.MarshalIndent(s.buildResults(results, query), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling results: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// extractQuery extracts the unescaped query from a URI like scribe://search/{query}.
func extractQuery(uri string) string {
	const prefix = uriScheme + "search/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	query, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return query
}
