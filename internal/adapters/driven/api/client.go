// Package api provides the HTTP adapter for the transcription API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scribe-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.TranscriptionAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout           = 30 * time.Second
	DefaultUploadTimeout     = 10 * time.Minute
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 5
	DefaultUserAgent         = "scribe-cli"

	// UploadField is the multipart field name for each audio file.
	UploadField = "upload_files"

	// RequestIDHeader carries a per-request UUID for server-side tracing.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 4 << 10
)

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the API base URL, e.g. http://localhost:8000. Required.
	BaseURL string

	// Timeout bounds health and search requests (default: 30s).
	Timeout time.Duration

	// UploadTimeout bounds a transcription upload (default: 10m).
	UploadTimeout time.Duration

	// RequestsPerSecond paces outgoing requests (default: 5).
	// A negative value disables pacing.
	RequestsPerSecond float64

	// Burst is the limiter burst size (default: 5).
	Burst int

	// UserAgent is sent with every request.
	UserAgent string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Unwrap classifies every status error as a protocol failure.
func (e *StatusError) Unwrap() error {
	return domain.ErrProtocol
}

// Client talks to the transcription API over HTTP.
type Client struct {
	baseURL       string
	userAgent     string
	timeout       time.Duration
	uploadTimeout time.Duration
	httpClient    *http.Client
	limiter       *rate.Limiter
}

// healthResponse is the GET /health response format.
type healthResponse struct {
	Status *string `json:"status"`
}

// NewClient creates an API client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, domain.ErrAPIURLNotConfigured
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid API URL %q", domain.ErrInvalidInput, cfg.BaseURL)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UploadTimeout == 0 {
		cfg.UploadTimeout = DefaultUploadTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond < 0 {
		limit = rate.Inf
	}

	return &Client{
		baseURL:       base,
		userAgent:     cfg.UserAgent,
		timeout:       cfg.Timeout,
		uploadTimeout: cfg.UploadTimeout,
		httpClient:    cfg.HTTPClient,
		limiter:       rate.NewLimiter(limit, cfg.Burst),
	}, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health returns the status string reported by GET /health.
func (c *Client) Health(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.do(ctx, "health", http.MethodGet, c.baseURL+"/health", http.NoBody, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("health: decode response: %w: %w", domain.ErrProtocol, err)
	}
	if body.Status == nil {
		return "", fmt.Errorf("health: response has no status: %w", domain.ErrProtocol)
	}
	return *body.Status, nil
}

// Search returns the hits for query from GET /search.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/search?" + url.Values{"q": {query}}.Encode()
	resp, err := c.do(ctx, "search", http.MethodGet, endpoint, http.NoBody, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var hits []domain.SearchHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, fmt.Errorf("search: decode response: %w: %w", domain.ErrProtocol, err)
	}
	if hits == nil {
		hits = []domain.SearchHit{}
	}
	return hits, nil
}

// Transcribe uploads files to POST /transcribe as one multipart request
// with one upload_files part per file. The body is streamed.
func (c *Client) Transcribe(ctx context.Context, files []domain.AudioFile) error {
	if len(files) == 0 {
		return domain.ErrNoFiles
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeParts(mw, files))
	}()

	resp, err := c.do(ctx, "transcribe", http.MethodPost, c.baseURL+"/transcribe", pr, mw.FormDataContentType())
	// Unblock the writer if the request ended before the body was consumed.
	pr.Close()
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.Debug("transcribe: uploaded %d file(s), status %d", len(files), resp.StatusCode)
	return nil
}

// writeParts writes every file into the multipart body and closes it.
func writeParts(mw *multipart.Writer, files []domain.AudioFile) error {
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			UploadField, escapeQuotes(f.Name)))
		contentType := domain.AudioContentType(f.Name)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := mw.CreatePart(header)
		if err != nil {
			return fmt.Errorf("create part %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Body); err != nil {
			return fmt.Errorf("write part %s: %w", f.Name, err)
		}
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// do paces, sends and classifies a request. A returned response always
// has a 2xx status; the caller closes its body.
func (c *Client) do(ctx context.Context, op, method, endpoint string, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limit: %w: %w", op, domain.ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	logger.Debug("%s %s (request %s)", method, endpoint, requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: send request: %w: %w", op, domain.ErrNetwork, err)
	}
	logger.Debug("%s: status %d in %s", op, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{Op: op, StatusCode: resp.StatusCode}
		if readErr == nil {
			statusErr.Body = strings.TrimSpace(string(data))
		}
		return nil, statusErr
	}
	return resp, nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
