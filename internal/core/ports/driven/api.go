package driven

import (
	"context"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// TranscriptionAPI is the remote transcription service.
// The backend is treated as a black box; implementations only move bytes
// and classify failures.
//
// Errors wrap domain.ErrNetwork when no response was received and
// domain.ErrProtocol for non-2xx statuses or undecodable bodies.
type TranscriptionAPI interface {
	// Health calls GET /health and returns the reported status string.
	Health(ctx context.Context) (string, error)

	// Transcribe uploads files to POST /transcribe as repeated
	// upload_files multipart parts. A nil error means a 2xx response.
	Transcribe(ctx context.Context, files []domain.AudioFile) error

	// Search calls GET /search?q= and returns the raw hits.
	Search(ctx context.Context, query string) ([]domain.SearchHit, error)
}
