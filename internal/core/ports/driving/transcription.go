package driving

import (
	"context"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// TranscriptionService uploads audio files for transcription.
type TranscriptionService interface {
	// Transcribe uploads the files at paths. It returns domain.ErrNoFiles
	// when paths is empty and leaves the status unchanged in that case.
	Transcribe(ctx context.Context, paths []string) (domain.TranscriptionStatus, error)

	// Status returns the outcome of the last upload.
	Status() domain.TranscriptionStatus
}
