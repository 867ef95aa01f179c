package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
	"github.com/custodia-labs/scribe-cli/internal/logger"
)

// Ensure TranscriptionService implements the interface.
var _ driving.TranscriptionService = (*TranscriptionService)(nil)

// TranscriptionService uploads audio files to the API.
type TranscriptionService struct {
	api driven.TranscriptionAPI

	mu     sync.Mutex
	status domain.TranscriptionStatus
}

// NewTranscriptionService creates a new transcription service.
func NewTranscriptionService(api driven.TranscriptionAPI) *TranscriptionService {
	return &TranscriptionService{
		api:    api,
		status: domain.TranscriptionIdle,
	}
}

// Transcribe opens every file and uploads them in a single request.
// Any failure sets the error status; the error is returned for display.
func (s *TranscriptionService) Transcribe(ctx context.Context, paths []string) (domain.TranscriptionStatus, error) {
	if len(paths) == 0 {
		return s.Status(), domain.ErrNoFiles
	}

	logger.Section("Transcription Upload")

	files := make([]domain.AudioFile, 0, len(paths))
	closers := make([]*os.File, 0, len(paths))
	defer func() {
		for _, f := range closers {
			f.Close()
		}
	}()

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return s.setStatus(domain.TranscriptionError), fmt.Errorf("open %s: %w", path, err)
		}
		closers = append(closers, f)

		info, err := f.Stat()
		if err != nil {
			return s.setStatus(domain.TranscriptionError), fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			return s.setStatus(domain.TranscriptionError),
				fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
		}

		logger.Debug("File: %s (%d bytes)", path, info.Size())
		files = append(files, domain.AudioFile{
			Name: filepath.Base(path),
			Size: info.Size(),
			Body: f,
		})
	}

	if err := s.api.Transcribe(ctx, files); err != nil {
		logger.Error("transcription of %d file(s) failed: %v", len(files), err)
		return s.setStatus(domain.TranscriptionError), fmt.Errorf("transcribe: %w", err)
	}

	logger.Info("Uploaded %d file(s)", len(files))
	return s.setStatus(domain.TranscriptionSuccess), nil
}

// Status returns the outcome of the last upload.
func (s *TranscriptionService) Status() domain.TranscriptionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *TranscriptionService) setStatus(status domain.TranscriptionStatus) domain.TranscriptionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	return status
}

// FilterAudio keeps the paths that look like audio files, preserving order.
func FilterAudio(paths []string) []string {
	audio := make([]string, 0, len(paths))
	for _, p := range paths {
		if domain.IsAudioFile(p) {
			audio = append(audio, p)
		}
	}
	return audio
}
