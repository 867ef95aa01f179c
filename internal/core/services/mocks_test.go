package services

import (
	"context"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// mockAPI implements driven.TranscriptionAPI for testing.
type mockAPI struct {
	HealthFunc     func(ctx context.Context) (string, error)
	TranscribeFunc func(ctx context.Context, files []domain.AudioFile) error
	SearchFunc     func(ctx context.Context, query string) ([]domain.SearchHit, error)
}

func (m *mockAPI) Health(ctx context.Context) (string, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return "Service is healthy! ^_^", nil
}

func (m *mockAPI) Transcribe(ctx context.Context, files []domain.AudioFile) error {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, files)
	}
	return nil
}

func (m *mockAPI) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []domain.SearchHit{}, nil
}
