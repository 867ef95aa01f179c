package mcp

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/services"
)

// mockAPI is a mock implementation of driven.TranscriptionAPI.
type mockAPI struct {
	hits      []domain.SearchHit
	err       error
	health    string
	healthErr error
}

func (m *mockAPI) Health(context.Context) (string, error) {
	return m.health, m.healthErr
}

func (m *mockAPI) Transcribe(context.Context, []domain.AudioFile) error {
	return nil
}

func (m *mockAPI) Search(context.Context, string) ([]domain.SearchHit, error) {
	return m.hits, m.err
}

// mockTranscriptionService is a mock implementation of driving.TranscriptionService.
type mockTranscriptionService struct {
	mock.Mock
}

func (m *mockTranscriptionService) Transcribe(ctx context.Context, paths []string) (domain.TranscriptionStatus, error) {
	args := m.Called(ctx, paths)
	return args.Get(0).(domain.TranscriptionStatus), args.Error(1)
}

func (m *mockTranscriptionService) Status() domain.TranscriptionStatus {
	args := m.Called()
	return args.Get(0).(domain.TranscriptionStatus)
}

func newTestPorts(api *mockAPI) *Ports {
	return &Ports{
		Search:    services.NewSearchDispatcher(api),
		Highlight: services.NewHighlightResolver(),
		Health:    services.NewHealthMonitor(api, time.Minute),
	}
}

func meetingHits() []domain.SearchHit {
	return []domain.SearchHit{
		{
			ID:            1,
			FileName:      "standup.wav",
			Transcription: "the meeting ran long",
			Highlights:    []domain.HighlightRange{{Start: 4, End: 11, Text: "meeting"}},
			Timestamp:     "2024-01-01T00:00:00.000Z",
		},
		{ID: 2, FileName: "call.mp3", Transcription: "Meeting moved", Timestamp: "2024-01-02T00:00:00.000Z"},
	}
}

// echoAPI answers every query with one hit naming the query, after the
// query's configured delay.
type echoAPI struct {
	mockAPI
	delays map[string]time.Duration
}

func (a *echoAPI) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	select {
	case <-time.After(a.delays[query]):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []domain.SearchHit{{ID: 1, FileName: query + ".wav", Transcription: query + " text"}}, nil
}
