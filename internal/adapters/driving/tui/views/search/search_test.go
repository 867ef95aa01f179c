package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/services"
)

// fakeAPI implements driven.TranscriptionAPI for testing.
type fakeAPI struct {
	SearchFunc func(ctx context.Context, query string) ([]domain.SearchHit, error)
}

func (f *fakeAPI) Health(context.Context) (string, error) { return "ok", nil }

func (f *fakeAPI) Transcribe(context.Context, []domain.AudioFile) error { return nil }

func (f *fakeAPI) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	if f.SearchFunc != nil {
		return f.SearchFunc(ctx, query)
	}
	return []domain.SearchHit{}, nil
}

func meetingHits(context.Context, string) ([]domain.SearchHit, error) {
	return []domain.SearchHit{
		{
			ID:            1,
			FileName:      "standup.wav",
			Transcription: "the meeting ran long",
			Highlights:    []domain.HighlightRange{{Start: 4, End: 11}},
			Timestamp:     "2024-01-01T00:00:00.000Z",
		},
	}, nil
}

func newTestView(api *fakeAPI, delay time.Duration) *View {
	v := NewView(nil, nil, services.NewSearchDispatcher(api), services.NewHighlightResolver(), delay)
	v.SetDimensions(100, 30)
	return v
}

// complete runs the request for the view's latest ticket and feeds the
// completion back, as the tea runtime would.
func complete(v *View, term string) {
	msg := v.runSearch(domain.SearchTicket{Generation: v.latest, Term: term})()
	v.Update(msg)
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil, nil, 0)
	t.Cleanup(v.Close)

	require.NotNil(t, v)
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
	assert.Empty(t, v.Query())
	assert.NotNil(t, v.Init())
}

func TestView_WithContext(t *testing.T) {
	v := NewView(nil, nil, nil, nil, 0)
	t.Cleanup(v.Close)
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("k"), "v")

	assert.Same(t, v, v.WithContext(ctx))
	assert.Equal(t, ctx, v.ctx)
}

func TestView_EmptyHint(t *testing.T) {
	v := newTestView(&fakeAPI{}, 0)
	t.Cleanup(v.Close)

	assert.Contains(t, v.View(), HintEmpty)
}

func TestView_TypingIsDebounced(t *testing.T) {
	v := newTestView(&fakeAPI{}, 20*time.Millisecond)
	t.Cleanup(v.Close)

	typeText(v, "meet")
	assert.Equal(t, "meet", v.Query())

	msg := v.waitForQuery()()
	assert.Equal(t, messages.QueryDebounced{Term: "meet"}, msg)
}

func TestView_QueryRunsSearch(t *testing.T) {
	v := newTestView(&fakeAPI{SearchFunc: meetingHits}, 0)
	t.Cleanup(v.Close)

	_, cmd := v.Update(messages.QueryDebounced{Term: "meeting"})
	require.NotNil(t, cmd)
	assert.True(t, v.Snapshot().Busy)
	assert.Equal(t, status.StateBusy, v.StatusBar().State())

	complete(v, "meeting")

	snap := v.Snapshot()
	assert.False(t, snap.Busy)
	require.Len(t, v.Results(), 1)
	assert.Equal(t, "standup.wav", v.Results()[0].FileName)
	assert.Equal(t, []domain.Segment{
		{Kind: domain.SegmentPlain, Text: "the "},
		{Kind: domain.SegmentMatched, Text: "meeting"},
		{Kind: domain.SegmentPlain, Text: " ran long"},
	}, v.Items()[0].Segments)
	assert.Equal(t, status.StateResults, v.StatusBar().State())
	assert.Equal(t, "1 result", v.StatusBar().Message())
	assert.Contains(t, v.View(), "standup.wav")
}

func TestView_NoResults(t *testing.T) {
	v := newTestView(&fakeAPI{}, 0)
	t.Cleanup(v.Close)
	v.SetQuery("zebra")

	v.Update(messages.QueryDebounced{Term: "zebra"})
	complete(v, "zebra")

	assert.Empty(t, v.Results())
	assert.Equal(t, "0 results", v.StatusBar().Message())
	assert.Contains(t, v.View(), `No results found for "zebra"`)
}

func TestView_SearchFailure(t *testing.T) {
	api := &fakeAPI{SearchFunc: func(context.Context, string) ([]domain.SearchHit, error) {
		return nil, fmt.Errorf("dial: %w", domain.ErrNetwork)
	}}
	v := newTestView(api, 0)
	t.Cleanup(v.Close)
	v.SetQuery("meeting")

	v.Update(messages.QueryDebounced{Term: "meeting"})
	complete(v, "meeting")

	assert.True(t, v.Snapshot().Failed)
	assert.False(t, v.Snapshot().Busy)
	assert.Empty(t, v.Results())
	assert.Equal(t, status.StateError, v.StatusBar().State())
	assert.Contains(t, v.View(), HintFailed)
}

func TestView_StaleCompletionIgnored(t *testing.T) {
	api := &fakeAPI{SearchFunc: func(_ context.Context, q string) ([]domain.SearchHit, error) {
		return []domain.SearchHit{{ID: 1, FileName: q + ".wav", Transcription: q}}, nil
	}}
	v := newTestView(api, 0)
	t.Cleanup(v.Close)

	v.Update(messages.QueryDebounced{Term: "me"})
	first := domain.SearchTicket{Generation: v.latest, Term: "me"}
	v.Update(messages.QueryDebounced{Term: "meeting"})

	v.Update(v.runSearch(first)())
	assert.Empty(t, v.Results())
	assert.True(t, v.Snapshot().Busy)

	complete(v, "meeting")
	require.Len(t, v.Results(), 1)
	assert.Equal(t, "meeting.wav", v.Results()[0].FileName)
}

func TestView_OlderGenerationIgnored(t *testing.T) {
	v := newTestView(&fakeAPI{SearchFunc: meetingHits}, 0)
	t.Cleanup(v.Close)

	v.Update(messages.QueryDebounced{Term: "meeting"})
	complete(v, "meeting")
	require.Len(t, v.Results(), 1)

	v.Update(messages.SearchCompleted{Snapshot: domain.SearchSnapshot{Generation: v.latest - 1}})
	assert.Len(t, v.Results(), 1)
}

func TestView_BlankTermClears(t *testing.T) {
	v := newTestView(&fakeAPI{SearchFunc: meetingHits}, 0)
	t.Cleanup(v.Close)

	v.Update(messages.QueryDebounced{Term: "meeting"})
	complete(v, "meeting")
	require.Len(t, v.Results(), 1)

	_, cmd := v.Update(messages.QueryDebounced{Term: "   "})
	assert.NotNil(t, cmd)
	assert.Empty(t, v.Results())
	assert.False(t, v.Snapshot().Busy)
	assert.Equal(t, status.StateReady, v.StatusBar().State())
}

func TestView_ClearSupersedesInFlight(t *testing.T) {
	v := newTestView(&fakeAPI{SearchFunc: meetingHits}, 0)
	t.Cleanup(v.Close)
	typeText(v, "meeting")

	v.Update(messages.QueryDebounced{Term: "meeting"})
	inFlight := domain.SearchTicket{Generation: v.latest, Term: "meeting"}

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, v.Query())

	v.Update(v.runSearch(inFlight)())
	assert.Empty(t, v.Results())
	assert.False(t, v.Snapshot().Busy)
	assert.Contains(t, v.View(), HintEmpty)
}

func TestView_Navigation(t *testing.T) {
	api := &fakeAPI{SearchFunc: func(context.Context, string) ([]domain.SearchHit, error) {
		return []domain.SearchHit{
			{ID: 1, FileName: "a.wav", Transcription: "meeting one"},
			{ID: 2, FileName: "b.wav", Transcription: "meeting two"},
		}, nil
	}}
	v := newTestView(api, 0)
	t.Cleanup(v.Close)

	v.Update(messages.QueryDebounced{Term: "meeting"})
	complete(v, "meeting")

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.SelectedIndex())
	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.SelectedIndex())
	assert.Empty(t, v.Query(), "arrow keys must not edit the query")
}

func TestView_NoDispatcher(t *testing.T) {
	v := NewView(nil, nil, nil, nil, 0)
	t.Cleanup(v.Close)

	_, cmd := v.Update(messages.QueryDebounced{Term: "meeting"})

	assert.NotNil(t, cmd)
	assert.Equal(t, status.StateError, v.StatusBar().State())
	assert.Equal(t, ErrNoDispatcher.Error(), v.StatusBar().Message())
}

func TestView_ErrorOccurred(t *testing.T) {
	v := newTestView(&fakeAPI{}, 0)
	t.Cleanup(v.Close)

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.Equal(t, status.StateError, v.StatusBar().State())
	assert.True(t, strings.Contains(v.View(), "boom"))
}

func TestView_CloseEndsListener(t *testing.T) {
	v := newTestView(&fakeAPI{}, time.Hour)
	wait := v.waitForQuery()

	v.Close()

	assert.Nil(t, wait())
}

func TestNoResultsHint(t *testing.T) {
	assert.Equal(t, `No results found for "zebra"`, NoResultsHint("zebra"))
}
