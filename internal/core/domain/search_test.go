package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchResult_RenamesWireFields(t *testing.T) {
	hit := SearchHit{
		ID:            7,
		FileName:      "meeting.wav",
		Transcription: "hello world",
		Highlights:    []HighlightRange{{Start: 0, End: 5, Text: "hello"}},
	}
	issued := time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.UTC)

	result := NewSearchResult(hit, issued)

	assert.Equal(t, 7, result.ID)
	assert.Equal(t, "meeting.wav", result.FileName)
	assert.Equal(t, "hello world", result.Content)
	assert.Equal(t, "2024-03-01T12:30:45.123Z", result.Timestamp)
	require.Len(t, result.Highlights, 1)
	assert.Equal(t, "hello", result.Highlights[0].Text)
}

func TestNewSearchResult_Timestamp(t *testing.T) {
	issued := time.Date(2024, 3, 1, 0, 0, 0, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		name     string
		hit      SearchHit
		expected string
	}{
		{
			name:     "api timestamp wins",
			hit:      SearchHit{Timestamp: "2023-01-01T00:00:00Z", CreatedAt: "2022-01-01T00:00:00Z"},
			expected: "2023-01-01T00:00:00Z",
		},
		{
			name:     "created_at used when timestamp missing",
			hit:      SearchHit{CreatedAt: "2022-01-01T00:00:00Z"},
			expected: "2022-01-01T00:00:00Z",
		},
		{
			name:     "issuance time converted to UTC",
			hit:      SearchHit{},
			expected: "2024-02-29T23:00:00.000Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewSearchResult(tt.hit, issued)
			assert.Equal(t, tt.expected, result.Timestamp)
		})
	}
}

func TestNewSearchResult_HighlightsNeverNil(t *testing.T) {
	result := NewSearchResult(SearchHit{Transcription: "text"}, time.Now())

	assert.NotNil(t, result.Highlights)
	assert.Empty(t, result.Highlights)
}

func TestNewSearchResult_CopiesHighlights(t *testing.T) {
	hit := SearchHit{Highlights: []HighlightRange{{Start: 1, End: 2}}}

	result := NewSearchResult(hit, time.Now())
	hit.Highlights[0].Start = 99

	assert.Equal(t, 1, result.Highlights[0].Start)
}
