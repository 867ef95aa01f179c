package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment_Matched(t *testing.T) {
	assert.True(t, Segment{Kind: SegmentMatched, Text: "x"}.Matched())
	assert.False(t, Segment{Kind: SegmentPlain, Text: "x"}.Matched())
}

func TestJoinSegments(t *testing.T) {
	segments := []Segment{
		{Kind: SegmentMatched, Text: "cat"},
		{Kind: SegmentPlain, Text: " s"},
		{Kind: SegmentMatched, Text: "cat"},
		{Kind: SegmentPlain, Text: "ter"},
	}

	assert.Equal(t, "cat scatter", JoinSegments(segments))
	assert.Equal(t, "", JoinSegments(nil))
}
