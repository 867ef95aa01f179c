package domain

import "strings"

// SegmentKind tags a run of text for rendering.
type SegmentKind string

const (
	// SegmentPlain is unhighlighted text.
	SegmentPlain SegmentKind = "plain"

	// SegmentMatched is text that matched the search.
	SegmentMatched SegmentKind = "matched"
)

// Segment is a contiguous run of text. A sequence of segments partitions
// the original content: concatenating their texts reproduces it.
type Segment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`
}

// Matched returns true if the segment is a match.
func (s Segment) Matched() bool {
	return s.Kind == SegmentMatched
}

// JoinSegments concatenates segment texts.
func JoinSegments(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}
