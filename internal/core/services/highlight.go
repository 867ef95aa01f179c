package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
)

// Ensure HighlightResolver implements the interface.
var _ driving.HighlightResolver = (*HighlightResolver)(nil)

// HighlightResolver adapts ResolveSegments to the driving port.
type HighlightResolver struct{}

// NewHighlightResolver creates a highlight resolver.
func NewHighlightResolver() *HighlightResolver {
	return &HighlightResolver{}
}

// Resolve partitions content into plain and matched segments.
func (HighlightResolver) Resolve(content, rawTerm string, ranges []domain.HighlightRange) []domain.Segment {
	return ResolveSegments(content, rawTerm, ranges)
}

// ResolveSegments partitions content into plain and matched segments.
//
// Server ranges take precedence over the raw term. Ranges are sorted by
// start (stable) and clamped against the cursor and the content bounds, so
// overlapping ranges never duplicate text and the output always
// concatenates back to content. Without ranges the raw term is matched
// literally and case-insensitively; a blank term yields a single plain
// segment.
func ResolveSegments(content, rawTerm string, ranges []domain.HighlightRange) []domain.Segment {
	if len(ranges) > 0 {
		return resolveRanges(content, ranges)
	}
	if strings.TrimSpace(rawTerm) == "" {
		return plainOnly(content)
	}
	return resolveTerm(content, rawTerm)
}

// resolveRanges walks sorted ranges left to right. Offsets are character
// offsets, so slicing happens on runes.
func resolveRanges(content string, ranges []domain.HighlightRange) []domain.Segment {
	sorted := make([]domain.HighlightRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	text := []rune(content)
	segments := make([]domain.Segment, 0, len(sorted)*2+1)
	cursor := 0

	for _, r := range sorted {
		start := max(r.Start, cursor, 0)
		end := min(r.End, len(text))
		if end <= start {
			// Empty, inverted, out of bounds or already consumed.
			continue
		}

		if start > cursor {
			segments = append(segments, domain.Segment{
				Kind: domain.SegmentPlain,
				Text: string(text[cursor:start]),
			})
		}
		segments = append(segments, domain.Segment{
			Kind: domain.SegmentMatched,
			Text: string(text[start:end]),
		})
		cursor = end
	}

	if cursor < len(text) {
		segments = append(segments, domain.Segment{
			Kind: domain.SegmentPlain,
			Text: string(text[cursor:]),
		})
	}

	if len(segments) == 0 {
		return plainOnly(content)
	}
	return segments
}

// resolveTerm splits content around every case-insensitive occurrence of
// the literal term.
func resolveTerm(content, term string) []domain.Segment {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return plainOnly(content)
	}

	matches := re.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return plainOnly(content)
	}

	segments := make([]domain.Segment, 0, len(matches)*2+1)
	cursor := 0
	for _, m := range matches {
		if m[0] > cursor {
			segments = append(segments, domain.Segment{
				Kind: domain.SegmentPlain,
				Text: content[cursor:m[0]],
			})
		}
		segments = append(segments, domain.Segment{
			Kind: domain.SegmentMatched,
			Text: content[m[0]:m[1]],
		})
		cursor = m[1]
	}
	if cursor < len(content) {
		segments = append(segments, domain.Segment{
			Kind: domain.SegmentPlain,
			Text: content[cursor:],
		})
	}
	return segments
}

func plainOnly(content string) []domain.Segment {
	return []domain.Segment{{Kind: domain.SegmentPlain, Text: content}}
}
