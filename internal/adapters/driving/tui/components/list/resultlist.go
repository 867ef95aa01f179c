// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
)

// Item is a search result paired with its highlight segments.
type Item struct {
	Result   domain.SearchResult
	Segments []domain.Segment
}

// ResultList displays search results with highlighted matches.
type ResultList struct {
	items    []Item
	resolver driving.HighlightResolver
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles, resolver driving.HighlightResolver) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		resolver: resolver,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of results.
func (r *ResultList) View() string {
	if len(r.items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(r.items)*3+2)
	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.items)))
	lines = append(lines, header, "")

	// Each result takes three lines: title, preview, blank.
	visibleCount := (r.height - 2) / 3
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.items))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderItem(i, &r.items[i]), "")
	}

	return strings.Join(lines, "\n")
}

// renderItem formats a single result: file name and timestamp, then the
// transcription preview with matches highlighted.
func (r *ResultList) renderItem(index int, item *Item) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := item.Result.FileName
	if name == "" {
		name = "(unnamed)"
	}
	name = truncate(name, max(r.width-30, 10))

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(indicator + name)
	} else {
		titleLine = r.styles.Normal.Render(indicator + name)
	}
	titleLine += "  " + r.styles.Muted.Render(item.Result.Timestamp)

	preview := r.RenderSegments(clip(item.Segments, max(r.width-6, 20)))
	return titleLine + "\n    " + preview
}

// RenderSegments renders segments with matched text in the highlight style.
// Newlines are flattened so each preview stays on one line.
func (r *ResultList) RenderSegments(segments []domain.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		text := strings.ReplaceAll(seg.Text, "\n", " ")
		if seg.Matched() {
			b.WriteString(r.styles.Highlight.Render(text))
		} else {
			b.WriteString(r.styles.Normal.Render(text))
		}
	}
	return b.String()
}

// SetResults replaces the list contents and resolves highlight segments
// for each result against term.
func (r *ResultList) SetResults(results []domain.SearchResult, term string) {
	items := make([]Item, 0, len(results))
	for _, res := range results {
		var segments []domain.Segment
		if r.resolver != nil {
			segments = r.resolver.Resolve(res.Content, term, res.Highlights)
		} else {
			segments = []domain.Segment{{Kind: domain.SegmentPlain, Text: res.Content}}
		}
		items = append(items, Item{Result: res, Segments: segments})
	}
	r.items = items
	r.selected = 0
}

// Items returns the current items.
func (r *ResultList) Items() []Item {
	return r.items
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	results := make([]domain.SearchResult, len(r.items))
	for i := range r.items {
		results[i] = r.items[i].Result
	}
	return results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedItem returns the selected item, or nil if the list is empty.
func (r *ResultList) SelectedItem() *Item {
	if r.selected < 0 || r.selected >= len(r.items) {
		return nil
	}
	return &r.items[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.items)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.items)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.items) == 0
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// clip keeps at most n runes of segments, preserving segment kinds.
// A cut is marked with "..." when n leaves room for it.
func clip(segments []domain.Segment, n int) []domain.Segment {
	total := 0
	for _, seg := range segments {
		total += len([]rune(seg.Text))
	}
	if total <= n {
		return segments
	}

	budget := n
	ellipsis := n > 3
	if ellipsis {
		budget = n - 3
	}

	out := make([]domain.Segment, 0, len(segments)+1)
	for _, seg := range segments {
		if budget <= 0 {
			break
		}
		runes := []rune(seg.Text)
		if len(runes) > budget {
			runes = runes[:budget]
		}
		out = append(out, domain.Segment{Kind: seg.Kind, Text: string(runes)})
		budget -= len(runes)
	}
	if ellipsis {
		out = append(out, domain.Segment{Kind: domain.SegmentPlain, Text: "..."})
	}
	return out
}
