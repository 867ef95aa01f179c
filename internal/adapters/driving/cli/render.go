package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// Output formats for search results.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatPretty   = "pretty"
	FormatJSON     = "json"
)

// Markers around matched text when highlighting cannot be styled.
const (
	markOpen  = "[["
	markClose = "]]"
)

// resultView is a search result with its rendered partition.
type resultView struct {
	domain.SearchResult
	Segments []domain.Segment `json:"segments"`
}

func buildViews(results []domain.SearchResult, term string) []resultView {
	views := make([]resultView, len(results))
	for i, r := range results {
		var segments []domain.Segment
		if highlightResolver != nil {
			segments = highlightResolver.Resolve(r.Content, term, r.Highlights)
		} else {
			segments = []domain.Segment{{Kind: domain.SegmentPlain, Text: r.Content}}
		}
		views[i] = resultView{SearchResult: r, Segments: segments}
	}
	return views
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// segmentStyler renders matched text.
type segmentStyler func(text string) string

func markerStyler(text string) string {
	return markOpen + text + markClose
}

func lipglossStyler(style lipgloss.Style) segmentStyler {
	return func(text string) string {
		return style.Render(text)
	}
}

func renderSegments(segments []domain.Segment, matched segmentStyler) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Matched() {
			b.WriteString(matched(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

func writeText(w io.Writer, views []resultView, matched segmentStyler) {
	for i, v := range views {
		fmt.Fprintf(w, "[%d] %s  %s\n", i+1, v.FileName, v.Timestamp)
		for _, line := range strings.Split(renderSegments(v.Segments, matched), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		fmt.Fprintln(w)
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`, "[", `\[`, "]", `\]`,
)

func renderMarkdown(views []resultView, query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Results for \"%s\"\n\n", markdownEscaper.Replace(strings.Join(strings.Fields(query), " ")))
	for _, v := range views {
		fmt.Fprintf(&b, "## %s\n\n", markdownEscaper.Replace(v.FileName))
		fmt.Fprintf(&b, "_%s_\n\n", v.Timestamp)
		for _, s := range v.Segments {
			text := markdownEscaper.Replace(s.Text)
			if s.Matched() {
				writeStrong(&b, text)
				continue
			}
			b.WriteString(text)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

// writeStrong emboldens text, keeping surrounding whitespace outside the
// markers so CommonMark still treats them as emphasis.
func writeStrong(b *strings.Builder, text string) {
	core := strings.TrimSpace(text)
	if core == "" {
		b.WriteString(text)
		return
	}
	start := strings.Index(text, core)
	b.WriteString(text[:start])
	fmt.Fprintf(b, "**%s**", core)
	b.WriteString(text[start+len(core):])
}

// renderPretty renders markdown for the terminal with glamour.
func renderPretty(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}

// matchStyler picks styled highlights on a terminal and markers otherwise.
func matchStyler(w io.Writer) segmentStyler {
	if isTerminal(w) {
		return lipglossStyler(styles.DefaultStyles().Highlight)
	}
	return markerStyler
}
