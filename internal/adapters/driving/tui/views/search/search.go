// Package search provides the incremental search pane for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
	"github.com/custodia-labs/scribe-cli/internal/core/services"
)

// Hint texts shown in place of the result list.
const (
	HintEmpty  = "Start typing to search transcriptions"
	HintFailed = "Search failed. Check the server connection and try again."
)

// View is the search pane: an input whose value is debounced into
// dispatcher requests, and a list of highlighted results.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.ResultList
	statusbar *status.Bar

	dispatcher driving.SearchDispatcher
	debouncer  *services.Debouncer[string]
	ctx        context.Context

	// latest is the generation of the most recent ticket. Completions
	// for older generations are ignored.
	latest   uint64
	snapshot domain.SearchSnapshot

	width  int
	height int
	ready  bool
}

// NewView creates a new search view. A zero delay still defers searches
// to the debouncer's timer.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	dispatcher driving.SearchDispatcher,
	resolver driving.HighlightResolver,
	delay time.Duration,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewField(s, "Search", "type to search transcriptions..."),
		list:       list.NewResultList(s, resolver),
		statusbar:  status.NewBar(s, km.SearchHelp()),
		dispatcher: dispatcher,
		debouncer:  services.NewDebouncer[string](delay),
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for search requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor blink and the debounced query listener.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.waitForQuery())
}

// waitForQuery blocks until the debouncer emits and turns the term into a
// message. It returns nil once the debouncer is stopped.
func (v *View) waitForQuery() tea.Cmd {
	ch := v.debouncer.C()
	return func() tea.Msg {
		term, ok := <-ch
		if !ok {
			return nil
		}
		return messages.QueryDebounced{Term: term}
	}
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QueryDebounced:
		return v.handleQuery(msg.Term)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg.Snapshot)
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError, msg.Err.Error())
		return v, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	cmds = append(cmds, cmd)
	v.statusbar, cmd = v.statusbar.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Clear):
		v.Clear()
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Up), keymap.Matches(msg.String(), v.keymap.Down):
		v.list, _ = v.list.Update(msg)
		return v, nil
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if after := v.input.Value(); after != before {
		v.debouncer.Set(after)
	}
	return v, cmd
}

// handleQuery starts a search for a debounced term.
func (v *View) handleQuery(term string) (*View, tea.Cmd) {
	if v.dispatcher == nil {
		v.statusbar.SetState(status.StateError, ErrNoDispatcher.Error())
		return v, v.waitForQuery()
	}

	ticket := v.dispatcher.Begin(term)
	v.latest = ticket.Generation

	if ticket.Cleared {
		v.apply(v.dispatcher.Snapshot())
		return v, v.waitForQuery()
	}

	v.snapshot.Term = ticket.Term
	v.snapshot.Busy = true
	busy := v.statusbar.Busy("Searching...")

	return v, tea.Batch(busy, v.runSearch(ticket), v.waitForQuery())
}

// runSearch performs the request for ticket off the event loop.
func (v *View) runSearch(ticket domain.SearchTicket) tea.Cmd {
	dispatcher := v.dispatcher
	ctx := v.ctx
	return func() tea.Msg {
		return messages.SearchCompleted{Snapshot: dispatcher.Run(ctx, ticket)}
	}
}

// handleSearchCompleted applies a finished search unless a newer one has
// been started since.
func (v *View) handleSearchCompleted(snap domain.SearchSnapshot) {
	if snap.Stale || snap.Generation < v.latest {
		return
	}
	v.apply(snap)
}

func (v *View) apply(snap domain.SearchSnapshot) {
	v.snapshot = snap
	v.list.SetResults(snap.Results, snap.Term)

	switch {
	case snap.Busy:
		return
	case snap.Failed:
		v.statusbar.SetState(status.StateError, "search failed")
	case strings.TrimSpace(snap.Term) == "":
		v.statusbar.Clear()
	default:
		v.statusbar.SetState(status.StateResults, resultCount(len(snap.Results)))
	}
}

func resultCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

// Clear empties the input and results. Any pending debounced value is
// replaced so a late keystroke cannot bring old results back.
func (v *View) Clear() {
	v.input.Reset()
	v.debouncer.Set("")
	if v.dispatcher != nil {
		ticket := v.dispatcher.Begin("")
		v.latest = ticket.Generation
		v.apply(v.dispatcher.Snapshot())
		return
	}
	v.apply(domain.SearchSnapshot{})
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 6)
	sections = append(sections, v.input.View(), "")
	sections = append(sections, v.body())
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// body renders the results or the hint that replaces them.
func (v *View) body() string {
	if !v.list.IsEmpty() {
		return v.list.View()
	}

	term := strings.TrimSpace(v.snapshot.Term)
	switch {
	case term == "" && strings.TrimSpace(v.input.Value()) == "":
		return v.styles.Muted.Render(HintEmpty)
	case v.snapshot.Busy:
		return ""
	case v.snapshot.Failed:
		return v.styles.Error.Render(HintFailed)
	case term != "":
		return v.styles.Muted.Render(NoResultsHint(v.snapshot.Term))
	}
	return ""
}

// NoResultsHint returns the text shown when a search matched nothing.
func NoResultsHint(term string) string {
	return fmt.Sprintf("No results found for %q", term)
}

// Close stops the debouncer. Pending keystrokes are dropped.
func (v *View) Close() {
	v.debouncer.Stop()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-6)
	v.statusbar.SetWidth(width)
}

// Focus gives the search input focus.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// Blur removes focus from the search input.
func (v *View) Blur() {
	v.input.Blur()
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the raw input value.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the raw input value and schedules a search for it.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
	v.debouncer.Set(query)
}

// Snapshot returns the last applied dispatcher state.
func (v *View) Snapshot() domain.SearchSnapshot {
	return v.snapshot
}

// Results returns the displayed results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// Items returns the displayed results with their segments.
func (v *View) Items() []list.Item {
	return v.list.Items()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// StatusBar returns the pane's status bar.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}
