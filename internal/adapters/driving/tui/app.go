package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/logger"
)

// headerHeight is the number of lines above the active pane.
const headerHeight = 4

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	searchView *search.View
	uploadView *upload.View

	// pane is the pane receiving key input.
	pane messages.Pane

	// health is the latest report shown in the header.
	health domain.HealthReport

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	health := domain.HealthReport{Status: domain.HealthUnknown}
	if ports.Health != nil {
		health = ports.Health.Status()
	}

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		searchView: search.NewView(s, km, ports.Search, ports.Highlight, ports.DebounceDelay),
		uploadView: upload.NewView(s, km, ports.Transcription),
		pane:       messages.PaneSearch,
		health:     health,
	}, nil
}

// WithContext sets the context for the app and its panes.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.uploadView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("scribe"),
		a.searchView.Init(),
		a.uploadView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.HealthChecked:
		a.health = msg.Report
		return a, nil

	case messages.PaneChanged:
		return a, a.switchPane(msg.Pane)

	case messages.QueryDebounced, messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.FilesSelected, messages.TranscriptionCompleted:
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		// Each pane's spinner ignores ticks carrying another spinner's ID.
		var searchCmd, uploadCmd tea.Cmd
		a.searchView, searchCmd = a.searchView.Update(msg)
		a.uploadView, uploadCmd = a.uploadView.Update(msg)
		return a, tea.Batch(searchCmd, uploadCmd)

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		a.Close()
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// handleKeyMsg handles global keys and forwards the rest to the active pane.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), a.keymap.Quit):
		a.Close()
		return a, tea.Quit
	case keymap.Matches(msg.String(), a.keymap.SwitchPane):
		return a, a.switchPane(a.pane.Next())
	}
	return a, a.forward(msg)
}

// forward sends msg to the active pane.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.pane {
	case messages.PaneSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.PaneUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	}
	return cmd
}

// switchPane moves input focus to pane.
func (a *App) switchPane(pane messages.Pane) tea.Cmd {
	a.pane = pane
	if pane == messages.PaneUpload {
		a.searchView.Blur()
		return a.uploadView.Focus()
	}
	a.uploadView.Blur()
	return a.searchView.Focus()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.pane {
	case messages.PaneUpload:
		body = a.uploadView.View()
	default:
		body = a.searchView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), a.renderTabs(), "", body)
}

// renderHeader shows the title and the server health.
func (a *App) renderHeader() string {
	status := a.health.Status
	if status == "" {
		status = domain.HealthUnknown
	}
	known := status != domain.HealthUnknown
	healthStyle := a.styles.HealthStyle(a.health.IsHealthy(), known)

	return a.styles.Title.Render("scribe") + "  " +
		a.styles.Normal.Render("Server health: ") + healthStyle.Render(status)
}

func (a *App) renderTabs() string {
	panes := []messages.Pane{messages.PaneSearch, messages.PaneUpload}
	tabs := make([]string, 0, len(panes))
	for _, p := range panes {
		if p == a.pane {
			tabs = append(tabs, a.styles.ActiveTab.Render(p.String()))
		} else {
			tabs = append(tabs, a.styles.InactiveTab.Render(p.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Run starts the TUI and polls the health endpoint until it exits.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	a.WithContext(ctx)

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx))

	if a.ports.Health != nil {
		done := make(chan struct{})
		go func() {
			defer close(done)
			err := a.ports.Health.Start(ctx, func(r domain.HealthReport) {
				p.Send(messages.HealthChecked{Report: r})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("health polling stopped: %v", err)
			}
		}()
		defer func() {
			_ = a.ports.Health.Stop()
			cancel()
			<-done
		}()
	}

	_, err := p.Run()
	a.Close()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Close releases pane resources. Safe to call more than once.
func (a *App) Close() {
	a.searchView.Close()
}

// Pane returns the active pane.
func (a *App) Pane() messages.Pane {
	return a.pane
}

// Health returns the latest health report.
func (a *App) Health() domain.HealthReport {
	return a.health
}

// Query returns the current search input.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the displayed search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// Files returns the files selected for upload.
func (a *App) Files() []string {
	return a.uploadView.Files()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height-headerHeight)
	a.uploadView.SetDimensions(width, height-headerHeight)
}
