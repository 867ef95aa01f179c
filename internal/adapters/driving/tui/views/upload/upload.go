// Package upload provides the file selection and transcription pane for
// the TUI.
package upload

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/selection"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
)

// ErrNoTranscriptionService indicates that no transcription service was provided.
var ErrNoTranscriptionService = errors.New("transcription service is required")

// View is the upload pane: a path input that accepts files, directories
// and globs, the list of selected files and the transcription outcome.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	statusbar *status.Bar

	transcription driving.TranscriptionService
	ctx           context.Context

	files     []string
	status    domain.TranscriptionStatus
	uploading bool

	width  int
	height int
	ready  bool
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, km *keymap.KeyMap, transcription driving.TranscriptionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	field := input.NewField(s, "Files", "path, directory or glob such as calls/**/*.wav")
	field.Blur()

	return &View{
		styles:        s,
		keymap:        km,
		input:         field,
		statusbar:     status.NewBar(s, km.UploadHelp()),
		transcription: transcription,
		ctx:           context.Background(),
		status:        domain.TranscriptionIdle,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context used for uploads.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.FilesSelected:
		v.handleFilesSelected(msg)
		return v, nil

	case messages.TranscriptionCompleted:
		v.handleTranscriptionCompleted(msg)
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
	case keymap.Matches(msg.String(), v.keymap.AddFiles):
		pattern := strings.TrimSpace(v.input.Value())
		if pattern == "" {
			return v, nil
		}
		return v, selectFiles(pattern)

	case keymap.Matches(msg.String(), v.keymap.Transcribe):
		return v.startTranscription()

	case keymap.Matches(msg.String(), v.keymap.ClearFiles):
		v.files = nil
		v.status = domain.TranscriptionIdle
		v.statusbar.Clear()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// selectFiles expands pattern off the event loop.
func selectFiles(pattern string) tea.Cmd {
	return func() tea.Msg {
		paths, err := selection.Expand(pattern)
		return messages.FilesSelected{Pattern: pattern, Paths: paths, Err: err}
	}
}

func (v *View) handleFilesSelected(msg messages.FilesSelected) {
	if msg.Err != nil {
		v.statusbar.SetState(status.StateError, msg.Err.Error())
		return
	}

	seen := make(map[string]struct{}, len(v.files))
	for _, f := range v.files {
		seen[f] = struct{}{}
	}
	added := 0
	for _, p := range msg.Paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		v.files = append(v.files, p)
		added++
	}

	v.input.Reset()
	v.statusbar.SetState(status.StateReady, fmt.Sprintf("Added %d file(s)", added))
}

// startTranscription uploads the selected files. Only one upload runs at
// a time.
func (v *View) startTranscription() (*View, tea.Cmd) {
	if v.uploading {
		return v, nil
	}
	if v.transcription == nil {
		v.statusbar.SetState(status.StateError, ErrNoTranscriptionService.Error())
		return v, nil
	}
	if len(v.files) == 0 {
		v.statusbar.SetState(status.StateError, domain.ErrNoFiles.Error())
		return v, nil
	}

	v.uploading = true
	busy := v.statusbar.Busy(fmt.Sprintf("Uploading %d file(s)...", len(v.files)))
	return v, tea.Batch(busy, v.upload())
}

// upload returns the command that transcribes a copy of the selection.
func (v *View) upload() tea.Cmd {
	files := append([]string(nil), v.files...)
	svc := v.transcription
	ctx := v.ctx

	return func() tea.Msg {
		st, err := svc.Transcribe(ctx, files)
		return messages.TranscriptionCompleted{Status: st, Files: len(files), Err: err}
	}
}

func (v *View) handleTranscriptionCompleted(msg messages.TranscriptionCompleted) {
	v.uploading = false
	v.status = msg.Status

	switch {
	case msg.Err != nil:
		v.status = domain.TranscriptionError
		v.statusbar.SetState(status.StateError, msg.Err.Error())
	case msg.Status == domain.TranscriptionSuccess:
		v.statusbar.SetState(status.StateSuccess, fmt.Sprintf("Uploaded %d file(s)", msg.Files))
		v.files = nil
	default:
		v.statusbar.SetState(status.StateError, "upload failed")
	}
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.input.View(), "")
	sections = append(sections, v.renderFiles(), "")
	if line := v.renderStatus(); line != "" {
		sections = append(sections, line, "")
	}
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderFiles() string {
	if len(v.files) == 0 {
		return v.styles.Muted.Render("No files selected")
	}

	lines := make([]string, 0, len(v.files)+1)
	lines = append(lines, v.styles.Subtitle.Render(fmt.Sprintf("Selected files (%d)", len(v.files))))
	for _, f := range v.files {
		lines = append(lines, v.styles.Normal.Render("  "+filepath.Base(f))+v.styles.Muted.Render("  "+filepath.Dir(f)))
	}
	return strings.Join(lines, "\n")
}

// renderStatus shows the outcome of the last upload.
func (v *View) renderStatus() string {
	switch v.status {
	case domain.TranscriptionSuccess:
		return v.styles.Success.Render("Transcription: " + v.status.String())
	case domain.TranscriptionError:
		return v.styles.Error.Render("Transcription: " + v.status.String())
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Focus gives the path input focus.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// Blur removes focus from the path input.
func (v *View) Blur() {
	v.input.Blur()
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Files returns the selected files.
func (v *View) Files() []string {
	return v.files
}

// SetFiles replaces the selection.
func (v *View) SetFiles(files []string) {
	v.files = append([]string(nil), files...)
}

// Status returns the outcome of the last upload.
func (v *View) Status() domain.TranscriptionStatus {
	return v.status
}

// Uploading reports whether an upload is in flight.
func (v *View) Uploading() bool {
	return v.uploading
}

// StatusBar returns the pane's status bar.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}

// Input returns the path input.
func (v *View) Input() *input.Field {
	return v.input
}
