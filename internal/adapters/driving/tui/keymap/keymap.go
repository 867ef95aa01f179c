// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
// Printable keys are left to the text inputs, so every binding here uses a
// control or navigation key.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// SwitchPane toggles between the search and upload panes.
	SwitchPane key.Binding

	// Clear empties the search input and results.
	Clear key.Binding

	// Up and Down move the selection in a list.
	Up   key.Binding
	Down key.Binding

	// AddFiles adds the typed path or glob to the upload selection.
	AddFiles key.Binding

	// Transcribe uploads the selected files.
	Transcribe key.Binding

	// ClearFiles empties the upload selection.
	ClearFiles key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		AddFiles: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add files"),
		),
		Transcribe: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "transcribe"),
		),
		ClearFiles: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear files"),
		),
	}
}

// SearchHelp returns the bindings shown while the search pane is active.
func (k *KeyMap) SearchHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Clear, k.SwitchPane, k.Quit}
}

// UploadHelp returns the bindings shown while the upload pane is active.
func (k *KeyMap) UploadHelp() []key.Binding {
	return []key.Binding{k.AddFiles, k.Transcribe, k.ClearFiles, k.SwitchPane, k.Quit}
}

// FullHelp returns every binding grouped by pane.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Clear},
		{k.AddFiles, k.Transcribe, k.ClearFiles},
		{k.SwitchPane, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
