package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{"quit", km.Quit, "ctrl+c"},
		{"switch pane", km.SwitchPane, "tab"},
		{"clear", km.Clear, "esc"},
		{"up", km.Up, "up"},
		{"down", km.Down, "down"},
		{"add files", km.AddFiles, "enter"},
		{"transcribe", km.Transcribe, "ctrl+t"},
		{"clear files", km.ClearFiles, "ctrl+x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Matches(tt.key, tt.binding))
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestDefaultKeyMap_NoPrintableKeys(t *testing.T) {
	km := DefaultKeyMap()
	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				assert.Greater(t, len(k), 1, "binding %q would swallow typed text", k)
			}
		}
	}
}

func TestKeyMap_PaneHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.SearchHelp(), 5)
	assert.Len(t, km.UploadHelp(), 5)
	assert.Len(t, km.FullHelp(), 3)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("tab", km.SwitchPane))
	assert.False(t, Matches("q", km.Quit))
	assert.False(t, Matches("", km.Clear))
}
