package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "esc")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_SendBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Send.Keys()
	assert.Contains(t, keys, "enter")
}

func TestDefaultKeyMap_ScrollBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.ScrollUp.Keys(), "up")
	assert.Contains(t, km.ScrollUp.Keys(), "pgup")
	assert.Contains(t, km.ScrollDown.Keys(), "down")
	assert.Contains(t, km.ScrollDown.Keys(), "pgdown")
}

func TestDefaultKeyMap_ClearBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Clear.Keys()
	assert.Contains(t, keys, "ctrl+l")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 4)
	assert.Equal(t, km.Send, bindings[0])
	assert.Equal(t, km.Quit, bindings[3])
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("esc", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("enter", km.Send))
	assert.True(t, Matches("up", km.ScrollUp))
	assert.True(t, Matches("ctrl+l", km.Clear))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("down", km.ScrollUp))
	assert.False(t, Matches("l", km.Clear))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Send", km.Send},
		{"ScrollUp", km.ScrollUp},
		{"ScrollDown", km.ScrollDown},
		{"Clear", km.Clear},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
