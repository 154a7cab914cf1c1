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
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"search", km.Search, []string{"enter"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"open", km.Open, []string{"enter"}},
		{"filter", km.Filter, []string{"tab"}},
		{"sort", km.Sort, []string{"s"}},
		{"cite", km.CopyCitation, []string{"c"}},
		{"paragraph", km.CopyParagraph, []string{"p"}},
		{"next section", km.NextSection, []string{"]"}},
		{"prev section", km.PrevSection, []string{"["}},
		{"refine", km.Refine, []string{"/"}},
		{"settings", km.Settings, []string{","}},
		{"increase", km.Increase, []string{"right", "+"}},
		{"decrease", km.Decrease, []string{"left", "-"}},
		{"save", km.Save, []string{"enter"}},
		{"reset", km.Reset, []string{"r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.ShortHelp())
	assert.NotEmpty(t, km.ResultsHelp())
	assert.NotEmpty(t, km.ReaderHelp())
	assert.NotEmpty(t, km.SettingsHelp())
	assert.Len(t, km.FullHelp(), 5)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("c", km.CopyCitation))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("x", km.CopyCitation))
	assert.False(t, Matches("", km.Quit))
}
