// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Search submits the query.
	Search key.Binding

	Up   key.Binding
	Down key.Binding

	// Open opens the selected result in the reader.
	Open key.Binding

	// NewSearch focuses the query input from the results list.
	NewSearch key.Binding

	// Filter cycles the category filter.
	Filter key.Binding

	// Sort toggles between relevance and score order.
	Sort key.Binding

	// CopyCitation copies the citation of the open document.
	CopyCitation key.Binding

	// CopyParagraph copies the section being read.
	CopyParagraph key.Binding

	// NextSection and PrevSection jump between sections in the reader.
	NextSection key.Binding
	PrevSection key.Binding

	// Refine edits the highlight query inside the reader.
	Refine key.Binding

	// Settings opens the settings view.
	Settings key.Binding

	// Increase and Decrease adjust the selected setting.
	Increase key.Binding
	Decrease key.Binding

	// Save writes edited settings; Reset restores the defaults.
	Save  key.Binding
	Reset key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n", "/"),
			key.WithHelp("n", "new search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "category"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		CopyCitation: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cite"),
		),
		CopyParagraph: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "copy section"),
		),
		NextSection: key.NewBinding(
			key.WithKeys("]", "tab"),
			key.WithHelp("]", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("[", "shift+tab"),
			key.WithHelp("[", "prev section"),
		),
		Refine: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "refine"),
		),
		Settings: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "settings"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l", "+"),
			key.WithHelp("→/+", "increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("←/-", "decrease"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "defaults"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Quit, k.Help}
}

// ResultsHelp returns keybindings for the results list.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Open, k.NewSearch, k.Filter, k.Sort}
}

// ReaderHelp returns keybindings for the reader.
func (k *KeyMap) ReaderHelp() []key.Binding {
	return []key.Binding{k.CopyCitation, k.CopyParagraph, k.NextSection, k.Refine, k.Back}
}

// SettingsHelp returns keybindings for the settings view.
func (k *KeyMap) SettingsHelp() []key.Binding {
	return []key.Binding{k.Increase, k.Decrease, k.Save, k.Reset, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Up, k.Down, k.Open},
		{k.NewSearch, k.Filter, k.Sort},
		{k.CopyCitation, k.CopyParagraph, k.NextSection, k.PrevSection, k.Refine},
		{k.Settings, k.Increase, k.Decrease, k.Save, k.Reset},
		{k.Back, k.Help, k.Quit},
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
