// Package keymap defines keybindings for the TUI.
//
// The search input owns every printable key, so the action bindings
// stick to control chords and navigation keys.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Clear empties the query and returns to browsing.
	Clear key.Binding

	// Up navigates up in the result list.
	Up key.Binding

	// Down navigates down in the result list.
	Down key.Binding

	// Record writes the current query to the search history.
	Record key.Binding

	// CycleSort rotates through the sort strategies.
	CycleSort key.Binding

	// ToggleSelect toggles selection of the highlighted result.
	ToggleSelect key.Binding

	// SelectAll selects every result.
	SelectAll key.Binding

	// ClearSelection deselects everything.
	ClearSelection key.Binding

	// Copy places the selected permission names on the clipboard.
	Copy key.Binding

	// Refresh reloads the permission catalog.
	Refresh key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
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
		Record: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save to history"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "sort"),
		),
		ToggleSelect: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),
		ClearSelection: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "deselect"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh catalog"),
		),
	}
}

// ShortHelp returns the hints shown while browsing.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.CycleSort, k.Quit}
}

// ResultsHelp returns the hints shown when results are on screen.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.ToggleSelect, k.Copy, k.Clear}
}

// FullHelp returns the full list of keybindings.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Record},
		{k.ToggleSelect, k.SelectAll, k.ClearSelection, k.Copy},
		{k.CycleSort, k.Refresh, k.Clear, k.Quit},
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
