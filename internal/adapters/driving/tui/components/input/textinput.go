// Package input provides the search input component for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/styles"
)

// SearchInput wraps a textinput for entering search queries.
type SearchInput struct {
	input  textinput.Model
	styles *styles.Styles
	width  int
}

// NewSearchInput creates a search input with the given styles.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Type to search permissions..."
	ti.CharLimit = 128
	ti.Width = 50
	ti.Focus()

	return &SearchInput{
		input:  ti,
		styles: s,
		width:  80,
	}
}

// Init initialises the input and starts the cursor blink.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the underlying textinput.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the labelled input field.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Search")
	field := s.styles.InputField.Width(s.width - lipgloss.Width(label) - 4).Render(s.input.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, label, " ", field)
}

// Value returns the current query text.
func (s *SearchInput) Value() string {
	return s.input.Value()
}

// SetValue replaces the query text.
func (s *SearchInput) SetValue(value string) {
	s.input.SetValue(value)
	s.input.CursorEnd()
}

// Reset clears the query text.
func (s *SearchInput) Reset() {
	s.input.Reset()
}

// Focus gives the input keyboard focus.
func (s *SearchInput) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus.
func (s *SearchInput) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus.
func (s *SearchInput) Focused() bool {
	return s.input.Focused()
}

// SetWidth sets the rendered width of the component.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	inner := width - 12
	if inner < 20 {
		inner = 20
	}
	s.input.Width = inner
}
