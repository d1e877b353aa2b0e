// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/keymap"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/styles"
	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// Bar displays session state, counters and keybinding hints.
type Bar struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	status        domain.SessionStatus
	flash         string
	flashIsError  bool
	resultCount   int
	selectedCount int
	sortBy        domain.SortBy
	width         int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		status: domain.StatusIdle,
		sortBy: domain.SortByRelevance,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages. The bar is passive; state comes
// in through the Set methods.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state summary.
func (s *Bar) renderLeft() string {
	if s.flash != "" {
		if s.flashIsError {
			return s.styles.Error.Render(s.flash)
		}
		return s.styles.Success.Render(s.flash)
	}

	switch s.status {
	case domain.StatusIdle:
		return s.styles.Muted.Render("Loading catalog...")
	case domain.StatusSearching:
		return s.styles.Muted.Render("Searching...")
	case domain.StatusError:
		return s.styles.Error.Render("Catalog error")
	case domain.StatusBrowsing, domain.StatusResultsReady:
		summary := fmt.Sprintf("%d results · sort: %s", s.resultCount, s.sortBy)
		if s.selectedCount > 0 {
			summary += fmt.Sprintf(" · %d selected", s.selectedCount)
		}
		return s.styles.Normal.Render(summary)
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.resultCount > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetStatus sets the session lifecycle state.
func (s *Bar) SetStatus(status domain.SessionStatus) {
	s.status = status
}

// Status returns the displayed session state.
func (s *Bar) Status() domain.SessionStatus {
	return s.status
}

// SetFlash sets a transient message shown in place of the summary.
func (s *Bar) SetFlash(message string, isError bool) {
	s.flash = message
	s.flashIsError = isError
}

// ClearFlash removes the transient message.
func (s *Bar) ClearFlash() {
	s.flash = ""
	s.flashIsError = false
}

// Flash returns the current transient message.
func (s *Bar) Flash() string {
	return s.flash
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// SetSelectedCount sets the selection count.
func (s *Bar) SetSelectedCount(count int) {
	s.selectedCount = count
}

// SetSort sets the displayed sort strategy.
func (s *Bar) SetSort(sortBy domain.SortBy) {
	s.sortBy = sortBy
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
