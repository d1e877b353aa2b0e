// Package list provides the result list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/styles"
	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

// ResultList displays ranked search results in a navigable list.
// Rows carry a checkbox reflecting the session's selection set.
type ResultList struct {
	results []domain.SearchResult
	marked  map[string]bool
	cursor  int
	styles  *styles.Styles
	width   int
	height  int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		marked: map[string]bool{},
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		default:
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No matching permissions")
	}

	lines := make([]string, 0, len(r.results)*2+2)

	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results)))
	lines = append(lines, header, "")

	// Two lines per row plus the header.
	visibleCount := (r.height - 3) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.cursor >= visibleCount {
		start = r.cursor - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats one result as a title row and a detail row.
func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	entry := result.Permission

	indicator := "  "
	if index == r.cursor {
		indicator = "> "
	}

	checkbox := "[ ] "
	if r.marked[entry.Name] {
		checkbox = "[x] "
	}

	title := result.HighlightedText
	if title == "" {
		title = entry.DisplayName
	}

	var titleLine string
	if index == r.cursor {
		titleLine = r.styles.Selected.Render(indicator + checkbox + stripMarkers(title))
	} else {
		titleLine = r.styles.Normal.Render(indicator+checkbox) + r.renderHighlighted(title)
	}

	detail := fmt.Sprintf("%s  %.2f", entry.Name, result.Score)
	detailLine := r.styles.Muted.Render("      "+detail) + "  " + r.styles.Badge.Render(entry.Category)
	if entry.IsConditional {
		detailLine += " " + r.styles.Warning.Render("conditional")
	}
	if entry.IsSystemPermission {
		detailLine += " " + r.styles.Warning.Render("system")
	}

	return titleLine + "\n" + detailLine
}

// renderHighlighted styles the ** wrapped match segments of a title.
func (r *ResultList) renderHighlighted(text string) string {
	parts := strings.Split(text, "**")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i%2 == 1 {
			b.WriteString(r.styles.Highlight.Render(part))
		} else {
			b.WriteString(r.styles.Normal.Render(part))
		}
	}
	return b.String()
}

// stripMarkers removes ** markers for rows rendered in a single style.
func stripMarkers(text string) string {
	return strings.ReplaceAll(text, "**", "")
}

// SetResults replaces the displayed results, keeping the cursor on the
// same row where possible.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	if r.cursor >= len(results) {
		r.cursor = 0
	}
}

// SetMarked replaces the set of selected permission names.
func (r *ResultList) SetMarked(names []string) {
	marked := make(map[string]bool, len(names))
	for _, n := range names {
		marked[n] = true
	}
	r.marked = marked
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Cursor returns the index of the highlighted row.
func (r *ResultList) Cursor() int {
	return r.cursor
}

// CurrentResult returns the highlighted result, or nil when the list
// is empty.
func (r *ResultList) CurrentResult() *domain.SearchResult {
	if len(r.results) == 0 || r.cursor < 0 || r.cursor >= len(r.results) {
		return nil
	}
	return &r.results[r.cursor]
}

// MoveUp moves the cursor up.
func (r *ResultList) MoveUp() {
	if r.cursor > 0 {
		r.cursor--
	}
}

// MoveDown moves the cursor down.
func (r *ResultList) MoveDown() {
	if r.cursor < len(r.results)-1 {
		r.cursor++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty reports whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
