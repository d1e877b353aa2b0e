package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/styles"
	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			Permission: domain.IndexEntry{
				Name:        "user.create.department",
				DisplayName: "Create User (Department)",
				Category:    "User Management",
			},
			Score:           0.95,
			HighlightedText: "Create **User** (Department)",
		},
		{
			Permission: domain.IndexEntry{
				Name:          "reservation.create.property",
				DisplayName:   "Create Reservation (Property)",
				Category:      "Reservations",
				IsConditional: true,
			},
			Score: 0.85,
		},
		{
			Permission: domain.IndexEntry{
				Name:               "setting.update.platform",
				DisplayName:        "Update Setting (Platform)",
				Category:           "Administration",
				IsSystemPermission: true,
			},
			Score: 0.75,
		},
	}
}

func TestNewResultList(t *testing.T) {
	l := NewResultList(styles.DefaultStyles())

	require.NotNil(t, l)
	assert.Equal(t, 0, l.Cursor())
	assert.True(t, l.IsEmpty())
}

func TestNewResultList_NilStyles(t *testing.T) {
	l := NewResultList(nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
}

func TestResultList_SetResults(t *testing.T) {
	l := NewResultList(nil)

	l.SetResults(sampleResults())

	assert.Equal(t, 3, l.Count())
	assert.False(t, l.IsEmpty())
	assert.Equal(t, 0, l.Cursor())
}

func TestResultList_SetResults_ClampsCursor(t *testing.T) {
	l := NewResultList(nil)
	l.SetResults(sampleResults())
	l.MoveDown()
	l.MoveDown()

	l.SetResults(sampleResults()[:1])

	assert.Equal(t, 0, l.Cursor())
}

func TestResultList_Navigation(t *testing.T) {
	l := NewResultList(nil)
	l.SetResults(sampleResults())

	l.MoveUp()
	assert.Equal(t, 0, l.Cursor())

	l.MoveDown()
	assert.Equal(t, 1, l.Cursor())

	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, 2, l.Cursor())
}

func TestResultList_Update_ArrowKeys(t *testing.T) {
	l := NewResultList(nil)
	l.SetResults(sampleResults())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, l.Cursor())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, l.Cursor())
}

func TestResultList_CurrentResult(t *testing.T) {
	l := NewResultList(nil)

	assert.Nil(t, l.CurrentResult())

	l.SetResults(sampleResults())
	l.MoveDown()

	res := l.CurrentResult()
	require.NotNil(t, res)
	assert.Equal(t, "reservation.create.property", res.Permission.Name)
}

func TestResultList_View_Empty(t *testing.T) {
	l := NewResultList(nil)

	assert.Contains(t, l.View(), "No matching permissions")
}

func TestResultList_View_RendersResults(t *testing.T) {
	l := NewResultList(nil)
	l.SetDimensions(100, 20)
	l.SetResults(sampleResults())

	view := l.View()

	assert.Contains(t, view, "Results (3)")
	assert.Contains(t, view, "user.create.department")
	assert.Contains(t, view, "conditional")
	assert.Contains(t, view, "system")
	// Highlight markers never reach the screen.
	assert.NotContains(t, view, "**")
}

func TestResultList_View_Marked(t *testing.T) {
	l := NewResultList(nil)
	l.SetDimensions(100, 20)
	l.SetResults(sampleResults())
	l.SetMarked([]string{"reservation.create.property"})

	view := l.View()

	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "[ ]")
}

func TestStripMarkers(t *testing.T) {
	assert.Equal(t, "Create User", stripMarkers("Create **User**"))
	assert.Equal(t, "plain", stripMarkers("plain"))
}
