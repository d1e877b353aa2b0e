package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/keymap"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/styles"
	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, domain.StatusIdle, bar.Status())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilArguments(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestBar_View_Idle(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Contains(t, bar.View(), "Loading catalog")
}

func TestBar_View_Searching(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetStatus(domain.StatusSearching)

	assert.Contains(t, bar.View(), "Searching...")
}

func TestBar_View_Results(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetStatus(domain.StatusResultsReady)
	bar.SetResultCount(7)
	bar.SetSort(domain.SortByAlphabetical)
	bar.SetSelectedCount(2)

	view := bar.View()
	assert.Contains(t, view, "7 results")
	assert.Contains(t, view, "alphabetical")
	assert.Contains(t, view, "2 selected")
}

func TestBar_View_Error(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetStatus(domain.StatusError)

	assert.Contains(t, bar.View(), "Catalog error")
}

func TestBar_Flash(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetStatus(domain.StatusResultsReady)

	bar.SetFlash("Copied 3 name(s)", false)
	assert.Contains(t, bar.View(), "Copied 3 name(s)")
	assert.Equal(t, "Copied 3 name(s)", bar.Flash())

	bar.ClearFlash()
	assert.Empty(t, bar.Flash())
	assert.NotContains(t, bar.View(), "Copied")
}

func TestBar_View_HintsFollowResultCount(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(200)
	bar.SetStatus(domain.StatusResultsReady)

	bar.SetResultCount(0)
	assert.Contains(t, bar.View(), "quit")

	bar.SetResultCount(3)
	assert.Contains(t, bar.View(), "copy")
}
