package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/styles"
)

func TestNewSearchInput(t *testing.T) {
	in := NewSearchInput(styles.DefaultStyles())

	require.NotNil(t, in)
	assert.Empty(t, in.Value())
	assert.True(t, in.Focused())
}

func TestNewSearchInput_NilStyles(t *testing.T) {
	in := NewSearchInput(nil)

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
}

func TestSearchInput_Init(t *testing.T) {
	in := NewSearchInput(nil)

	assert.NotNil(t, in.Init())
}

func TestSearchInput_Update_Typing(t *testing.T) {
	in := NewSearchInput(nil)

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("user")})

	assert.Equal(t, "user", in.Value())
}

func TestSearchInput_SetValueAndReset(t *testing.T) {
	in := NewSearchInput(nil)

	in.SetValue("reservation")
	assert.Equal(t, "reservation", in.Value())

	in.Reset()
	assert.Empty(t, in.Value())
}

func TestSearchInput_FocusBlur(t *testing.T) {
	in := NewSearchInput(nil)

	in.Blur()
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())
}

func TestSearchInput_View(t *testing.T) {
	in := NewSearchInput(nil)
	in.SetWidth(100)

	view := in.View()

	assert.Contains(t, view, "Search")
}

func TestSearchInput_SetWidth_Minimum(t *testing.T) {
	in := NewSearchInput(nil)

	in.SetWidth(5)

	assert.Equal(t, 20, in.input.Width)
}
