package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accesskit-labs/permscope-cli/internal/adapters/driven/storage/memory"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/messages"
	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/services"
)

// stubCatalog is a fixed in-memory catalog for app tests.
type stubCatalog struct {
	records []domain.PermissionRecord
	err     error
}

func (c *stubCatalog) FetchPermissions(_ context.Context) ([]domain.PermissionRecord, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.records, nil
}

func newTestSession(t *testing.T) *services.Session {
	t.Helper()

	catalog := &stubCatalog{records: []domain.PermissionRecord{
		{ID: "p1", Resource: "user", Action: "create", Scope: "department", Description: "Create staff accounts"},
		{ID: "p2", Resource: "reservation", Action: "create", Scope: "property", Description: "Create reservations"},
		{ID: "p3", Resource: "setting", Action: "update", Scope: "platform", Description: "Change platform settings"},
	}}

	s := services.NewSession(catalog, domain.DefaultLookups(), domain.DefaultSearchOptions())
	s.SetHistoryStore(memory.NewHistoryStore())
	s.SetSavedSearchStore(memory.NewSavedSearchStore())
	require.NoError(t, s.RefreshPermissions(context.Background()))
	t.Cleanup(s.Close)

	return s
}

func newReadyApp(t *testing.T) (*App, *services.Session) {
	t.Helper()

	s := newTestSession(t)
	app := NewApp(s)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return model.(*App), s
}

func TestNewApp(t *testing.T) {
	s := newTestSession(t)

	app := NewApp(s)

	require.NotNil(t, app)
	assert.NotNil(t, app.input)
	assert.NotNil(t, app.list)
	assert.NotNil(t, app.status)
	assert.False(t, app.ready)
}

func TestApp_WithContext(t *testing.T) {
	app := NewApp(newTestSession(t))
	ctx := context.Background()

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)

	// Nil keeps the existing context.
	app.WithContext(nil) //nolint:staticcheck // exercising the nil guard
	assert.NotNil(t, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app := NewApp(newTestSession(t))

	assert.NotNil(t, app.Init())
}

func TestApp_Bootstrap_LoadsCatalog(t *testing.T) {
	// Session wired but never refreshed, as at process start.
	catalog := &stubCatalog{records: []domain.PermissionRecord{
		{ID: "p1", Resource: "user", Action: "create", Scope: "department"},
	}}
	s := services.NewSession(catalog, domain.DefaultLookups(), domain.DefaultSearchOptions())
	t.Cleanup(s.Close)
	require.Equal(t, domain.StatusIdle, s.Status())

	app := NewApp(s)
	msg := app.bootstrap()()

	assert.IsType(t, messages.SessionUpdated{}, msg)
	assert.Equal(t, domain.StatusBrowsing, s.Status())
	assert.NotEmpty(t, s.Results())
}

func TestApp_Bootstrap_LoadedSessionBrowses(t *testing.T) {
	s := newTestSession(t)
	s.SearchNow("user")

	app := NewApp(s)
	msg := app.bootstrap()()

	assert.IsType(t, messages.SessionUpdated{}, msg)
	assert.Empty(t, s.Query())
	assert.Equal(t, domain.StatusBrowsing, s.Status())
}

func TestApp_ViewBeforeReady(t *testing.T) {
	app := NewApp(newTestSession(t))

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_WindowSize(t *testing.T) {
	app, _ := newReadyApp(t)

	assert.True(t, app.ready)
	assert.Equal(t, 100, app.width)
	assert.Contains(t, app.View(), "Permscope")
}

func TestApp_QuitKey(t *testing.T) {
	app, _ := newReadyApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_TypingUpdatesQuery(t *testing.T) {
	app, s := newReadyApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("user")})

	assert.Equal(t, "user", app.input.Value())
	assert.Equal(t, "user", s.Query())
}

func TestApp_EscClearsSearch(t *testing.T) {
	app, s := newReadyApp(t)
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("user")})

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Empty(t, app.input.Value())
	assert.Empty(t, s.Query())
	assert.Equal(t, domain.StatusBrowsing, s.Status())
}

func TestApp_SessionUpdated_PullsResults(t *testing.T) {
	app, s := newReadyApp(t)
	results := s.SearchNow("user")
	require.NotEmpty(t, results)

	_, cmd := app.Update(messages.SessionUpdated{})

	assert.NotNil(t, cmd)
	assert.Equal(t, len(results), app.list.Count())
}

func TestApp_CycleSort(t *testing.T) {
	app, _ := newReadyApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, app.sortIndex)

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, app.sortIndex)
}

func TestApp_ToggleSelect(t *testing.T) {
	app, s := newReadyApp(t)
	s.SearchNow("user")
	app.Update(messages.SessionUpdated{})

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Len(t, s.Selected(), 1)

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Empty(t, s.Selected())
}

func TestApp_SelectAllAndClear(t *testing.T) {
	app, s := newReadyApp(t)
	s.SearchNow("create")
	app.Update(messages.SessionUpdated{})

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.NotEmpty(t, s.Selected())

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Empty(t, s.Selected())
}

func TestApp_RecordHistory(t *testing.T) {
	app, s := newReadyApp(t)
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("user")})
	s.SearchNow("user")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	recorded, ok := msg.(messages.HistoryRecorded)
	require.True(t, ok)
	assert.NoError(t, recorded.Err)
	assert.Equal(t, "user", recorded.Query)
}

func TestApp_RecordHistory_EmptyQuery(t *testing.T) {
	app, _ := newReadyApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestApp_FlashLifecycle(t *testing.T) {
	app, _ := newReadyApp(t)

	_, cmd := app.Update(messages.CopyCompleted{Count: 3})
	require.NotNil(t, cmd)
	assert.Contains(t, app.status.Flash(), "Copied 3")

	app.Update(messages.FlashExpired{})
	assert.Empty(t, app.status.Flash())
}

func TestApp_CopyFailureFlash(t *testing.T) {
	app, _ := newReadyApp(t)

	app.Update(messages.CopyCompleted{Err: errors.New("no clipboard")})

	assert.Contains(t, app.status.Flash(), "Copy failed")
}

func TestApp_ErrorView(t *testing.T) {
	catalog := &stubCatalog{err: errors.New("catalog gone")}
	s := services.NewSession(catalog, domain.DefaultLookups(), domain.DefaultSearchOptions())
	t.Cleanup(s.Close)
	require.Error(t, s.RefreshPermissions(context.Background()))

	app := NewApp(s)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = model.(*App)

	view := app.View()
	assert.Contains(t, view, "Catalog error")
	assert.Contains(t, view, "ctrl+r")
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newReadyApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
