// Package tui implements the interactive terminal UI.
//
// The app is a single search-as-you-type view over a search session:
// keystrokes feed the session's debounced query pipeline and the
// session pushes change notifications back through OnChange, which the
// app converts into Bubbletea messages.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/components/input"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/components/list"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/components/status"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/keymap"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/messages"
	"github.com/accesskit-labs/permscope-cli/internal/adapters/driving/tui/styles"
	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/ports/driving"
)

// flashDuration is how long transient status messages stay visible.
const flashDuration = 3 * time.Second

// sortCycle is the order Tab rotates through the sort strategies.
var sortCycle = []struct {
	by    domain.SortBy
	order domain.SortOrder
}{
	{domain.SortByRelevance, domain.SortDesc},
	{domain.SortByAlphabetical, domain.SortAsc},
	{domain.SortByCategory, domain.SortAsc},
	{domain.SortByPopularity, domain.SortDesc},
}

// App is the root Bubbletea model.
type App struct {
	session driving.SessionService
	ctx     context.Context

	styles *styles.Styles
	keys   *keymap.KeyMap

	input  *input.SearchInput
	list   *list.ResultList
	status *status.Bar

	// updates carries session change notifications into the Bubbletea
	// loop. Buffered so OnChange never blocks the session.
	updates chan struct{}

	sortIndex int
	width     int
	height    int
	ready     bool
}

// NewApp creates the TUI application over a search session.
func NewApp(session driving.SessionService) *App {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		session: session,
		ctx:     context.Background(),
		styles:  s,
		keys:    km,
		input:   input.NewSearchInput(s),
		list:    list.NewResultList(s),
		status:  status.NewBar(s, km),
		updates: make(chan struct{}, 1),
	}

	session.OnChange(func() {
		select {
		case app.updates <- struct{}{}:
		default:
		}
	})

	return app
}

// WithContext sets the context used for store-backed operations.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init starts the cursor blink, the session listener and the catalog
// bootstrap.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.input.Init(),
		a.waitForSession(),
		a.bootstrap(),
	)
}

// bootstrap loads the catalog when the session has never built its
// index, otherwise drops into browsing mode.
func (a *App) bootstrap() tea.Cmd {
	session := a.session
	ctx := a.ctx
	return func() tea.Msg {
		if session.Status() == domain.StatusIdle {
			// On failure the session holds its error state and the
			// view offers the retry.
			_ = session.RefreshPermissions(ctx)
		} else {
			session.ClearSearch()
		}
		return messages.SessionUpdated{}
	}
}

// Update routes messages through the Elm update loop.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.input.SetWidth(msg.Width)
		a.list.SetDimensions(msg.Width, msg.Height-7)
		a.status.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.SessionUpdated:
		a.syncFromSession()
		return a, a.waitForSession()

	case messages.CopyCompleted:
		if msg.Err != nil {
			a.status.SetFlash(fmt.Sprintf("Copy failed: %v", msg.Err), true)
		} else {
			a.status.SetFlash(fmt.Sprintf("Copied %d name(s)", msg.Count), false)
		}
		return a, a.flashTimer()

	case messages.HistoryRecorded:
		if msg.Err != nil {
			a.status.SetFlash(fmt.Sprintf("History failed: %v", msg.Err), true)
		} else {
			a.status.SetFlash(fmt.Sprintf("Saved %q to history", msg.Query), false)
		}
		return a, a.flashTimer()

	case messages.FlashExpired:
		a.status.ClearFlash()
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// handleKey dispatches a keypress. Action chords are checked first;
// everything else falls through to the search input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keys.Quit):
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keys.Clear):
		a.input.Reset()
		a.session.ClearSearch()
		return a, nil

	case keymap.Matches(keyStr, a.keys.Up):
		a.list.MoveUp()
		return a, nil

	case keymap.Matches(keyStr, a.keys.Down):
		a.list.MoveDown()
		return a, nil

	case keymap.Matches(keyStr, a.keys.CycleSort):
		a.cycleSort()
		return a, nil

	case keymap.Matches(keyStr, a.keys.ToggleSelect):
		if res := a.list.CurrentResult(); res != nil {
			a.session.ToggleSelection(res.Permission.Name)
		}
		return a, nil

	case keymap.Matches(keyStr, a.keys.SelectAll):
		a.session.SelectAll()
		return a, nil

	case keymap.Matches(keyStr, a.keys.ClearSelection):
		a.session.ClearSelection()
		return a, nil

	case keymap.Matches(keyStr, a.keys.Copy):
		return a, a.copySelection()

	case keymap.Matches(keyStr, a.keys.Refresh):
		return a, a.refreshCatalog()

	case keymap.Matches(keyStr, a.keys.Record):
		return a, a.recordHistory()
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if after := a.input.Value(); after != before {
		a.session.Search(after)
		a.status.SetStatus(a.session.Status())
	}
	return a, cmd
}

// syncFromSession pulls the session state into the components.
func (a *App) syncFromSession() {
	a.list.SetResults(a.session.Results())
	a.list.SetMarked(a.session.Selected())
	a.status.SetStatus(a.session.Status())
	a.status.SetResultCount(len(a.session.Results()))
	a.status.SetSelectedCount(len(a.session.Selected()))
}

// cycleSort advances to the next sort strategy.
func (a *App) cycleSort() {
	a.sortIndex = (a.sortIndex + 1) % len(sortCycle)
	next := sortCycle[a.sortIndex]
	a.session.SetSort(next.by, next.order)
	a.status.SetSort(next.by)
}

// copySelection copies the selected (or all) permission names.
func (a *App) copySelection() tea.Cmd {
	session := a.session
	return func() tea.Msg {
		count := len(session.Selected())
		if count == 0 {
			count = len(session.Results())
		}
		err := session.CopyPermissionNames()
		return messages.CopyCompleted{Count: count, Err: err}
	}
}

// recordHistory writes the current query to the search history.
func (a *App) recordHistory() tea.Cmd {
	query := a.session.Query()
	if query == "" {
		return nil
	}
	session := a.session
	ctx := a.ctx
	count := len(a.session.Results())
	return func() tea.Msg {
		err := session.AddToHistory(ctx, query, count)
		return messages.HistoryRecorded{Query: query, Err: err}
	}
}

// refreshCatalog reloads the permission catalog.
func (a *App) refreshCatalog() tea.Cmd {
	session := a.session
	ctx := a.ctx
	return func() tea.Msg {
		// On failure the session transitions to the error state and
		// the view reports it.
		_ = session.RefreshPermissions(ctx)
		return messages.SessionUpdated{}
	}
}

// waitForSession blocks until the session signals a change.
func (a *App) waitForSession() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.updates:
			return messages.SessionUpdated{}
		case <-a.ctx.Done():
			return messages.Quit{}
		}
	}
}

// flashTimer expires the transient status message.
func (a *App) flashTimer() tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return messages.FlashExpired{}
	})
}

// View renders the application.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	title := a.styles.Title.Render("Permscope") + " " +
		a.styles.Muted.Render("permission search")

	body := a.list.View()
	if a.session.Status() == domain.StatusError {
		body = a.renderError()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		a.input.View(),
		"",
		body,
		"",
		a.status.View(),
	)
}

// renderError shows the catalog failure and the retry hint.
func (a *App) renderError() string {
	msg := "catalog unavailable"
	if err := a.session.Err(); err != nil {
		msg = err.Error()
	}
	return a.styles.Error.Render("Catalog error: "+msg) + "\n" +
		a.styles.Muted.Render("Press ctrl+r to retry.")
}

var _ tea.Model = (*App)(nil)
