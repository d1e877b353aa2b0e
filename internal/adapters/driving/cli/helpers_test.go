package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accesskit-labs/permscope-cli/internal/adapters/driven/storage/memory"
	"github.com/accesskit-labs/permscope-cli/internal/core/domain"
	"github.com/accesskit-labs/permscope-cli/internal/core/services"
)

// stubCatalog is a fixed in-memory catalog for command tests.
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

func testCatalogRecords() []domain.PermissionRecord {
	return []domain.PermissionRecord{
		{ID: "p1", Resource: "user", Action: "create", Scope: "department", Description: "Create staff accounts"},
		{ID: "p2", Resource: "reservation", Action: "create", Scope: "property", Description: "Create reservations"},
		{ID: "p3", Resource: "document", Action: "approve", Scope: "property", Description: "Approve documents"},
		{ID: "p4", Resource: "setting", Action: "update", Scope: "platform", Description: "Change platform settings"},
	}
}

// setupTestServices wires a real session over a stub catalog and
// in-memory stores, and returns a cleanup that restores the old wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	oldSession := session
	oldConfig := configStore
	resetSearchFlags()

	s := services.NewSession(
		&stubCatalog{records: testCatalogRecords()},
		domain.DefaultLookups(),
		domain.DefaultSearchOptions(),
	)
	s.SetHistoryStore(memory.NewHistoryStore())
	s.SetSavedSearchStore(memory.NewSavedSearchStore())
	require.NoError(t, s.RefreshPermissions(context.Background()))

	SetSession(s)

	return func() {
		s.Close()
		session = oldSession
		configStore = oldConfig
	}
}

// resetSearchFlags clears the package-level flag state that cobra
// keeps between Execute calls.
func resetSearchFlags() {
	searchResources = nil
	searchActions = nil
	searchScopes = nil
	searchCategories = nil
	searchNoSystem = false
	searchNoCond = false
	searchMinPop = 0
	searchContext = ""
	searchSort = ""
	searchOrder = ""
	searchLimit = 0
	searchJSON = false
	searchNoHistory = false
}

// executeCommand runs the root command with args and captures output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
