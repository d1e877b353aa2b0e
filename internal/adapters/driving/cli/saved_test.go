package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedCmd_EmptyList(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "saved", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No saved searches")
}

func TestSavedAddCmd_RequiresQueryFlag(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "saved", "add", "my search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}

func TestSavedCmd_AddRunDelete(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	defer func() { savedQuery = ""; savedDescription = "" }()

	out, err := executeCommand(t, "saved", "add", "staff lookup", "--query", "user", "--description", "find staff perms")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved search "staff lookup"`)

	saved, err := session.SavedSearches(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "user", saved[0].Query)

	out, err = executeCommand(t, "saved", "run", saved[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "user.create.department")

	// Loading bumps use tracking
	reloaded, err := session.SavedSearches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded[0].UseCount)

	out, err = executeCommand(t, "saved", "delete", saved[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	final, err := session.SavedSearches(context.Background())
	require.NoError(t, err)
	assert.Empty(t, final)
}

func TestSavedRunCmd_UnknownID(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "saved", "run", "no-such-id")
	assert.Error(t, err)
}

func TestSavedDeleteCmd_UnknownID(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "saved", "delete", "no-such-id")
	assert.Error(t, err)
}
