package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Empty(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No search history")
}

func TestHistoryCmd_ListsNewestFirst(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "search", "user")
	require.NoError(t, err)
	_, err = executeCommand(t, "search", "reservation")
	require.NoError(t, err)

	out, err := executeCommand(t, "history")
	require.NoError(t, err)

	assert.Contains(t, out, `"reservation"`)
	assert.Contains(t, out, `"user"`)
	// Newest entry is listed first
	assert.Less(t, indexOf(out, `"reservation"`), indexOf(out, `"user"`))
}

func TestHistoryClearCmd(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "search", "user")
	require.NoError(t, err)

	out, err := executeCommand(t, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	assert.Empty(t, session.History())
}

func TestHistoryCmd_SessionNotConfigured(t *testing.T) {
	oldSession := session
	session = nil
	defer func() { session = oldSession }()

	_, err := executeCommand(t, "history")
	assert.Error(t, err)
}

// indexOf returns the byte offset of sub in s, or a large value when
// absent so ordering assertions fail loudly.
func indexOf(s, sub string) int {
	if i := strings.Index(s, sub); i >= 0 {
		return i
	}
	return 1 << 30
}
