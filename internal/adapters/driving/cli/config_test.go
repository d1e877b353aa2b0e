package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/accesskit-labs/permscope-cli/internal/adapters/driven/config/file"
)

// setupTestConfig wires a real config store in a temp dir.
func setupTestConfig(t *testing.T) func() {
	t.Helper()

	old := configStore
	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	SetConfigStore(store)

	return func() { configStore = old }
}

func TestConfigCmd_Show(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	out, err := executeCommand(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[search]")
	assert.Contains(t, out, "min_score: (default)")
}

func TestConfigCmd_SetAndGet(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	out, err := executeCommand(t, "config", "set", "search.max_results", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "search.max_results = 25")

	out, err = executeCommand(t, "config", "get", "search.max_results")
	require.NoError(t, err)
	assert.Contains(t, out, "25")

	// Typed storage: the int accessor works
	assert.Equal(t, 25, configStore.GetInt(configfile.KeyMaxResults))
}

func TestConfigCmd_SetFloat(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	_, err := executeCommand(t, "config", "set", "search.min_score", "0.2")
	require.NoError(t, err)

	assert.Equal(t, 0.2, configStore.GetFloat(configfile.KeyMinScore))
}

func TestConfigCmd_GetUnsetKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	_, err := executeCommand(t, "config", "get", "no.such.key")
	assert.Error(t, err)
}

func TestConfigCmd_StoreNotConfigured(t *testing.T) {
	old := configStore
	configStore = nil
	defer func() { configStore = old }()

	_, err := executeCommand(t, "config", "show")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config store not configured")
}
