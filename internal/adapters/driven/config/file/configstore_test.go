package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".permscope", "config.toml"), store.Path())

	// Cleanup
	_ = os.Remove(store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// Set a string value
	err = store.Set(KeyCatalogPath, "/etc/permscope/catalog.toml")
	require.NoError(t, err)

	// Get it back
	val, ok := store.Get(KeyCatalogPath)
	assert.True(t, ok)
	assert.Equal(t, "/etc/permscope/catalog.toml", val)
}

func TestConfigStore_GetString(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set(KeySearchContext, "role-creation")
	require.NoError(t, err)

	val := store.GetString(KeySearchContext)
	assert.Equal(t, "role-creation", val)

	// Non-existent key
	val = store.GetString("nonexistent")
	assert.Equal(t, "", val)

	// Wrong type
	err = store.Set("int_key", 42)
	require.NoError(t, err)
	val = store.GetString("int_key")
	assert.Equal(t, "", val)
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set(KeyDebounceMS, 250)
	require.NoError(t, err)

	val := store.GetInt(KeyDebounceMS)
	assert.Equal(t, 250, val)

	// Non-existent key
	val = store.GetInt("nonexistent")
	assert.Equal(t, 0, val)

	// Wrong type
	err = store.Set("string_key", "not an int")
	require.NoError(t, err)
	val = store.GetInt("string_key")
	assert.Equal(t, 0, val)
}

func TestConfigStore_GetFloat(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set(KeyMinScore, 0.25)
	require.NoError(t, err)

	val := store.GetFloat(KeyMinScore)
	assert.Equal(t, 0.25, val)

	// Integers widen to float
	err = store.Set("int_key", 3)
	require.NoError(t, err)
	val = store.GetFloat("int_key")
	assert.Equal(t, 3.0, val)

	// Non-existent key
	val = store.GetFloat("nonexistent")
	assert.Equal(t, 0.0, val)

	// Wrong type
	err = store.Set("string_key", "not a float")
	require.NoError(t, err)
	val = store.GetFloat("string_key")
	assert.Equal(t, 0.0, val)
}

func TestConfigStore_GetBool(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("bool_key", true)
	require.NoError(t, err)

	val := store.GetBool("bool_key")
	assert.True(t, val)

	err = store.Set("bool_key_false", false)
	require.NoError(t, err)

	val = store.GetBool("bool_key_false")
	assert.False(t, val)

	// Non-existent key
	val = store.GetBool("nonexistent")
	assert.False(t, val)

	// Wrong type
	err = store.Set("string_key", "true")
	require.NoError(t, err)
	val = store.GetBool("string_key")
	assert.False(t, val)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set(KeyMinScore, 0.2))
	require.NoError(t, store1.Set(KeyMaxResults, 25))
	require.NoError(t, store1.Set(KeySearchContext, "user-management"))

	// Fresh store reads back what the first wrote
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 0.2, store2.GetFloat(KeyMinScore))
	assert.Equal(t, 25, store2.GetInt(KeyMaxResults))
	assert.Equal(t, "user-management", store2.GetString(KeySearchContext))
}

func TestConfigStore_NestedTOMLFlattened(t *testing.T) {
	tmpDir := t.TempDir()

	// Write a nested TOML file by hand
	content := `
[search]
debounce_ms = 150
min_score = 0.15

[catalog]
path = "/tmp/catalog.toml"
`
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 150, store.GetInt(KeyDebounceMS))
	assert.Equal(t, 0.15, store.GetFloat(KeyMinScore))
	assert.Equal(t, "/tmp/catalog.toml", store.GetString(KeyCatalogPath))
}

func TestConfigStore_SaveWritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyDebounceMS, 300))
	require.NoError(t, store.Set(KeyCatalogPath, "/tmp/catalog.toml"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	// Dot keys are written back as nested tables, not quoted literals
	assert.Contains(t, string(data), "[search]")
	assert.Contains(t, string(data), "[catalog]")
	assert.NotContains(t, string(data), `'search.debounce_ms'`)
}

func TestConfigStore_LoadInvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not [valid toml"), 0600)
	require.NoError(t, err)

	_, err = NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_LoadMissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// Missing file is not an error, store just starts empty
	require.NoError(t, os.Remove(store.Path()))
	assert.NoError(t, store.Load())
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestNestMap_RoundTrip(t *testing.T) {
	flat := map[string]any{
		"search.debounce_ms": int64(300),
		"search.min_score":   0.1,
		"catalog.path":       "/tmp/c.toml",
		"verbose":            true,
	}

	nested := nestMap(flat)
	back := flattenMap(nested, "")

	assert.Equal(t, flat, back)
}
