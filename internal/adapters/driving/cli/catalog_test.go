package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCheckCmd_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[permission]]
resource = "user"
action = "view"
scope = "property"
`), 0600))

	out, err := executeCommand(t, "catalog", "check", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Catalog OK: 1 permission(s)")
}

func TestCatalogCheckCmd_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [[toml"), 0600))

	_, err := executeCommand(t, "catalog", "check", path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog invalid")
}

func TestCatalogRefreshCmd(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "catalog", "refresh")

	require.NoError(t, err)
	assert.Contains(t, out, "Catalog reloaded")
}

func TestVersionCmd(t *testing.T) {
	out, err := executeCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "permscope version")
}

func TestBrowseCmd(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "browse")

	require.NoError(t, err)
	assert.Contains(t, out, "Catalog by popularity")
	// reservation.create carries the highest popularity in the fixture
	assert.Contains(t, out, "reservation.create.property")
}

func TestRecentCmd_Empty(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "recent")

	require.NoError(t, err)
	assert.Contains(t, out, "No recently selected")
}

func TestExportCmd(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "export", "user")

	require.NoError(t, err)
	assert.Contains(t, out, `"query": "user"`)
	assert.Contains(t, out, `"user.create.department"`)
}

func TestExportCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "export", "zzzzqqqq")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to export")
}
