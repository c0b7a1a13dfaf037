package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "001", Version("001_init.sql"))
	assert.Equal(t, "002", Version("/tmp/migrations/002_roles_and_more.sql"))
	assert.Equal(t, "003.sql", Version("003.sql"))
}

func TestFilesOrdersSQLFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_roles.sql", "001_init.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000_dir.sql"), 0o700))

	files, err := Files(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "001_init.sql"),
		filepath.Join(dir, "002_roles.sql"),
	}, files)
}

func TestFilesMissingDirectory(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestMigrationFilesInRepository(t *testing.T) {
	files, err := Files(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "001", Version(files[0]))
	assert.Equal(t, "002", Version(files[1]))
}
