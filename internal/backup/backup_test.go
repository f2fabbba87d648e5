package backup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCopiesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "canteen.db")
	dst := filepath.Join(dir, "export.db")
	require.NoError(t, os.WriteFile(src, []byte("live database"), 0o644))

	require.NoError(t, Export(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("live database"), got)
}

func TestExportMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Export(filepath.Join(dir, "missing.db"), filepath.Join(dir, "out.db"))
	assert.Error(t, err)
}

func TestImportReplacesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "canteen.db")
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o644))

	require.NoError(t, Import(bytes.NewReader([]byte("restored database")), dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("restored database"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
