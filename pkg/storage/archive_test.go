package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveSaveReadRemove(t *testing.T) {
	archive, err := NewArchive(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, archive.Save("report.csv", []byte("a,b\n1,2\n")))

	data, err := archive.Read("report.csv")
	require.NoError(t, err)
	assert.Equal(t, []byte("a,b\n1,2\n"), data)

	require.NoError(t, archive.Remove("report.csv"))
	_, err = archive.Read("report.csv")
	require.Error(t, err)

	// Removing a missing document is not an error.
	require.NoError(t, archive.Remove("report.csv"))
}

func TestArchiveRejectsEscapingNames(t *testing.T) {
	archive, err := NewArchive(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../outside.csv", "/etc/passwd", "."} {
		assert.Error(t, archive.Save(name, []byte("x")), name)
	}
}

func TestArchivePruneRemovesOnlyExpired(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewArchive(dir)
	require.NoError(t, err)

	require.NoError(t, archive.Save("old.csv", []byte("old")))
	require.NoError(t, archive.Save("fresh.csv", []byte("fresh")))

	stale := time.Now().Add(-72 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.csv"), stale, stale))

	pruned, err := archive.Prune(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.csv"}, pruned)

	_, err = archive.Read("old.csv")
	require.Error(t, err)
	_, err = archive.Read("fresh.csv")
	require.NoError(t, err)
}
