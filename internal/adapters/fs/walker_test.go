package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/fab/internal/adapters/fs"
)

func writeFile(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	now := time.Now()

	writeFile(t, filepath.Join(root, "a.c"), now)
	writeFile(t, filepath.Join(root, "sub", "b.c"), now)
	writeFile(t, filepath.Join(root, ".git", "HEAD"), now)
	writeFile(t, filepath.Join(root, ".jj", "repo"), now)

	var got []string
	for path := range fs.NewWalker().WalkFiles(root) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, rel)
	}
	slices.Sort(got)

	assert.Equal(t, []string{"a.c", filepath.Join("sub", "b.c")}, got)
}

func TestWalker_NewestMTime(t *testing.T) {
	root := t.TempDir()
	old := time.Now().Add(-time.Hour)
	recent := time.Now().Add(-time.Minute)

	writeFile(t, filepath.Join(root, "old.c"), old)
	writeFile(t, filepath.Join(root, "deep", "new.c"), recent)
	require.NoError(t, os.Chtimes(root, old, old))
	require.NoError(t, os.Chtimes(filepath.Join(root, "deep"), old, old))

	got, err := fs.NewWalker().NewestMTime(root)
	require.NoError(t, err)
	assert.WithinDuration(t, recent, got, time.Second)
}

func TestWalker_NewestMTime_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.c")
	stamp := time.Now().Add(-30 * time.Minute)
	writeFile(t, path, stamp)

	got, err := fs.NewWalker().NewestMTime(path)
	require.NoError(t, err)
	assert.WithinDuration(t, stamp, got, time.Second)
}

func TestWalker_NewestMTime_Missing(t *testing.T) {
	got, err := fs.NewWalker().NewestMTime(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, got.IsZero())
}
