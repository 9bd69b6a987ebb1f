package complete

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirgrip/internal/fsx"
)

func setupDirs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range []string{"projects", "pictures", "downloads"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, d), 0755))
	}
	// Files must not show up as completions
	require.NoError(t, os.WriteFile(filepath.Join(root, "profile.txt"), []byte("x"), 0644))
	return root
}

func TestCompleteByPrefix(t *testing.T) {
	root := setupDirs(t)
	c := New(fsx.NewOS())

	got := c.Complete(filepath.Join(root, "p"))
	assert.Equal(t, []string{
		filepath.Join(root, "pictures"),
		filepath.Join(root, "projects"),
	}, got)
}

func TestCompleteListsAllOnSeparator(t *testing.T) {
	root := setupDirs(t)
	c := New(fsx.NewOS())

	got := c.Complete(root + string(filepath.Separator))
	assert.Len(t, got, 3)
}

func TestCompleteNoMatch(t *testing.T) {
	root := setupDirs(t)
	c := New(fsx.NewOS())

	assert.Empty(t, c.Complete(filepath.Join(root, "zzz")))
	assert.Empty(t, c.Complete(""))
}

func TestCompleteUnreadableDir(t *testing.T) {
	c := New(fsx.NewOS())
	assert.Empty(t, c.Complete("/definitely/not/a/real/dir/pre"))
}

func TestInvalidateRefreshesListing(t *testing.T) {
	root := setupDirs(t)
	c := New(fsx.NewOS())

	require.Len(t, c.Complete(filepath.Join(root, "p")), 2)

	// New directory is invisible until the cache entry is dropped
	require.NoError(t, os.Mkdir(filepath.Join(root, "packages"), 0755))
	assert.Len(t, c.Complete(filepath.Join(root, "p")), 2)

	c.Invalidate(root)
	assert.Len(t, c.Complete(filepath.Join(root, "p")), 3)
}
