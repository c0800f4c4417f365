package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathFor(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "docs/stories.md.backup.1700000000123", PathFor("docs/stories.md", now))
}

func TestCreate_CopiesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stories.md")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	now := time.UnixMilli(1700000000000)
	dest, err := Create(path, now)
	require.NoError(t, err)
	assert.Equal(t, path+".backup.1700000000000", dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	// Source is untouched.
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestCreate_MissingSourceIsNoop(t *testing.T) {
	dir := t.TempDir()
	dest, err := Create(filepath.Join(dir, "absent.md"), time.Now())
	require.NoError(t, err)
	assert.Empty(t, dest)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
