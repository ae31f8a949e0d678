package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	for _, rel := range []string{"b.jess", "a.jess", "lib/c.jess", "lib/readme.md", ".cache/d.jess"} {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	}

	// --- Act ---
	files, err := FindFilesByExtension(root, ".jess")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.jess"),
		filepath.Join(root, "b.jess"),
		filepath.Join(root, "lib", "c.jess"),
	}, files)
}

func TestFindFilesByExtension_EmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir(), "") })
}

func TestOS_WriteFileCreatesParents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "dist", "js", "app.js")

	require.NoError(t, OS{}.WriteFile(target, []byte("out")))

	assert.True(t, IsFile(OS{}, target))
	assert.False(t, IsFile(OS{}, filepath.Dir(target)), "directories are not files")
	data, err := OS{}.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "out", string(data))
}
