package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRemove(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(base)
	require.NoError(t, err)

	rel, err := store.Save(strings.NewReader("image bytes"), "profile", "avatar.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, "_avatar.png"))
	assert.NotContains(t, rel, "\\")

	data, err := os.ReadFile(filepath.FromSlash(rel))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))

	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(filepath.FromSlash(rel))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(strings.NewReader("a"), "posts", "photo.jpg")
	require.NoError(t, err)
	second, err := store.Save(strings.NewReader("b"), "posts", "photo.jpg")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveSanitizesSuggestedName(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStore(base)
	require.NoError(t, err)

	rel, err := store.Save(strings.NewReader("x"), "posts", "../../etc/passwd")
	require.NoError(t, err)

	// The stored file must stay inside the base directory.
	abs, err := filepath.Abs(filepath.FromSlash(rel))
	require.NoError(t, err)
	baseAbs, err := filepath.Abs(base)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(abs, baseAbs+string(filepath.Separator)))
}
