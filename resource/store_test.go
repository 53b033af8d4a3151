package resource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternDeduplicatesByContent(t *testing.T) {
	store, err := New(nil)
	require.NoError(t, err)
	defer store.Close()

	dir := t.TempDir()
	first := filepath.Join(dir, "red.png")
	second := filepath.Join(dir, "crimson.png")
	require.NoError(t, os.WriteFile(first, []byte("pixels"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("pixels"), 0644))

	ctx := context.Background()
	storedFirst, err := store.Intern(ctx, first)
	require.NoError(t, err)
	storedSecond, err := store.Intern(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, storedFirst, storedSecond)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "red.png", entries[0].Name())
}

func TestInternResolvesNameCollisions(t *testing.T) {
	store, err := New(nil)
	require.NoError(t, err)
	defer store.Close()

	dirA := t.TempDir()
	dirB := t.TempDir()
	first := filepath.Join(dirA, "texture.png")
	second := filepath.Join(dirB, "texture.png")
	require.NoError(t, os.WriteFile(first, []byte("red pixels"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("blue pixels"), 0644))

	ctx := context.Background()
	storedFirst, err := store.Intern(ctx, first)
	require.NoError(t, err)
	storedSecond, err := store.Intern(ctx, second)
	require.NoError(t, err)

	assert.NotEqual(t, storedFirst, storedSecond)
	assert.Equal(t, "texture.png", filepath.Base(storedFirst))
	assert.Equal(t, "texture_1.png", filepath.Base(storedSecond))
}

func TestInternIdempotentPerFile(t *testing.T) {
	store, err := New(nil)
	require.NoError(t, err)
	defer store.Close()

	file := filepath.Join(t.TempDir(), "texture.png")
	require.NoError(t, os.WriteFile(file, []byte("pixels"), 0644))

	ctx := context.Background()
	first, err := store.Intern(ctx, file)
	require.NoError(t, err)
	second, err := store.Intern(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInternUnreadable(t *testing.T) {
	store, err := New(nil)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Intern(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestCloseRemovesScratchDir(t *testing.T) {
	store, err := New(nil)
	require.NoError(t, err)
	dir := store.Dir()
	require.NoError(t, store.Close())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
