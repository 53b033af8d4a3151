package packer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackOrdersPreferredEntryFirst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_texture.png"), []byte("pixels"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.scn"), []byte("defaultPrim: Root\n"), 0644))

	output := filepath.Join(t.TempDir(), "model.scnz")
	packer := New(nil, ".scn")
	require.NoError(t, packer.Pack(context.Background(), dir, output, "model.scn"))

	reader, err := zip.OpenReader(output)
	require.NoError(t, err)
	defer reader.Close()

	require.Len(t, reader.File, 2)
	assert.Equal(t, "model.scn", reader.File[0].Name)
	assert.Equal(t, zip.Store, reader.File[0].Method)
}

func TestPackEmptyDirIsNoOp(t *testing.T) {
	output := filepath.Join(t.TempDir(), "empty.scnz")
	packer := New(nil, ".scn")
	require.NoError(t, packer.Pack(context.Background(), t.TempDir(), output, ""))

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestUnpackReportsDefaultDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.scn"), []byte("defaultPrim: Root\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "texture.png"), []byte("pixels"), 0644))

	output := filepath.Join(t.TempDir(), "model.scnz")
	packer := New(nil, ".scn")
	ctx := context.Background()
	require.NoError(t, packer.Pack(ctx, dir, output, "model.scn"))

	extracted, firstEntry, err := packer.Unpack(ctx, output)
	require.NoError(t, err)
	defer os.RemoveAll(extracted)

	assert.Equal(t, "model.scn", firstEntry)
	data, err := os.ReadFile(filepath.Join(extracted, "texture.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)
}

func TestUnpackWithoutDocumentEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "texture.png"), []byte("pixels"), 0644))

	output := filepath.Join(t.TempDir(), "broken.scnz")
	packer := New(nil, ".scn")
	ctx := context.Background()
	require.NoError(t, packer.Pack(ctx, dir, output, ""))

	_, _, err := packer.Unpack(ctx, output)
	assert.Error(t, err)
}
