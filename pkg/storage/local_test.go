package storage_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyralabs/veyra/pkg/storage"
)

func TestLocalDisk_PutGet(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir())

	require.NoError(t, d.Put("uploads/brands/1700000000.jpg", []byte("jpeg bytes")))

	got, err := d.Get("uploads/brands/1700000000.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), got)

	assert.True(t, d.Exists("uploads/brands/1700000000.jpg"))
	assert.False(t, d.Exists("uploads/brands/missing.jpg"))

	size, err := d.Size("uploads/brands/1700000000.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)
}

func TestLocalDisk_PutCreatesParentDirs(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir())
	require.NoError(t, d.Put("a/b/c/file.png", []byte("x")))
	assert.True(t, d.Exists("a/b/c/file.png"))
}

func TestLocalDisk_DeleteIsIdempotent(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir())
	require.NoError(t, d.Put("uploads/products/1.jpg", []byte("x")))

	require.NoError(t, d.Delete("uploads/products/1.jpg"))
	assert.False(t, d.Exists("uploads/products/1.jpg"))

	// deleting an absent file is not an error
	require.NoError(t, d.Delete("uploads/products/1.jpg"))
}

func TestLocalDisk_Files(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir())

	files, err := d.Files("uploads/brands")
	require.NoError(t, err)
	assert.Empty(t, files)

	require.NoError(t, d.Put("uploads/brands/a.jpg", []byte("a")))
	require.NoError(t, d.Put("uploads/brands/b.png", []byte("b")))
	require.NoError(t, d.Put("uploads/brands/nested/c.png", []byte("c")))

	files, err = d.Files("uploads/brands")
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{"a.jpg", "b.png"}, files)
}

func TestLocalDisk_MakeDirectory(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir())
	require.NoError(t, d.MakeDirectory("uploads/categories"))

	files, err := d.Files("uploads/categories")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestManager_UseUnknownPanics(t *testing.T) {
	assert.Panics(t, func() { storage.Use("no-such-disk") })
}

func TestManager_RegisterDisk(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir())
	storage.RegisterDisk("scratch", d)
	assert.Equal(t, d, storage.Use("scratch"))
}
