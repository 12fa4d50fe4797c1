package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStore_SaveAndRemove(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	fileName, url, err := store.Save("photo.JPG", strings.NewReader("fake-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(fileName, ".jpg"), "extension is lowercased")
	assert.Equal(t, "/images/"+fileName, url)

	data, err := os.ReadFile(filepath.Join(store.Root(), fileName))
	require.NoError(t, err)
	assert.Equal(t, "fake-bytes", string(data))

	require.NoError(t, store.Remove(fileName))
	_, err = os.Stat(filepath.Join(store.Root(), fileName))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Remove("already-gone.png"), "missing files are not an error")
}

func TestLocalImageStore_RejectsUnknownExtension(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Save("payload.exe", strings.NewReader("nope"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLocalImageStore_StripsDirectoryFromName(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	fileName, _, err := store.Save("../../etc/passwd.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, fileName, "/")
	assert.NotContains(t, fileName, "..")
}
