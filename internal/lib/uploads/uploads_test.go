package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save(strings.NewReader("fake image bytes"), "avatar.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	require.NoError(t, store.Remove(name))
	_, err = os.Stat(filepath.Join(store.Dir(), name))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveUnsupportedExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(strings.NewReader("#!/bin/sh"), "evil.sh")
	assert.Error(t, err)
}

func TestSaveUniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(strings.NewReader("a"), "a.jpg")
	require.NoError(t, err)
	second, err := store.Save(strings.NewReader("b"), "a.jpg")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemoveMissingFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove("no-such-file.png"))
}
