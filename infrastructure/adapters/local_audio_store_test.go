package adapters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAudioStoreSaveStream(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalAudioStore(root)
	require.NoError(t, err)

	relativePath, err := store.SaveStream("link_voices", "link_abc", strings.NewReader("mp3-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relativePath, filepath.Join("link_voices", "link_abc_")))
	assert.True(t, strings.HasSuffix(relativePath, ".mp3"))
	assert.True(t, store.Exists(relativePath))

	data, err := os.ReadFile(filepath.Join(root, relativePath))
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(data))
}

func TestLocalAudioStoreRejectsEmptyBody(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalAudioStore(root)
	require.NoError(t, err)

	_, err = store.SaveStream("link_voices", "link_abc", strings.NewReader(""))
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "link_voices"))
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial file left behind")
}

func TestLocalAudioStoreSaveAndDelete(t *testing.T) {
	store, err := NewLocalAudioStore(t.TempDir())
	require.NoError(t, err)

	relativePath, err := store.Save("voice_samples", "alice_sample", []byte("sample-bytes"))
	require.NoError(t, err)
	assert.True(t, store.Exists(relativePath))

	require.NoError(t, store.Delete(relativePath))
	assert.False(t, store.Exists(relativePath))
	assert.Error(t, store.Delete(relativePath))
}

func TestLocalAudioStoreUniquePaths(t *testing.T) {
	store, err := NewLocalAudioStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save("welcome", "alice_welcome", []byte("one"))
	require.NoError(t, err)
	second, err := store.Save("welcome", "alice_welcome", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, store.Exists(first))
	assert.True(t, store.Exists(second))
}
