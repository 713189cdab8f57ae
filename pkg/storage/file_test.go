package storage

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewFileStore_RelativePath(t *testing.T) {
	_, err := NewFileStore("relative/path")
	assert.Error(t, err)
}

func TestFileStore_SetGetRemove(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("downloads.index", `["unfoldingword/en/obs"]`))

	value, ok, err := store.Get("downloads.index")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["unfoldingword/en/obs"]`, value)

	require.NoError(t, store.Remove("downloads.index"))
	_, ok, err = store.Get("downloads.index")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_RemoveAbsentKey(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Remove("never-set"))
}

func TestFileStore_KeysWithSlashes(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("unfoldingword/en/obs", `{"version":"7.0"}`))
	require.NoError(t, store.Set("unfoldingword/es/obs", `{"version":"6.1"}`))

	en, ok, err := store.Get("unfoldingword/en/obs")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"version":"7.0"}`, en)

	es, ok, err := store.Get("unfoldingword/es/obs")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"version":"6.1"}`, es)

	// Keys must land in flat files directly under the store dir.
	entries, err := os.ReadDir(store.dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, e.IsDir())
	}
}

func TestFileStore_LastWriteWins(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("k", "first"))
	require.NoError(t, store.Set("k", "second"))

	value, ok, err := store.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestFileStore_ConcurrentWriters(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("contended", "value")
		}()
	}
	wg.Wait()

	value, ok, err := store.Get("contended")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", value)
}
