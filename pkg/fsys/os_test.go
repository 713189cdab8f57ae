package fsys

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glorpus-work/storysync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter() *OSAdapter {
	return NewOSAdapter(Options{Timeout: time.Second, RetryDelay: time.Millisecond})
}

func TestInfo(t *testing.T) {
	a := newTestAdapter()
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name string
		path string
		want Info
	}{
		{name: "existing directory", path: dir, want: Info{Exists: true, IsDirectory: true}},
		{name: "existing file", path: file, want: Info{Exists: true, IsDirectory: false}},
		{name: "absent path", path: filepath.Join(dir, "missing"), want: Info{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Info(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMakeDirectory(t *testing.T) {
	a := newTestAdapter()
	base := t.TempDir()

	nested := filepath.Join(base, "a", "b", "c")
	assert.Error(t, a.MakeDirectory(nested, false), "missing parents without intermediates")
	require.NoError(t, a.MakeDirectory(nested, true))

	info, err := a.Info(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDirectory)
}

func TestDelete(t *testing.T) {
	a := newTestAdapter()
	base := t.TempDir()
	sub := filepath.Join(base, "owner", "en", "obs")
	require.NoError(t, a.MakeDirectory(sub, true))
	require.NoError(t, a.WriteString(filepath.Join(sub, "01.md"), "story"))
	require.NoError(t, a.WriteString(filepath.Join(sub, "content", "02.md"), "story"))

	require.NoError(t, a.Delete(filepath.Join(base, "owner"), true))

	// The whole subtree is gone, nothing orphaned under the deleted directory.
	info, err := a.Info(filepath.Join(base, "owner"))
	require.NoError(t, err)
	assert.False(t, info.Exists)
	info, err = a.Info(filepath.Join(sub, "content", "02.md"))
	require.NoError(t, err)
	assert.False(t, info.Exists)
}

func TestDelete_Idempotent(t *testing.T) {
	a := newTestAdapter()
	absent := filepath.Join(t.TempDir(), "never-existed")

	assert.NoError(t, a.Delete(absent, true))
	assert.Error(t, a.Delete(absent, false))
}

func TestWriteReadString(t *testing.T) {
	a := newTestAdapter()
	path := filepath.Join(t.TempDir(), "meta", "repo.json")

	require.NoError(t, a.WriteString(path, `{"version":"7.0"}`))
	got, err := a.ReadString(path)
	require.NoError(t, err)
	assert.Equal(t, `{"version":"7.0"}`, got)

	_, err = a.ReadString(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestDownloadToFile(t *testing.T) {
	payload := strings.Repeat("story content\n", 1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	a := newTestAdapter()
	dest := filepath.Join(t.TempDir(), "archives", "obs.zip")
	require.NoError(t, a.DownloadToFile(context.Background(), server.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))

	// No temp leftovers in the destination directory.
	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDownloadToFile_HTTPErrorFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	a := newTestAdapter()
	dest := filepath.Join(t.TempDir(), "obs.zip")
	err := a.DownloadToFile(context.Background(), server.URL, dest)

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHTTP)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "failed download must not leave a file behind")
}

func TestDownloadToFile_RetriesTransientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	a := NewOSAdapter(Options{Timeout: time.Second, RetryAttempts: 3, RetryDelay: time.Millisecond})
	dest := filepath.Join(t.TempDir(), "obs.zip")
	require.NoError(t, a.DownloadToFile(context.Background(), server.URL, dest))
	assert.Equal(t, 2, attempts)
}
