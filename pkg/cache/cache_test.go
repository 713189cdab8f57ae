package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/storysync/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestGetInfo(t *testing.T) {
	contentDir := t.TempDir()
	thumbsDir := t.TempDir()
	writeFile(t, filepath.Join(contentDir, "unfoldingword", "en", "obs", "01.md"), 100)
	writeFile(t, filepath.Join(contentDir, "unfoldingword", "en", "obs", "02.md"), 200)
	writeFile(t, filepath.Join(thumbsDir, "unfoldingword", "en", "obs.png"), 50)

	mgr := cache.NewManager(contentDir, thumbsDir)
	info, err := mgr.GetInfo()
	require.NoError(t, err)

	assert.Equal(t, int64(300), info.ContentSize)
	assert.Equal(t, 2, info.ContentFiles)
	assert.Equal(t, int64(50), info.ThumbnailSize)
	assert.Equal(t, 1, info.ThumbnailFiles)
	assert.Equal(t, int64(350), info.TotalSize)
}

func TestGetInfo_MissingDirsCountAsEmpty(t *testing.T) {
	mgr := cache.NewManager(
		filepath.Join(t.TempDir(), "absent-content"),
		filepath.Join(t.TempDir(), "absent-thumbs"),
	)

	info, err := mgr.GetInfo()
	require.NoError(t, err)
	assert.Zero(t, info.TotalSize)
	assert.Zero(t, info.ContentFiles)
}

func TestClean(t *testing.T) {
	tests := []struct {
		name            string
		options         cache.CleanOptions
		wantContentGone bool
		wantThumbsGone  bool
	}{
		{name: "all by default", options: cache.CleanOptions{}, wantContentGone: true, wantThumbsGone: true},
		{name: "content only", options: cache.CleanOptions{Content: true}, wantContentGone: true},
		{name: "thumbnails only", options: cache.CleanOptions{Thumbnails: true}, wantThumbsGone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentDir := t.TempDir()
			thumbsDir := t.TempDir()
			contentFile := filepath.Join(contentDir, "unfoldingword", "en", "obs", "01.md")
			thumbFile := filepath.Join(thumbsDir, "unfoldingword", "en", "obs.png")
			writeFile(t, contentFile, 128)
			writeFile(t, thumbFile, 64)

			mgr := cache.NewManager(contentDir, thumbsDir)
			result, err := mgr.Clean(tt.options)
			require.NoError(t, err)

			if tt.wantContentGone {
				assert.NoFileExists(t, contentFile)
				assert.Equal(t, int64(128), result.ContentFreed)
				assert.DirExists(t, contentDir, "root is recreated empty")
			} else {
				assert.FileExists(t, contentFile)
			}

			if tt.wantThumbsGone {
				assert.NoFileExists(t, thumbFile)
				assert.Equal(t, int64(64), result.ThumbnailFreed)
			} else {
				assert.FileExists(t, thumbFile)
			}

			assert.Equal(t, result.ContentFreed+result.ThumbnailFreed, result.TotalFreed)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", cache.FormatBytes(512))
	assert.Equal(t, "1.0 KB", cache.FormatBytes(1024))
	assert.Equal(t, "1.5 MB", cache.FormatBytes(1536*1024))
}
