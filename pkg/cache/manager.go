package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glorpus-work/storysync/pkg/errors"
	"github.com/glorpus-work/storysync/pkg/fsutil"
)

// DefaultManager implements the Manager interface over the two cache roots.
type DefaultManager struct {
	contentDir    string
	thumbnailsDir string
}

// NewManager creates a cache manager for the given roots.
func NewManager(contentDir, thumbnailsDir string) *DefaultManager {
	return &DefaultManager{
		contentDir:    contentDir,
		thumbnailsDir: thumbnailsDir,
	}
}

// Clean removes cached files according to the specified options. Cleaning the
// content cache also invalidates every downloaded repository; the next
// enumeration reconciles the index accordingly.
func (cm *DefaultManager) Clean(options CleanOptions) (*CleanResult, error) {
	result := &CleanResult{}

	// Default to cleaning everything when no specific flag is set.
	if !options.Content && !options.Thumbnails {
		options.All = true
	}

	if options.All || options.Content {
		size, err := cleanDirectory(cm.contentDir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCacheClean, err.Error())
		}
		result.ContentFreed = size
		result.TotalFreed += size
	}

	if options.All || options.Thumbnails {
		size, err := cleanDirectory(cm.thumbnailsDir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCacheClean, err.Error())
		}
		result.ThumbnailFreed = size
		result.TotalFreed += size
	}

	return result, nil
}

// GetInfo returns size and file counts for both cache roots.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	info := &Info{
		ContentDir:    cm.contentDir,
		ThumbnailsDir: cm.thumbnailsDir,
	}

	size, files, err := getDirSizeAndFiles(cm.contentDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to inspect content cache %s", cm.contentDir)
	}
	info.ContentSize = size
	info.ContentFiles = files

	size, files, err = getDirSizeAndFiles(cm.thumbnailsDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to inspect thumbnail cache %s", cm.thumbnailsDir)
	}
	info.ThumbnailSize = size
	info.ThumbnailFiles = files

	info.TotalSize = info.ContentSize + info.ThumbnailSize
	return info, nil
}

// cleanDirectory removes a directory's contents and returns bytes freed. The
// directory itself is recreated empty.
func cleanDirectory(dir string) (int64, error) {
	if dir == "" {
		return 0, errors.ErrCacheDirectory
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	size, _, err := getDirSizeAndFiles(dir)
	if err != nil {
		return 0, err
	}

	if err := os.RemoveAll(dir); err != nil {
		return 0, errors.Wrapf(err, "failed to remove directory %s", dir)
	}
	if err := os.MkdirAll(dir, fsutil.DirModeSecure); err != nil {
		return size, errors.Wrapf(err, "failed to recreate directory %s", dir)
	}
	return size, nil
}

// getDirSizeAndFiles calculates directory size and file count. A missing
// directory counts as empty.
func getDirSizeAndFiles(dir string) (size int64, count int, err error) {
	if _, err = os.Stat(dir); os.IsNotExist(err) {
		return 0, 0, nil
	}

	err = filepath.Walk(dir, func(_ string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			size += info.Size()
			count++
		}
		return nil
	})
	if err != nil {
		err = errors.Wrapf(err, "error walking directory %s", dir)
	}
	return size, count, err
}

// FormatBytes converts bytes to a human-readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
