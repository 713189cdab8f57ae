// Package cache reports on and reclaims the local download caches: extracted
// repository content and thumbnail images.
package cache

// Manager defines the interface for cache management operations.
type Manager interface {
	Clean(options CleanOptions) (*CleanResult, error)
	GetInfo() (*Info, error)
}

// CleanOptions specifies what to clean from the cache.
type CleanOptions struct {
	All        bool
	Content    bool
	Thumbnails bool
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed     int64
	ContentFreed   int64
	ThumbnailFreed int64
}

// Info represents cache information.
type Info struct {
	ContentDir     string
	ThumbnailsDir  string
	TotalSize      int64
	ContentSize    int64
	ContentFiles   int
	ThumbnailSize  int64
	ThumbnailFiles int
}
