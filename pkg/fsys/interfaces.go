//go:generate mockgen -destination=./mocks/fsys.go . Adapter

// Package fsys provides the filesystem adapter used for extracted repository
// content and cached thumbnails: existence checks, subtree management and
// streamed downloads.
package fsys

import "context"

// Info describes a path.
type Info struct {
	Exists      bool
	IsDirectory bool
}

// Adapter is a platform-specific byte-level storage capability.
type Adapter interface {
	// Info returns existence and directory status for path.
	Info(path string) (Info, error)

	// MakeDirectory creates path. With intermediates, missing parents are
	// created as well.
	MakeDirectory(path string, intermediates bool) error

	// Delete removes path, including any subtree below it. With idempotent,
	// deleting an absent path succeeds.
	Delete(path string, idempotent bool) error

	// WriteString writes data to path, creating parent directories as needed.
	WriteString(path, data string) error

	// ReadString reads the contents of path.
	ReadString(path string) (string, error)

	// DownloadToFile streams remoteURL into localPath. The file appears at
	// localPath only after the full body has been written; a non-success HTTP
	// status is an error, never a silent empty file.
	DownloadToFile(ctx context.Context, remoteURL, localPath string) error
}
