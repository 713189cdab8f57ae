//go:generate mockgen -destination=./mocks/repository.go -package=mocks . Extractor

// Package repository contains the orchestrator of the sync/cache engine. The
// Manager composes the storage, filesystem and network adapters with the
// catalog client and is the sole owner of the download index and the content
// directory tree.
package repository

import "context"

// Extractor unpacks a downloaded archive into a destination directory.
type Extractor interface {
	ExtractAll(ctx context.Context, archivePath, destDir string) error
}
