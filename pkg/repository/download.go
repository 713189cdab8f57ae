package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/glorpus-work/storysync/internal/logger"
	"github.com/glorpus-work/storysync/pkg/errors"
	"github.com/glorpus-work/storysync/pkg/fsutil"
	"github.com/glorpus-work/storysync/pkg/hook"
	"github.com/glorpus-work/storysync/pkg/model"
)

// Download fetches the repository archive for key, extracts it into the
// content tree and records it in the download index. The returned record
// reflects the freshly committed state.
//
// Concurrent calls for the same key share a single download: the first caller
// performs the work, later callers block until it finishes and receive the
// same result. The commit is all-or-nothing; a failed download leaves the
// index, metadata and any previously downloaded content untouched.
func (m *Manager) Download(ctx context.Context, key model.RepositoryKey) (*model.Repository, error) {
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}
	if key.IsZero() {
		return nil, errors.Wrap(errors.ErrInvalidKey, "download requires a complete repository key")
	}

	m.mu.Lock()
	if flight, ok := m.inflight[key.String()]; ok {
		m.mu.Unlock()
		select {
		case <-flight.done:
			return flight.repo, flight.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	flight := &inflightDownload{done: make(chan struct{})}
	m.inflight[key.String()] = flight
	m.mu.Unlock()

	flight.repo, flight.err = m.download(ctx, key)

	m.mu.Lock()
	delete(m.inflight, key.String())
	m.mu.Unlock()
	close(flight.done)

	return flight.repo, flight.err
}

func (m *Manager) download(ctx context.Context, key model.RepositoryKey) (*model.Repository, error) {
	repo, err := m.catalog.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "repository %s not found in catalog", key)
	}

	if m.hooks != nil {
		hookCtx := hook.Context{Key: key, Version: repo.Version, ContentPath: m.contentPath(key)}
		if err := m.hooks.Execute(hook.PreDownload, hookCtx); err != nil {
			return nil, errors.Wrapf(err, "pre-download hook rejected %s", key)
		}
	}

	archiveURL, err := m.catalog.ResolveArchiveURL(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := fsutil.EnsureDir(m.opts.ContentDir); err != nil {
		return nil, err
	}
	staging, err := os.MkdirTemp(m.opts.ContentDir, ".staging-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create staging directory")
	}
	defer func() { _ = os.RemoveAll(staging) }()

	archivePath := filepath.Join(staging, "repo.zip")
	if err := m.fs.DownloadToFile(ctx, archiveURL, archivePath); err != nil {
		return nil, errors.Wrapf(errors.ErrDownloadFailed, "failed to download %s: %v", key, err)
	}

	extractDir := filepath.Join(staging, "content")
	if err := m.extractor.ExtractAll(ctx, archivePath, extractDir); err != nil {
		return nil, errors.Wrapf(errors.ErrDownloadFailed, "failed to extract %s: %v", key, err)
	}

	if err := m.commitContent(key, extractDir); err != nil {
		return nil, err
	}

	m.cacheThumbnail(ctx, repo)

	repo.IsDownloaded = true
	if err := m.commitRecord(repo); err != nil {
		return nil, err
	}

	m.runHook(hook.PostDownload, hook.Context{Key: key, Version: repo.Version, ContentPath: m.contentPath(key)})
	logger.Infof("downloaded %s %s", key, repo.Version)
	return repo, nil
}

// commitContent swaps the extracted tree into the content path. The previous
// content, if any, is removed only after the new tree is fully staged.
func (m *Manager) commitContent(key model.RepositoryKey, extractDir string) error {
	target := m.contentPath(key)
	if err := fsutil.EnsureFileDir(target); err != nil {
		return err
	}
	if err := m.fs.Delete(target, true); err != nil {
		return errors.Wrapf(err, "failed to replace content for %s", key)
	}
	if err := fsutil.Move(extractDir, target); err != nil {
		return errors.Wrapf(err, "failed to install content for %s", key)
	}
	return nil
}

// commitRecord persists the metadata record and then the index entry. Index
// membership is the last step, so a crash in between leaves a record that the
// next enumeration reconciles away instead of a dangling index entry.
func (m *Manager) commitRecord(repo *model.Repository) error {
	key := repo.Key()

	data, err := json.Marshal(repo)
	if err != nil {
		return errors.Wrapf(err, "failed to encode metadata for %s", key)
	}
	if err := m.storage.Set(key.String(), string(data)); err != nil {
		return errors.Wrapf(err, "failed to persist metadata for %s", key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.index, key.String()) {
		return nil
	}
	return m.persistIndexLocked(append(slices.Clone(m.index), key.String()))
}

// cacheThumbnail fetches the repository thumbnail for offline display. A
// missing or unreachable thumbnail never fails the download.
func (m *Manager) cacheThumbnail(ctx context.Context, repo *model.Repository) {
	if repo.Thumbnail == "" {
		return
	}
	key := repo.Key()
	path := m.thumbnailPath(key)
	if err := m.fs.DownloadToFile(ctx, repo.Thumbnail, path); err != nil {
		logger.Debugf("thumbnail for %s not cached: %v", key, err)
		return
	}
	repo.LocalThumbnail = path
}
