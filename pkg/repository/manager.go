package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"path/filepath"
	"slices"
	"sync"

	"github.com/glorpus-work/storysync/internal/logger"
	"github.com/glorpus-work/storysync/pkg/catalog"
	"github.com/glorpus-work/storysync/pkg/errors"
	"github.com/glorpus-work/storysync/pkg/fsys"
	"github.com/glorpus-work/storysync/pkg/hook"
	"github.com/glorpus-work/storysync/pkg/model"
	"github.com/glorpus-work/storysync/pkg/netx"
	"github.com/glorpus-work/storysync/pkg/storage"
	"github.com/glorpus-work/storysync/pkg/version"
)

// Options configure the manager's storage layout.
type Options struct {
	// StorageKey is the storage adapter key holding the ordered download index.
	StorageKey string
	// ContentDir is the root of the extracted repository content tree.
	ContentDir string
	// ThumbnailsDir is the root of the cached thumbnail images.
	ThumbnailsDir string
}

// Manager orchestrates catalog lookups, downloads and deletions while keeping
// the persisted download index consistent with the on-disk content.
//
// A repository key moves through NotPresent -> Downloading -> Downloaded and
// back via Deleting; "update available" is never stored, it is computed on
// demand by HasUpdates.
type Manager struct {
	opts      Options
	storage   storage.Adapter
	fs        fsys.Adapter
	net       netx.Adapter
	catalog   catalog.Client
	extractor Extractor
	hooks     hook.Manager

	initOnce sync.Once
	initErr  error

	mu       sync.Mutex
	index    []string
	inflight map[string]*inflightDownload
}

// inflightDownload tracks one running download so that concurrent calls for
// the same key join it instead of racing.
type inflightDownload struct {
	done chan struct{}
	repo *model.Repository
	err  error
}

// NewManager creates a repository manager. The hooks manager may be nil.
func NewManager(
	storageAdapter storage.Adapter,
	fsAdapter fsys.Adapter,
	netAdapter netx.Adapter,
	catalogClient catalog.Client,
	extractor Extractor,
	hooks hook.Manager,
	opts Options,
) *Manager {
	return &Manager{
		opts:      opts,
		storage:   storageAdapter,
		fs:        fsAdapter,
		net:       netAdapter,
		catalog:   catalogClient,
		extractor: extractor,
		hooks:     hooks,
		inflight:  make(map[string]*inflightDownload),
	}
}

// Initialize loads the persisted download index. It runs at most once; every
// other operation calls it implicitly, so explicit initialization is optional
// but lets callers surface loading errors early.
func (m *Manager) Initialize(_ context.Context) error {
	m.initOnce.Do(func() {
		m.initErr = m.loadIndex()
	})
	return m.initErr
}

func (m *Manager) loadIndex() error {
	raw, ok, err := m.storage.Get(m.opts.StorageKey)
	if err != nil {
		return errors.Wrap(err, "failed to load download index")
	}
	if !ok {
		m.index = []string{}
		return nil
	}

	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return errors.Wrap(errors.ErrParse, "download index is corrupt")
	}
	m.index = keys
	logger.Debugf("loaded download index with %d entries", len(keys))
	return nil
}

// Get returns the repository for key. When online it prefers a fresh catalog
// lookup merged with the local download state; offline or on a catalog miss it
// falls back to the cached local record. It returns (nil, nil) when nothing is
// known about the key.
func (m *Manager) Get(ctx context.Context, key model.RepositoryKey) (*model.Repository, error) {
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}

	if m.net.IsOnline(ctx) {
		repo, err := m.catalog.Lookup(ctx, key)
		if err == nil && repo != nil {
			m.mergeLocalState(repo)
			return repo, nil
		}
		if err != nil {
			logger.Debugf("catalog lookup for %s failed, falling back to cache: %v", key, err)
		}
	}

	return m.localRepository(key)
}

// Search returns catalog repositories, optionally filtered by language, with
// local download state merged in. Being offline yields an empty result, not
// an error.
func (m *Manager) Search(ctx context.Context, language string) ([]*model.Repository, error) {
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}

	repos, err := m.catalog.Search(ctx, catalog.Query{Language: language})
	if err != nil {
		if stderrors.Is(err, errors.ErrOffline) {
			return []*model.Repository{}, nil
		}
		return nil, err
	}
	for _, repo := range repos {
		m.mergeLocalState(repo)
	}
	return repos, nil
}

// Delete removes the repository's content subtree, thumbnail and index entry.
// Deleting an already-absent key succeeds without error.
func (m *Manager) Delete(ctx context.Context, key model.RepositoryKey) error {
	if err := m.Initialize(ctx); err != nil {
		return err
	}

	meta, _ := m.localRepository(key)

	if err := m.fs.Delete(m.contentPath(key), true); err != nil {
		return errors.Wrapf(err, "failed to delete content for %s", key)
	}
	if err := m.fs.Delete(m.thumbnailPath(key), true); err != nil {
		return errors.Wrapf(err, "failed to delete thumbnail for %s", key)
	}

	m.mu.Lock()
	pruned := slices.DeleteFunc(slices.Clone(m.index), func(k string) bool { return k == key.String() })
	if err := m.persistIndexLocked(pruned); err != nil {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	if err := m.storage.Remove(key.String()); err != nil {
		return errors.Wrapf(err, "failed to remove metadata for %s", key)
	}

	m.runHook(hook.PostDelete, hook.Context{Key: key, Version: versionOf(meta)})
	logger.Debugf("deleted repository %s", key)
	return nil
}

// Downloaded returns the reconciled snapshot of downloaded repositories.
// Index entries whose backing content directory is missing are dropped,
// restoring the index/filesystem consistency invariant.
func (m *Manager) Downloaded(ctx context.Context) ([]*model.Repository, error) {
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	keys := slices.Clone(m.index)
	m.mu.Unlock()

	repos := make([]*model.Repository, 0, len(keys))
	kept := make([]string, 0, len(keys))
	var orphans []string

	for _, raw := range keys {
		key, err := model.ParseKey(raw)
		if err != nil {
			orphans = append(orphans, raw)
			continue
		}
		info, err := m.fs.Info(m.contentPath(key))
		if err != nil {
			return nil, err
		}
		if !info.Exists {
			orphans = append(orphans, raw)
			continue
		}

		repo, err := m.localRepository(key)
		if err != nil || repo == nil {
			orphans = append(orphans, raw)
			continue
		}
		repo.IsDownloaded = true
		repos = append(repos, repo)
		kept = append(kept, raw)
	}

	if len(orphans) > 0 {
		logger.Warnf("dropping %d orphaned index entries: %v", len(orphans), orphans)
		m.mu.Lock()
		if err := m.persistIndexLocked(kept); err != nil {
			m.mu.Unlock()
			return nil, err
		}
		m.mu.Unlock()
		for _, raw := range orphans {
			_ = m.storage.Remove(raw)
		}
	}

	return repos, nil
}

// IsDownloaded reports whether key is present in the reconciled index and its
// content path exists.
func (m *Manager) IsDownloaded(ctx context.Context, key model.RepositoryKey) (bool, error) {
	if err := m.Initialize(ctx); err != nil {
		return false, err
	}

	m.mu.Lock()
	inIndex := slices.Contains(m.index, key.String())
	m.mu.Unlock()
	if !inIndex {
		return false, nil
	}

	info, err := m.fs.Info(m.contentPath(key))
	if err != nil {
		return false, err
	}
	return info.Exists, nil
}

// HasUpdates reports whether the catalog offers a strictly newer version than
// the locally stored one. Being offline is a benign no-information outcome:
// it yields (false, nil), never an error.
func (m *Manager) HasUpdates(ctx context.Context, key model.RepositoryKey) (bool, error) {
	if err := m.Initialize(ctx); err != nil {
		return false, err
	}

	local, err := m.localRepository(key)
	if err != nil {
		return false, err
	}
	if local == nil {
		return false, errors.Wrapf(errors.ErrNotFound, "%s is not downloaded", key)
	}

	if !m.net.IsOnline(ctx) {
		return false, nil
	}

	remote, err := m.catalog.Lookup(ctx, key)
	if err != nil {
		if stderrors.Is(err, errors.ErrOffline) {
			return false, nil
		}
		return false, err
	}
	if remote == nil || remote.Version == "" || local.Version == "" {
		return false, nil
	}

	ord, err := version.Compare(remote.Version, local.Version)
	if err != nil {
		return false, err
	}
	return ord == version.Greater, nil
}

// mergeLocalState recomputes the derived download fields on a catalog record.
func (m *Manager) mergeLocalState(repo *model.Repository) {
	key := repo.Key()

	m.mu.Lock()
	inIndex := slices.Contains(m.index, key.String())
	m.mu.Unlock()

	if inIndex {
		if info, err := m.fs.Info(m.contentPath(key)); err == nil && info.Exists {
			repo.IsDownloaded = true
		}
	}
	if info, err := m.fs.Info(m.thumbnailPath(key)); err == nil && info.Exists {
		repo.LocalThumbnail = m.thumbnailPath(key)
	}
}

// localRepository loads the cached metadata record for key, recomputing the
// derived fields. It returns (nil, nil) when no record exists.
func (m *Manager) localRepository(key model.RepositoryKey) (*model.Repository, error) {
	raw, ok, err := m.storage.Get(key.String())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load metadata for %s", key)
	}
	if !ok {
		return nil, nil
	}

	var repo model.Repository
	if err := json.Unmarshal([]byte(raw), &repo); err != nil {
		return nil, errors.Wrapf(errors.ErrParse, "metadata for %s is corrupt", key)
	}

	repo.IsDownloaded = false
	if info, err := m.fs.Info(m.contentPath(key)); err == nil && info.Exists {
		m.mu.Lock()
		repo.IsDownloaded = slices.Contains(m.index, key.String())
		m.mu.Unlock()
	}
	return &repo, nil
}

// persistIndexLocked writes keys to storage and, on success, installs it as
// the in-memory index. Callers must hold m.mu.
func (m *Manager) persistIndexLocked(keys []string) error {
	data, err := json.Marshal(keys)
	if err != nil {
		return errors.Wrap(err, "failed to encode download index")
	}
	if err := m.storage.Set(m.opts.StorageKey, string(data)); err != nil {
		return errors.Wrap(err, "failed to persist download index")
	}
	m.index = keys
	return nil
}

func (m *Manager) contentPath(key model.RepositoryKey) string {
	return filepath.Join(m.opts.ContentDir, key.Owner, key.Language, key.ID)
}

func (m *Manager) thumbnailPath(key model.RepositoryKey) string {
	return filepath.Join(m.opts.ThumbnailsDir, key.Owner, key.Language, key.ID+".png")
}

func (m *Manager) runHook(hookType hook.Type, ctx hook.Context) {
	if m.hooks == nil {
		return
	}
	if err := m.hooks.Execute(hookType, ctx); err != nil {
		logger.Warnf("%s hook for %s failed: %v", hookType, ctx.Key, err)
	}
}

func versionOf(repo *model.Repository) string {
	if repo == nil {
		return ""
	}
	return repo.Version
}
