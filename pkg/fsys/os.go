package fsys

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/storysync/pkg/errors"
	"github.com/glorpus-work/storysync/pkg/fsutil"
	"github.com/glorpus-work/storysync/pkg/netx"
)

// Options configure the OS adapter's download behavior.
type Options struct {
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	UserAgent     string
}

// OSAdapter implements Adapter on the local filesystem. Downloads stream
// through a temp file in the destination directory and are renamed into place
// only on success, so callers never observe partial content.
type OSAdapter struct {
	client        *http.Client
	userAgent     string
	retryAttempts int
	retryDelay    time.Duration
}

// NewOSAdapter creates a filesystem adapter with the given download options.
func NewOSAdapter(opts Options) *OSAdapter {
	if opts.UserAgent == "" {
		opts.UserAgent = "storysync/1.0"
	}
	return &OSAdapter{
		client:        &http.Client{Timeout: opts.Timeout},
		userAgent:     opts.UserAgent,
		retryAttempts: opts.RetryAttempts,
		retryDelay:    opts.RetryDelay,
	}
}

// Info returns existence and directory status for path.
func (a *OSAdapter) Info(path string) (Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, nil
		}
		return Info{}, errors.Wrapf(err, "failed to stat %s", path)
	}
	return Info{Exists: true, IsDirectory: stat.IsDir()}, nil
}

// MakeDirectory creates path, optionally with intermediate directories.
func (a *OSAdapter) MakeDirectory(path string, intermediates bool) error {
	var err error
	if intermediates {
		err = os.MkdirAll(path, fsutil.DirModeDefault)
	} else {
		err = os.Mkdir(path, fsutil.DirModeDefault)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to create directory %s", path)
	}
	return nil
}

// Delete removes path and everything below it.
func (a *OSAdapter) Delete(path string, idempotent bool) error {
	if idempotent {
		if err := os.RemoveAll(path); err != nil {
			return errors.Wrapf(err, "failed to delete %s", path)
		}
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "failed to delete %s", path)
	}
	if err := os.RemoveAll(path); err != nil {
		return errors.Wrapf(err, "failed to delete %s", path)
	}
	return nil
}

// WriteString writes data to path, creating parent directories as needed.
func (a *OSAdapter) WriteString(path, data string) error {
	if err := fsutil.EnsureFileDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(data), fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// ReadString reads the contents of path.
func (a *OSAdapter) ReadString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return string(data), nil
}

// DownloadToFile streams remoteURL into localPath. Transient transport errors
// and 5xx statuses are retried with a fixed delay.
func (a *OSAdapter) DownloadToFile(ctx context.Context, remoteURL, localPath string) error {
	return netx.Retry(ctx, a.retryAttempts, a.retryDelay, func() error {
		return a.downloadOnce(ctx, remoteURL, localPath)
	})
}

func (a *OSAdapter) downloadOnce(ctx context.Context, remoteURL, localPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, http.NoBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to download %s", remoteURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		httpErr := errors.NewHTTPError(resp.StatusCode, remoteURL)
		if resp.StatusCode < http.StatusInternalServerError {
			return netx.Permanent(httpErr)
		}
		return httpErr
	}

	tmpPath, err := writeBodyToTemp(resp.Body, localPath)
	if err != nil {
		return err
	}
	if err := fsutil.Move(tmpPath, localPath); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "could not finalize downloaded file")
	}
	return nil
}

func writeBodyToTemp(body io.Reader, localPath string) (string, error) {
	if err := fsutil.EnsureFileDir(localPath); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(localPath), "dl-*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errors.Wrap(err, "could not write file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errors.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.Wrap(err, "could not close file")
	}
	return tmpPath, nil
}
