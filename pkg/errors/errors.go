// Package errors defines the error taxonomy shared across the storysync
// engine. Callers use errors.Is against the sentinels to distinguish benign
// outcomes (offline, lookup miss) from real failures.
package errors

import "fmt"

// Common error types.
var (
	// ErrOffline is returned when a network operation is attempted without connectivity.
	ErrOffline = fmt.Errorf("device is offline")

	// ErrNotFound is returned when a repository is absent from the catalog or the local index.
	ErrNotFound = fmt.Errorf("repository not found")

	// ErrParse is returned when a catalog payload cannot be decoded.
	ErrParse = fmt.Errorf("failed to parse catalog payload")

	// ErrHTTP is the match target for HTTPError values.
	ErrHTTP = fmt.Errorf("http request failed")

	// ErrDownloadFailed is returned when an archive download fails.
	ErrDownloadFailed = fmt.Errorf("download failed")

	// ErrInvalidKey is returned when a repository key is not of the form owner/language/id.
	ErrInvalidKey = fmt.Errorf("invalid repository key")

	// ErrInvalidPath is returned when a file or directory path is invalid.
	ErrInvalidPath = fmt.Errorf("invalid path")

	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrUnknownConfigKey  = fmt.Errorf("unknown configuration key")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")

	// Cache errors.
	ErrCacheClean     = fmt.Errorf("failed to clean cache")
	ErrCacheDirectory = fmt.Errorf("cache directory cannot be empty")
)

// HTTPError carries the status code of a non-success HTTP response.
// It matches ErrHTTP under errors.Is.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// Is reports whether target is the ErrHTTP sentinel.
func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}

// NewHTTPError creates an HTTPError for the given status and URL.
func NewHTTPError(statusCode int, url string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, URL: url}
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
