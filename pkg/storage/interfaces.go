//go:generate mockgen -destination=./mocks/storage.go . Adapter

// Package storage provides the persisted key/value store backing the
// download index and per-repository metadata.
package storage

// Adapter is a platform-specific key/value store over string keys and values.
// Writes to a given key are atomic and last-write-wins; no ordering guarantee
// exists across distinct keys.
type Adapter interface {
	// Get returns the value for key. The second return value reports whether
	// the key was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}
