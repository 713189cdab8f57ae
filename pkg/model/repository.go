// Package model provides data structures for representing story collection
// repositories and their identity keys.
package model

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/glorpus-work/storysync/pkg/errors"
)

// KeySegments is the number of segments in a repository key.
const KeySegments = 3

// RepositoryKey identifies a repository by the (owner, language, id) triple.
type RepositoryKey struct {
	Owner    string `json:"owner"`
	Language string `json:"language"`
	ID       string `json:"id"`
}

// ParseKey parses a key of the form "owner/language/id".
func ParseKey(s string) (RepositoryKey, error) {
	parts := strings.Split(s, "/")
	if len(parts) != KeySegments {
		return RepositoryKey{}, fmt.Errorf("%w: %q", errors.ErrInvalidKey, s)
	}
	for _, p := range parts {
		if p == "" {
			return RepositoryKey{}, fmt.Errorf("%w: %q", errors.ErrInvalidKey, s)
		}
	}
	return RepositoryKey{Owner: parts[0], Language: parts[1], ID: parts[2]}, nil
}

// String returns the canonical "owner/language/id" form.
func (k RepositoryKey) String() string {
	return k.Owner + "/" + k.Language + "/" + k.ID
}

// IsZero reports whether the key is empty.
func (k RepositoryKey) IsZero() bool {
	return k.Owner == "" && k.Language == "" && k.ID == ""
}

// ContentPath returns the content subtree for this key relative to the content root.
func (k RepositoryKey) ContentPath(root string) string {
	return path.Join(root, k.Owner, k.Language, k.ID)
}

// Repository represents a versioned, downloadable story collection.
// IsDownloaded and LocalThumbnail are derived from local state and are
// recomputed by the manager rather than trusted from persisted metadata.
type Repository struct {
	Owner          string    `json:"owner"`
	Language       string    `json:"language"`
	ID             string    `json:"id"`
	DisplayName    string    `json:"display_name"`
	Description    string    `json:"description,omitempty"`
	Version        string    `json:"version"`
	LastUpdated    time.Time `json:"last_updated"`
	Thumbnail      string    `json:"thumbnail,omitempty"`
	LocalThumbnail string    `json:"local_thumbnail,omitempty"`
	IsDownloaded   bool      `json:"is_downloaded"`
}

// Key returns the identity triple of the repository.
func (r *Repository) Key() RepositoryKey {
	return RepositoryKey{Owner: r.Owner, Language: r.Language, ID: r.ID}
}
