//go:generate mockgen -destination=./mocks/catalog.go . Client

// Package catalog queries the remote catalog service for available story
// collection repositories and their release metadata.
package catalog

import (
	"context"

	"github.com/glorpus-work/storysync/pkg/model"
)

// Query filters a catalog search. Empty fields are not constrained.
type Query struct {
	Owner    string
	Language string
}

// Client defines catalog lookups. Search and Lookup treat an empty result set
// as a valid miss, distinct from network or HTTP failures.
type Client interface {
	// Search returns all repositories matching the query. No matches yields
	// an empty slice, not an error.
	Search(ctx context.Context, query Query) ([]*model.Repository, error)

	// Lookup returns the repository for key, or nil when the catalog has no
	// such entry.
	Lookup(ctx context.Context, key model.RepositoryKey) (*model.Repository, error)

	// ResolveArchiveURL returns the downloadable zipball location for key.
	ResolveArchiveURL(ctx context.Context, key model.RepositoryKey) (string, error)
}
