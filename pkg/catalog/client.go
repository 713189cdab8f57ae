package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/glorpus-work/storysync/pkg/errors"
	"github.com/glorpus-work/storysync/pkg/model"
	"github.com/glorpus-work/storysync/pkg/netx"
	"github.com/glorpus-work/storysync/pkg/version"
)

// DefaultSubject is the catalog subject queried for story collections.
const DefaultSubject = "Open Bible Stories"

// Options configure the catalog client.
type Options struct {
	BaseURL string // root of the catalog API
	Subject string // catalog subject filter
	Stage   string // release stage, defaults to "prod"
	Branch  string // branch used to resolve archive locations, defaults to "master"
}

// HTTPClient is the Client implementation backed by a netx.Adapter, so
// offline fast-fail and retry behavior apply uniformly to all catalog calls.
type HTTPClient struct {
	baseURL string
	subject string
	stage   string
	branch  string
	net     netx.Adapter
}

// NewHTTPClient creates a catalog client.
func NewHTTPClient(net netx.Adapter, opts Options) *HTTPClient {
	if opts.Subject == "" {
		opts.Subject = DefaultSubject
	}
	if opts.Stage == "" {
		opts.Stage = "prod"
	}
	if opts.Branch == "" {
		opts.Branch = "master"
	}
	return &HTTPClient{
		baseURL: opts.BaseURL,
		subject: opts.Subject,
		stage:   opts.Stage,
		branch:  opts.Branch,
		net:     net,
	}
}

// Search returns all repositories matching the query.
func (c *HTTPClient) Search(ctx context.Context, query Query) ([]*model.Repository, error) {
	searchURL, err := c.buildSearchURL(query)
	if err != nil {
		return nil, err
	}

	body, err := c.net.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrParse, err)
	}

	repos := make([]*model.Repository, 0, len(resp.Data))
	for _, entry := range resp.Data {
		repos = append(repos, c.mapEntry(entry))
	}
	return repos, nil
}

// Lookup finds the catalog entry matching the key triple exactly.
// A miss returns (nil, nil).
func (c *HTTPClient) Lookup(ctx context.Context, key model.RepositoryKey) (*model.Repository, error) {
	repos, err := c.Search(ctx, Query{Owner: key.Owner, Language: key.Language})
	if err != nil {
		return nil, err
	}
	for _, repo := range repos {
		if repo.Key() == key {
			return repo, nil
		}
	}
	return nil, nil
}

// ResolveArchiveURL queries the entry endpoint for the zipball location.
func (c *HTTPClient) ResolveArchiveURL(ctx context.Context, key model.RepositoryKey) (string, error) {
	entryURL, err := url.JoinPath(c.baseURL, "catalog", "entry", key.Owner, key.ID, c.branch)
	if err != nil {
		return "", errors.Wrap(err, "failed to build entry URL")
	}

	body, err := c.net.Fetch(ctx, entryURL)
	if err != nil {
		return "", err
	}

	var resp entryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrParse, err)
	}
	if resp.ZipballURL == "" {
		return "", fmt.Errorf("%w: entry for %s has no zipball_url", errors.ErrParse, key)
	}
	return resp.ZipballURL, nil
}

func (c *HTTPClient) buildSearchURL(query Query) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.Wrap(err, "invalid catalog base URL")
	}
	base.Path, err = url.JoinPath(base.Path, "catalog", "search")
	if err != nil {
		return "", errors.Wrap(err, "failed to build search URL")
	}

	params := url.Values{}
	params.Set("subject", c.subject)
	params.Set("stage", c.stage)
	if query.Owner != "" {
		params.Set("owner", query.Owner)
	}
	if query.Language != "" {
		params.Set("lang", query.Language)
	}
	base.RawQuery = params.Encode()
	return base.String(), nil
}

// mapEntry converts a raw search entry into a Repository record.
func (c *HTTPClient) mapEntry(entry searchEntry) *model.Repository {
	repo := &model.Repository{
		Owner:       entry.Owner,
		Language:    entry.Language,
		ID:          entry.Name,
		DisplayName: entry.Title,
		Description: entry.Repo.Description,
		Version:     version.Normalize(entry.Release.TagName),
		Thumbnail:   c.thumbnailURL(entry),
	}
	if entry.Release.PublishedAt != "" {
		if ts, err := time.Parse(time.RFC3339, entry.Release.PublishedAt); err == nil {
			repo.LastUpdated = ts
		}
	}
	if repo.DisplayName == "" {
		repo.DisplayName = entry.Name
	}
	return repo
}

// thumbnailURL points at the repository's raw thumbnail image on the catalog
// host. Fetching it is best-effort; a missing image is tolerated downstream.
func (c *HTTPClient) thumbnailURL(entry searchEntry) string {
	u, err := url.JoinPath(c.baseURL, entry.Owner, entry.Name, "raw", "branch", c.branch, "thumbnail.png")
	if err != nil {
		return ""
	}
	return u
}
