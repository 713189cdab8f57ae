package netx

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/glorpus-work/storysync/pkg/errors"
)

const (
	defaultUserAgent    = "storysync/1.0"
	defaultProbeTimeout = 3 * time.Second
)

// Options configure the HTTP client.
type Options struct {
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	UserAgent     string
}

// Client is the HTTP-backed Adapter implementation. Fetches are retried with a
// fixed delay on transport errors and server-side (5xx) statuses; client-side
// statuses fail immediately.
type Client struct {
	client        *http.Client
	prober        Prober
	userAgent     string
	retryAttempts int
	retryDelay    time.Duration
}

// NewClient creates a network client with the given probe and options.
func NewClient(prober Prober, opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &Client{
		client:        &http.Client{Timeout: opts.Timeout},
		prober:        prober,
		userAgent:     opts.UserAgent,
		retryAttempts: opts.RetryAttempts,
		retryDelay:    opts.RetryDelay,
	}
}

// NewHTTPProber creates a prober that issues a HEAD request against probeURL
// with a short timeout. Any response, success or not, counts as connectivity.
func NewHTTPProber(probeURL string) Prober {
	client := &http.Client{Timeout: defaultProbeTimeout}
	return ProberFunc(func(ctx context.Context) bool {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, probeURL, http.NoBody)
		if err != nil {
			return false
		}
		resp, err := client.Do(req)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	})
}

// IsOnline reports the probe result.
func (c *Client) IsOnline(ctx context.Context) bool {
	return c.prober.Online(ctx)
}

// Fetch performs a GET against url. It fails fast with ErrOffline when the
// probe reports no connectivity, without attempting the call.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if !c.IsOnline(ctx) {
		return nil, errors.Wrapf(errors.ErrOffline, "cannot fetch %s", url)
	}

	var body []byte
	err := Retry(ctx, c.retryAttempts, c.retryDelay, func() error {
		data, err := c.fetchOnce(ctx, url)
		if err != nil {
			if !isRetryable(err) {
				return Permanent(err)
			}
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.NewHTTPError(resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response from %s", url)
	}
	return data, nil
}

// isRetryable reports whether an error is worth another attempt. Client-side
// HTTP statuses are permanent; transport errors and 5xx are transient.
func isRetryable(err error) bool {
	var httpErr *errors.HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
