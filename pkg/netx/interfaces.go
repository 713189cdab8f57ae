//go:generate mockgen -destination=./mocks/netx.go . Adapter

// Package netx provides the network adapter: an online-state probe and an
// HTTP fetch wrapper with retry support.
package netx

import "context"

// Adapter abstracts connectivity checks and raw HTTP fetches.
type Adapter interface {
	// IsOnline reports whether the device currently has connectivity.
	IsOnline(ctx context.Context) bool

	// Fetch performs a GET against url and returns the response body.
	// It fails fast with errors.ErrOffline when the device is offline and
	// with an *errors.HTTPError when the response status is not a success.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Prober reports the current online state. It is separated from the client so
// tests can force offline behavior without touching the network.
type Prober interface {
	Online(ctx context.Context) bool
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context) bool

// Online calls the underlying function.
func (f ProberFunc) Online(ctx context.Context) bool { return f(ctx) }
