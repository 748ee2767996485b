package webclient

import (
	"context"
	"errors"
)

// ErrNetwork wraps every transport-level failure: DNS, refused connections,
// TLS, timeouts, malformed responses and body read errors.
var ErrNetwork = errors.New("network error")

// ErrInvalidRequest is returned for requests that cannot be sent at all.
var ErrInvalidRequest = errors.New("invalid request")

// WebClient performs a single HTTP exchange and returns the fully read
// response.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	Close() error
}
