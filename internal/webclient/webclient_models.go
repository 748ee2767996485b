package webclient

import (
	"net/http"
	"sort"
	"strings"
	"time"
)

type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

type Response struct {
	Request    *Request
	StatusCode int
	// Proto is the protocol version as reported by the transport, e.g. "HTTP/1.1".
	Proto     string
	Headers   http.Header
	Body      []byte
	FetchedAt time.Time
	// RequestID correlates log entries for this exchange. It is never sent.
	RequestID string
}

// HeaderPair is a single header line.
type HeaderPair struct {
	Name  string
	Value string
}

// ContentType returns the raw Content-Type header value, if any.
func (r *Response) ContentType() string {
	if r == nil {
		return ""
	}
	return r.Headers.Get("Content-Type")
}

// HeaderPairs flattens the response headers into one pair per value, sorted
// by lowercased name. net/http keeps headers in a map, so the order of
// distinct names on the wire is not recoverable. Only the values of a single
// name stay in arrival order.
func (r *Response) HeaderPairs() []HeaderPair {
	if r == nil || len(r.Headers) == 0 {
		return nil
	}

	names := make([]string, 0, len(r.Headers))
	for name := range r.Headers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	var pairs []HeaderPair
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, v := range r.Headers[name] {
			pairs = append(pairs, HeaderPair{Name: lower, Value: v})
		}
	}
	return pairs
}
