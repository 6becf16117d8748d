package http

import (
	"net/http"
	"net/url"
)

// Request represents one API request descriptor. Accessors build these and
// hand them to the executor; they carry no retry, cache or auth logic.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}
}

// Response represents a completed API response with its body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Key returns the canonical request key: method plus resolved path plus
// deterministically ordered query parameters. It is the sole join key
// between the response cache and the in-flight deduplicator.
func (r *Request) Key() string {
	key := r.Method + " " + r.Path
	if len(r.Query) > 0 {
		// Encode sorts parameters by key.
		key += "?" + r.Query.Encode()
	}

	return key
}
