package llm

import (
	"net/http"
	"time"
)

// newHTTPClient returns a client whose timeout only covers waiting for the
// response headers. Reading a streamed body is bounded by the request
// context alone, so long generations are not cut off.
func newHTTPClient(headerTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: transport}
}
