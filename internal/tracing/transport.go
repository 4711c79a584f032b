package tracing

import "net/http"

// Transport is an http.RoundTripper that injects W3C trace context headers
// into every outbound request, tying backend round trips to the span of the
// bridge request that triggered them.
type Transport struct {
	// Base is the underlying round tripper. http.DefaultTransport when nil.
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	// RoundTrippers must not mutate the caller's request.
	clone := req.Clone(req.Context())
	InjectHeaders(clone.Context(), clone.Header)
	return base.RoundTrip(clone)
}
