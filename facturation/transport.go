package facturation

import (
	"net/http"
)

// rateLimitTransport feeds every API response, including error statuses,
// to the rate-limit tracker before handing it back to the caller.
type rateLimitTransport struct {
	base    http.RoundTripper
	limiter *RateLimiter
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if resp != nil {
		t.limiter.Observe(resp)
	}
	return resp, err
}
