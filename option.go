package parlfetch

import (
	"net/http"
	"time"
)

// Option configures a Requester.
type Option func(*Requester)

// WithBackoff sets the base backoff delay. The wait before retry n
// (1-indexed) is d * 2^(n-1). No jitter is applied; the requesters here
// serve single sequential callers, where synchronized retries are not a
// concern. Defaults to one second.
func WithBackoff(d time.Duration) Option {
	return func(r *Requester) {
		r.backoff = d
	}
}

// WithMaxAttempts caps the total number of attempts per call, including
// the first. Values below one are treated as one. Defaults to five.
func WithMaxAttempts(n int) Option {
	return func(r *Requester) {
		if n < 1 {
			n = 1
		}
		r.maxAttempts = n
	}
}

// WithMinInterval enforces a minimum spacing between consecutive calls on
// the same Requester. Zero (the default) disables throttling.
func WithMinInterval(d time.Duration) Option {
	return func(r *Requester) {
		r.minInterval = d
	}
}

// WithTimeout sets the default per-request timeout, overridable per call
// via RequestOptions.Timeout. Defaults to 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(r *Requester) {
		r.timeout = d
	}
}

// WithTransport sets the underlying HTTP transport. Defaults to
// http.DefaultTransport.
func WithTransport(rt http.RoundTripper) Option {
	return func(r *Requester) {
		r.transport = rt
	}
}

// WithUserAgent sets a User-Agent applied to requests that don't carry
// one. Most parliamentary APIs ask callers to identify themselves.
func WithUserAgent(ua string) Option {
	return func(r *Requester) {
		r.userAgent = ua
	}
}

// WithOnRetry sets a callback invoked before each backoff sleep with the
// attempt that just failed, the status that triggered the retry, and the
// delay about to be applied. The requester itself never logs; this is the
// observability hook.
func WithOnRetry(fn func(attempt, status int, delay time.Duration)) Option {
	return func(r *Requester) {
		r.onRetry = fn
	}
}
