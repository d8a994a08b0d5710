package parlfetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrAttemptsExhausted is wrapped by *StatusError when every attempt of a
// call ended in a transient status.
var ErrAttemptsExhausted = errors.New("parlfetch: retry attempts exhausted")

// StatusError reports that a request kept failing with a transient status
// (429 or 5xx) until the attempt budget ran out. It carries the final
// response's status and body.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
	Attempts   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("parlfetch: giving up after %d attempts: %s", e.Attempts, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrAttemptsExhausted
}

// RequestOptions carries the per-call knobs for [Requester.Do]. A nil
// *RequestOptions is valid and means defaults everywhere.
type RequestOptions struct {
	// Header entries are added to the outgoing request.
	Header http.Header

	// Body is the request body. It is a byte slice rather than an
	// io.Reader so retries can replay it.
	Body []byte

	// Timeout overrides the requester's default timeout when positive.
	Timeout time.Duration
}

// Requester issues HTTP requests with a guaranteed minimum spacing between
// consecutive calls and automatic exponential-backoff retry on transient
// server and rate-limit statuses.
//
// A Requester may be shared: all callers are serialized through its
// throttle state, which is how the spacing guarantee holds across
// unrelated call sites. It provides no isolation between callers and no
// partitioning by target host; upstream limits are per host, so construct
// one Requester per host.
type Requester struct {
	backoff     time.Duration
	maxAttempts int
	minInterval time.Duration
	timeout     time.Duration
	userAgent   string
	transport   http.RoundTripper
	onRetry     func(attempt, status int, delay time.Duration)

	mu   sync.Mutex
	last time.Time

	// Overridden in tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a Requester with the given options. The defaults are five
// attempts, a one-second base backoff, a 30-second request timeout, and no
// minimum interval.
func New(opts ...Option) *Requester {
	r := &Requester{
		backoff:     time.Second,
		maxAttempts: 5,
		timeout:     30 * time.Second,
		transport:   http.DefaultTransport,
		now:         time.Now,
		sleep:       time.Sleep,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Get issues a GET request through the throttle and retry policy.
func (r *Requester) Get(ctx context.Context, url string, opts *RequestOptions) (*http.Response, error) {
	return r.Do(ctx, http.MethodGet, url, opts)
}

// Post issues a POST request through the throttle and retry policy.
func (r *Requester) Post(ctx context.Context, url string, opts *RequestOptions) (*http.Response, error) {
	return r.Do(ctx, http.MethodPost, url, opts)
}

// Do issues a request, waiting out the minimum interval first and retrying
// on transient statuses (429, 500, 502, 503, 504) with exponential
// backoff. The interval is enforced once per call, not between retries of
// the same call; backoff alone paces retries.
//
// Non-retryable statuses, including 4xx other than 429, are returned as
// ordinary responses with a nil error; interpreting them is the caller's
// job. When the attempt budget runs out on a transient status, Do returns
// the final response together with a *StatusError carrying its status and
// body. Transport-level failures (dial, DNS, timeout) are never retried
// and propagate immediately.
func (r *Requester) Do(ctx context.Context, method, url string, opts *RequestOptions) (*http.Response, error) {
	if method == "" {
		return nil, errors.New("parlfetch: empty request method")
	}
	if opts == nil {
		opts = &RequestOptions{}
	}

	timeout := r.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	client := &http.Client{Transport: r.transport, Timeout: timeout}

	r.throttleWait()

	for attempt := 1; ; attempt++ {
		req, err := r.newRequest(ctx, method, url, opts)
		if err != nil {
			return nil, err
		}

		r.markDispatch()
		resp, err := client.Do(req)
		if err != nil {
			// Connectivity failures are caller-actionable; only
			// HTTP-level transient statuses are retried.
			return nil, fmt.Errorf("parlfetch: %s %s: %w", method, url, err)
		}

		if !retryable(resp.StatusCode) {
			return resp, nil
		}

		if attempt >= r.maxAttempts {
			return failExhausted(resp, attempt)
		}

		drain(resp.Body)
		delay := r.backoff << (attempt - 1)
		if r.onRetry != nil {
			r.onRetry(attempt, resp.StatusCode, delay)
		}
		r.sleep(delay)
	}
}

func (r *Requester) newRequest(ctx context.Context, method, url string, opts *RequestOptions) (*http.Request, error) {
	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("parlfetch: %s %s: %w", method, url, err)
	}

	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if r.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	return req, nil
}

// throttleWait blocks until the minimum interval since the previous
// dispatch has elapsed. A no-op when no interval is configured.
func (r *Requester) throttleWait() {
	if r.minInterval <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.last.IsZero() {
		return
	}
	if wait := r.minInterval - r.now().Sub(r.last); wait > 0 {
		r.sleep(wait)
	}
}

// markDispatch records the dispatch timestamp. Taken immediately before
// the request goes out, so a slow response cannot shrink the gap enforced
// before the next call.
func (r *Requester) markDispatch() {
	r.mu.Lock()
	r.last = r.now()
	r.mu.Unlock()
}

// maxErrorBody caps how much of a failing response is captured in a
// StatusError.
const maxErrorBody = 64 << 10

// failExhausted builds the terminal error for a call whose every attempt
// hit a transient status. The body is captured in the error and left
// readable on the returned response.
func failExhausted(resp *http.Response, attempts int) (*http.Response, error) {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	return resp, &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
		Attempts:   attempts,
	}
}

// retryable reports whether a status is transient: the server asked us to
// slow down (429) or failed in a way likely to clear on its own.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// drain consumes and closes a response body so the underlying connection
// can be reused for the retry.
func drain(body io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(body, 4<<10))
	body.Close()
}
