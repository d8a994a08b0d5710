package parlfetch

import "net/http"

// Transport wraps an http.RoundTripper so every request sent through it
// goes through the requester's throttle and retry policy. Pass nil to wrap
// http.DefaultTransport. This lets code built around an *http.Client pick
// up rate limiting without changing call sites:
//
//	client := &http.Client{Transport: r.Transport(nil)}
//
// Unlike [Requester.Do], a RoundTripper must not return both a response
// and an error, so when the attempt budget runs out the final response is
// returned without error and the caller inspects its status.
func (r *Requester) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &transport{req: r, base: base}
}

type transport struct {
	req  *Requester
	base http.RoundTripper
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := t.req
	r.throttleWait()

	for attempt := 1; ; attempt++ {
		r.markDispatch()
		resp, err := t.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if !retryable(resp.StatusCode) || attempt >= r.maxAttempts {
			return resp, nil
		}

		next, ok := rewind(req)
		if !ok {
			return resp, nil
		}
		req = next

		drain(resp.Body)
		delay := r.backoff << (attempt - 1)
		if r.onRetry != nil {
			r.onRetry(attempt, resp.StatusCode, delay)
		}
		r.sleep(delay)
	}
}

// rewind clones the request with a replayed body for the next attempt.
// Requests whose body cannot be reproduced get a single attempt.
func rewind(req *http.Request) (*http.Request, bool) {
	if req.Body == nil {
		return req, true
	}
	if req.GetBody == nil {
		return nil, false
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}

	clone := req.Clone(req.Context())
	clone.Body = body
	return clone, true
}
