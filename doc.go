// Package parlfetch provides the shared HTTP plumbing used by the Open
// Parliament ingestion scripts: a rate-limited, retrying requester for the
// public APIs and bulk feeds the scripts pull from, plus a cursor-pagination
// helper for REST listing endpoints.
//
// # Key Concepts
//
//   - [Requester] issues HTTP requests with a minimum spacing between
//     consecutive calls and automatic exponential-backoff retry on
//     transient statuses (429 and most 5xx).
//   - [RequestOptions] carries per-call headers, body, and a timeout
//     override.
//   - [Pager] walks cursor-paginated listing endpoints that return an
//     "objects" array and a "next_url" cursor per page.
//   - [github.com/openparl/parlfetch/checkpoint] persists harvest cursors
//     so a scheduled script can resume where the previous run stopped.
//   - [github.com/openparl/parlfetch/names] reconciles parliamentarian
//     names across feeds that spell them differently.
//
// # Quick Start
//
//	r := parlfetch.New(
//		parlfetch.WithMinInterval(500*time.Millisecond),
//		parlfetch.WithMaxAttempts(5),
//		parlfetch.WithUserAgent("openparl-harvester/1.0 (ops@example.ca)"),
//	)
//
//	resp, err := r.Get(ctx, "https://api.openparliament.ca/bills/", nil)
//
// Upstream rate limits are per host, so construct one Requester per
// upstream host; a single instance serializes all callers through the same
// throttle, which is the mechanism by which the spacing guarantee holds.
//
// See the [Requester] documentation for the full API.
package parlfetch
