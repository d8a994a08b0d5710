package parlfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// PageParser extracts the items and the next-page cursor from one page of
// a listing response. An empty next cursor ends the walk.
type PageParser func(body []byte) (items []json.RawMessage, next string, err error)

// Pager walks a cursor-paginated listing endpoint page by page, in the
// style of bufio.Scanner:
//
//	p := parlfetch.NewPager(r, "https://api.openparliament.ca/bills/")
//	for p.Next(ctx) {
//		for _, raw := range p.Objects() {
//			// decode and load
//		}
//	}
//	if err := p.Err(); err != nil {
//		// handle
//	}
//
// The default parser understands the Parliament API envelope: a JSON
// object with an "objects" array and a "pagination" object whose
// "next_url" field points at the following page. Relative next_url values
// are resolved against the page that supplied them.
type Pager struct {
	req     *Requester
	parse   PageParser
	next    string
	cursor  string
	objects []json.RawMessage
	err     error
}

// PagerOption configures a Pager.
type PagerOption func(*Pager)

// WithPageParser overrides the envelope parser for feeds that shape their
// pages differently.
func WithPageParser(fn PageParser) PagerOption {
	return func(p *Pager) {
		p.parse = fn
	}
}

// NewPager creates a Pager that starts at startURL. Resuming an
// interrupted harvest is just starting from a saved cursor.
func NewPager(r *Requester, startURL string, opts ...PagerOption) *Pager {
	p := &Pager{req: r, next: startURL, parse: parseEnvelope}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Next fetches the next page through the requester. It returns false when
// the cursor chain is exhausted or an error occurred; check Err afterwards.
func (p *Pager) Next(ctx context.Context) bool {
	if p.err != nil || p.next == "" {
		return false
	}

	resp, err := p.req.Get(ctx, p.next, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		p.err = err
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.err = fmt.Errorf("parlfetch: page %s: unexpected status %s", p.next, resp.Status)
		return false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.err = fmt.Errorf("parlfetch: page %s: %w", p.next, err)
		return false
	}

	items, next, err := p.parse(body)
	if err != nil {
		p.err = fmt.Errorf("parlfetch: page %s: %w", p.next, err)
		return false
	}

	p.cursor = p.next
	p.objects = items
	p.next = resolveNext(p.cursor, next)
	return true
}

// Objects returns the items of the page fetched by the last call to Next.
func (p *Pager) Objects() []json.RawMessage {
	return p.objects
}

// Cursor returns the URL of the page fetched by the last call to Next.
// Save it to a checkpoint store to make a harvest resumable.
func (p *Pager) Cursor() string {
	return p.cursor
}

// Err returns the first error encountered while paging, if any.
func (p *Pager) Err() error {
	return p.err
}

func parseEnvelope(body []byte) ([]json.RawMessage, string, error) {
	var page struct {
		Objects    []json.RawMessage `json:"objects"`
		Pagination struct {
			NextURL string `json:"next_url"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", err
	}
	return page.Objects, page.Pagination.NextURL, nil
}

// resolveNext resolves a possibly-relative next cursor against the URL of
// the page that supplied it.
func resolveNext(current, next string) string {
	if next == "" {
		return ""
	}
	base, err := url.Parse(current)
	if err != nil {
		return next
	}
	ref, err := url.Parse(next)
	if err != nil {
		return next
	}
	return base.ResolveReference(ref).String()
}
