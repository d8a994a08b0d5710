package parlfetch_test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/openparl/parlfetch"
)

func ExampleNew() {
	r := parlfetch.New(
		parlfetch.WithMinInterval(500*time.Millisecond),
		parlfetch.WithMaxAttempts(5),
		parlfetch.WithBackoff(time.Second),
		parlfetch.WithUserAgent("openparl-harvester/1.0 (ops@example.ca)"),
	)

	_ = r // use r.Get / r.Post / r.Do to make requests
	fmt.Println("requester ready")
	// Output: requester ready
}

func ExampleRequester_Transport() {
	r := parlfetch.New(
		parlfetch.WithMinInterval(time.Second),
	)

	// Existing http.Client code picks up throttling and retry without
	// changing call sites.
	client := &http.Client{Transport: r.Transport(nil)}

	_ = client
	fmt.Println("client configured")
	// Output: client configured
}

func ExampleNewPager() {
	r := parlfetch.New(
		parlfetch.WithMinInterval(time.Second),
	)

	p := parlfetch.NewPager(r, "https://api.openparliament.ca/bills/")

	ctx := context.Background()
	for p.Next(ctx) {
		_ = p.Objects() // decode each raw object and load it
	}
	_ = p.Err()
}
