package checkpoint

import (
	"context"
	"time"
)

// Checkpoint records where an ingestion run left off: the cursor is an
// opaque resume token, typically the URL of the last page fetched.
type Checkpoint struct {
	Cursor    string
	UpdatedAt time.Time
}

// Store defines the interface for checkpoint backends. Tasks are
// identified by name, e.g. "hansard-debates" or "lobbying-registrations".
type Store interface {
	// Load returns the checkpoint for the given task. The boolean is
	// false when no checkpoint has been saved.
	Load(ctx context.Context, task string) (Checkpoint, bool, error)

	// Save stores the checkpoint for the given task, replacing any
	// previous one.
	Save(ctx context.Context, task string, cp Checkpoint) error

	// Clear removes the checkpoint for the given task, so the next run
	// starts from the beginning.
	Clear(ctx context.Context, task string) error

	// Close releases any resources held by the store.
	Close() error
}
