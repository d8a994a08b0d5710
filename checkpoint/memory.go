package checkpoint

import (
	"context"
	"sync"
)

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store implementation.
// It is safe for concurrent use. Checkpoints are lost on process exit.
type MemoryStore struct {
	mu    sync.Mutex
	tasks map[string]Checkpoint
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]Checkpoint),
	}
}

// Load returns the checkpoint for the given task, if one was saved.
func (m *MemoryStore) Load(_ context.Context, task string) (Checkpoint, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp, ok := m.tasks[task]
	return cp, ok, nil
}

// Save stores the checkpoint for the given task.
func (m *MemoryStore) Save(_ context.Context, task string, cp Checkpoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks[task] = cp
	return nil
}

// Clear removes the checkpoint for the given task.
func (m *MemoryStore) Clear(_ context.Context, task string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tasks, task)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
