// internal/store/memory.go
//
// In-memory implementation of the Store interface for active runs.
// Runs are live objects (bag, seeded generator), so they stay in process
// memory while being played; finished runs are summarised to SQL by the
// HTTP layer.
//
// Characteristics:
//   - Stores *run.Run objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/glyphword/internal/run"
)

// ErrNotFound is returned by Get for unknown run IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for active runs.
type Store interface {
	// Save persists or updates a run.
	Save(ctx context.Context, r *run.Run) error

	// Get retrieves a run by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*run.Run, error)

	// Delete forgets a run. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex        // guards runs map
	runs map[string]*run.Run // keyed by Run.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{runs: make(map[string]*run.Run)}
}

func (m *memory) Save(ctx context.Context, r *run.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[r.ID] = r
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*run.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.runs[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.runs, id)
	return nil
}
