// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used by tests and as the fallback when the configured backend cannot open.
//
// Characteristics:
//   - Keeps results in insertion order in a slice.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process exits.

package store

import (
	"context"
	"iter"
	"sync"

	"github.com/robalobadob/dogmatch/internal/game"
)

// memory is an in-memory slice-based Store implementation.
type memory struct {
	mu      sync.RWMutex  // guards results
	results []game.Result // oldest first
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

// Append adds r to the end of the list.
func (m *memory) Append(ctx context.Context, r game.Result) error {
	if err := ctx.Err(); err != nil {
		return errWrite(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

// All yields a snapshot taken when iteration starts.
func (m *memory) All(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		m.mu.RLock()
		snap := append([]game.Result(nil), m.results...)
		m.mu.RUnlock()

		for _, r := range snap {
			if !yield(FormatLine(r), nil) {
				return
			}
		}
	}
}
