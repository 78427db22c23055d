package application

import (
	"sync"

	"github.com/ahrav/go-gavel/internal/domain"
)

// ResultStore holds every vertex output produced by one Execute call,
// keyed by OutputRef. It is the two-phase read/write store the scheduler
// drives: during a wave, every worker goroutine holds the store's read lock
// concurrently (reads of prior waves' outputs need no per-entry
// synchronization); between waves the scheduler takes the write lock once to
// publish the wave's outputs before releasing readers for the next wave.
type ResultStore struct {
	mu     sync.RWMutex
	values map[domain.OutputRef]domain.Value
}

// newResultStore creates an empty ResultStore.
func newResultStore() *ResultStore {
	return &ResultStore{values: make(map[domain.OutputRef]domain.Value)}
}

// Get returns the Value produced at ref, if any vertex has produced it yet.
func (s *ResultStore) Get(ref domain.OutputRef) (domain.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[ref]
	return v, ok
}

// getUnlocked reads without acquiring a lock. Callers must already hold the
// store's read lock for the duration of the call; it exists so that every
// worker goroutine within a wave shares the single RLock the scheduler takes
// for that wave, rather than each goroutine re-acquiring it.
func (s *ResultStore) getUnlocked(ref domain.OutputRef) (domain.Value, bool) {
	v, ok := s.values[ref]
	return v, ok
}

// publish writes a wave's outputs under the store's exclusive write lock.
func (s *ResultStore) publish(outputs map[domain.OutputRef]domain.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ref, v := range outputs {
		s.values[ref] = v
	}
}

// Len returns the number of outputs currently held.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Snapshot returns a copy of every output currently held, safe to retain and
// mutate independently of the store.
func (s *ResultStore) Snapshot() map[domain.OutputRef]domain.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[domain.OutputRef]domain.Value, len(s.values))
	for ref, v := range s.values {
		out[ref] = v
	}
	return out
}
