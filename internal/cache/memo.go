// Package cache provides the per-key read-through memoization used for
// spreadsheet load results: once a source loads successfully its result
// is kept for the process lifetime, with no invalidation on file change
// within a run.
package cache

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store memoizes values by string key. Concurrent loads of the same key
// are collapsed with singleflight. Only successful loads are stored, so
// a failed load is retried on the next access.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
	group   singleflight.Group
}

// NewStore creates an empty memo store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{entries: make(map[string]T)}
}

// GetOrLoad returns the memoized value for key, invoking load at most
// once per key across concurrent callers when the value is absent.
func (s *Store[T]) GetOrLoad(key string, load func() (T, error)) (T, error) {
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return v, nil
	}

	res, err, _ := s.group.Do(key, func() (any, error) {
		// Another caller may have stored the value while we waited.
		s.mu.RLock()
		v, ok := s.entries[key]
		s.mu.RUnlock()
		if ok {
			return v, nil
		}

		v, err := load()
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.entries[key] = v
		s.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// Get returns the memoized value without loading.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Size returns the number of memoized entries.
func (s *Store[T]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
