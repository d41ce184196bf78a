// Package memory is an in-memory RowSource used by tests in place of
// disk or network backends.
package memory

import (
	"context"
	"sync"

	"github.com/ProyectosAstillero/Operaciones/internal/core"
	"github.com/ProyectosAstillero/Operaciones/internal/source"
)

type Source struct {
	mu     sync.Mutex
	tables map[string]source.Table
	reads  map[string]int
}

var _ source.RowSource = (*Source)(nil)

func New() *Source {
	return &Source{
		tables: make(map[string]source.Table),
		reads:  make(map[string]int),
	}
}

// Put registers a fixture table for ref.
func (s *Source) Put(ref source.Ref, t source.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[ref.Key()] = t
}

// Read returns the fixture for ref, or core.MissingFileError when none
// was registered.
func (s *Source) Read(_ context.Context, ref source.Ref) (source.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[ref.Key()]++
	t, ok := s.tables[ref.Key()]
	if !ok {
		return source.Table{}, &core.MissingFileError{Path: ref.Path}
	}
	return t, nil
}

// Reads reports how many times ref was read, for memoization tests.
func (s *Source) Reads(ref source.Ref) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[ref.Key()]
}
