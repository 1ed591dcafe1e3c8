package store

import (
	"sync"

	"recall/internal/domain"
)

// Store is an append-only ordered collection of chunks. It owns every
// chunk it holds: All returns a copy, and nothing is ever mutated or
// individually removed, so a Clear is the only way data leaves it.
type Store struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
}

func New() *Store { return &Store{} }

// Append adds chunks at the tail, preserving insertion order.
func (s *Store) Append(chunks ...domain.Chunk) {
	if len(chunks) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
}

// All returns a snapshot of every chunk in insertion order. The snapshot
// is independent of later appends and clears.
func (s *Store) All() []domain.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// Count returns the number of stored chunks.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Empty reports whether the store holds no chunks.
func (s *Store) Empty() bool { return s.Count() == 0 }

// Clear drops every chunk. Numbering restarts at zero because the next
// chunk index is always the current count.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
}
