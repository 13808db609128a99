package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

var _ port.VectorStore = (*MemoryStore)(nil)

// MemoryStore is an in-process VectorStore for tests and ephemeral runs.
// Same search semantics as the Bolt store, no persistence.
type MemoryStore struct {
	mu        sync.RWMutex
	dimension int
	entries   map[string]unitEntry
	ordered   []string
	nextSeq   uint64
}

func NewMemoryStore(dimension int) *MemoryStore {
	return &MemoryStore{
		dimension: dimension,
		entries:   make(map[string]unitEntry),
	}
}

func (s *MemoryStore) Upsert(_ context.Context, items []port.VectorItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if len(item.Vector) != s.dimension {
			return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(item.Vector))
		}

		entry, exists := s.entries[item.Unit.ID]
		seq := entry.seq
		if !exists {
			s.nextSeq++
			seq = s.nextSeq
			s.ordered = append(s.ordered, item.Unit.ID)
		}
		s.entries[item.Unit.ID] = unitEntry{
			unit:   item.Unit,
			vector: item.Vector,
			seq:    seq,
		}
	}
	return nil
}

func (s *MemoryStore) Search(_ context.Context, query []float32, k int) ([]domain.ScoredUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(query) != s.dimension {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", s.dimension, len(query))
	}

	return searchEntries(s.entries, s.ordered, query, k), nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]unitEntry)
	s.ordered = s.ordered[:0]
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
