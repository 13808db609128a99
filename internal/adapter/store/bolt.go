package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.etcd.io/bbolt"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

var bucketUnits = []byte("units")

var _ port.VectorStore = (*BoltVectorStore)(nil)

// BoltVectorStore implements VectorStore using BoltDB for persistence.
// Uses brute-force search for simplicity; farm datasets are small.
type BoltVectorStore struct {
	db        *bbolt.DB
	dimension int
	mu        sync.RWMutex
	// In-memory cache for fast search; ordered tracks insertion order
	// for deterministic tie-breaks.
	entries map[string]unitEntry
	ordered []string
}

type unitEntry struct {
	unit   domain.TextUnit
	vector []float32
	seq    uint64
}

type storedUnit struct {
	Unit   domain.TextUnit `json:"u"`
	Vector []float32       `json:"v"`
	Seq    uint64          `json:"s"`
}

// NewBoltVectorStore opens (or creates) a BoltDB-backed vector store at path.
func NewBoltVectorStore(path string, dimension int) (*BoltVectorStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUnits)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create units bucket: %w", err)
	}

	store := &BoltVectorStore{
		db:        db,
		dimension: dimension,
		entries:   make(map[string]unitEntry),
	}

	if err := store.loadUnits(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load units: %w", err)
	}

	return store, nil
}

// loadUnits loads all stored units into memory, ordered by sequence.
func (s *BoltVectorStore) loadUnits() error {
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUnits)
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			var stored storedUnit
			if err := json.Unmarshal(v, &stored); err != nil {
				return nil // Skip corrupted entries
			}
			s.entries[string(k)] = unitEntry{
				unit:   stored.Unit,
				vector: stored.Vector,
				seq:    stored.Seq,
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	s.ordered = make([]string, 0, len(s.entries))
	for id := range s.entries {
		s.ordered = append(s.ordered, id)
	}
	sort.Slice(s.ordered, func(i, j int) bool {
		return s.entries[s.ordered[i]].seq < s.entries[s.ordered[j]].seq
	})

	return nil
}

// Upsert adds or updates units in the store. New units are appended to the
// insertion order; re-upserted units keep their original position.
func (s *BoltVectorStore) Upsert(_ context.Context, items []port.VectorItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUnits)
		if b == nil {
			return fmt.Errorf("units bucket not found")
		}

		for _, item := range items {
			if len(item.Vector) != s.dimension {
				return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(item.Vector))
			}

			entry, exists := s.entries[item.Unit.ID]
			seq := entry.seq
			if !exists {
				n, err := b.NextSequence()
				if err != nil {
					return err
				}
				seq = n
			}

			data, err := json.Marshal(storedUnit{
				Unit:   item.Unit,
				Vector: item.Vector,
				Seq:    seq,
			})
			if err != nil {
				return err
			}

			if err := b.Put([]byte(item.Unit.ID), data); err != nil {
				return err
			}

			if !exists {
				s.ordered = append(s.ordered, item.Unit.ID)
			}
			s.entries[item.Unit.ID] = unitEntry{
				unit:   item.Unit,
				vector: item.Vector,
				seq:    seq,
			}
		}

		return nil
	})
}

// Search finds the k nearest units to the query using cosine similarity.
func (s *BoltVectorStore) Search(_ context.Context, query []float32, k int) ([]domain.ScoredUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(query) != s.dimension {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", s.dimension, len(query))
	}

	return searchEntries(s.entries, s.ordered, query, k), nil
}

// Count returns the number of units in the store.
func (s *BoltVectorStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Clear removes all units and resets the insertion order.
func (s *BoltVectorStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketUnits); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketUnits)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear units: %w", err)
	}

	s.entries = make(map[string]unitEntry)
	s.ordered = s.ordered[:0]
	return nil
}

// Close closes the underlying database.
func (s *BoltVectorStore) Close() error {
	return s.db.Close()
}

// searchEntries scores every entry against the query and returns the top k.
// The stable sort keeps insertion order for equal scores.
func searchEntries(entries map[string]unitEntry, ordered []string, query []float32, k int) []domain.ScoredUnit {
	if k <= 0 || len(entries) == 0 {
		return nil
	}

	scores := make([]domain.ScoredUnit, 0, len(entries))
	for _, id := range ordered {
		entry := entries[id]
		scores = append(scores, domain.ScoredUnit{
			Unit:  entry.unit,
			Score: cosineSimilarity(query, entry.vector),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if k > len(scores) {
		k = len(scores)
	}
	return scores[:k]
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
