package port

import (
	"context"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
)

// VectorStore stores and searches embedded text units.
type VectorStore interface {
	// Upsert adds or updates units and their vectors in the store.
	// Insertion order is preserved and used for deterministic tie-breaks.
	Upsert(ctx context.Context, items []VectorItem) error

	// Search finds the k units nearest to the query vector, ranked by
	// descending similarity.
	Search(ctx context.Context, query []float32, k int) ([]domain.ScoredUnit, error)

	// Count returns the number of units in the store.
	Count(ctx context.Context) (int, error)

	// Clear removes all units from the store.
	Clear(ctx context.Context) error

	// Close releases underlying resources.
	Close() error
}

// VectorItem represents a unit to be stored with its embedding.
type VectorItem struct {
	Unit   domain.TextUnit
	Vector []float32
}
