package store

import (
	"context"
	"testing"

	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

func TestMemoryStore_UpsertAndSearch(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	err := s.Upsert(ctx, []port.VectorItem{
		testItem("a", 1, 0),
		testItem("b", 0, 1),
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	results, err := s.Search(ctx, []float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 || results[0].Unit.ID != "a" {
		t.Errorf("expected a, got %v", results)
	}
}

func TestMemoryStore_TieBreakInsertionOrder(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	err := s.Upsert(ctx, []port.VectorItem{
		testItem("primero", 1, 0),
		testItem("segundo", 1, 0),
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	results, err := s.Search(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if results[0].Unit.ID != "primero" || results[1].Unit.ID != "segundo" {
		t.Errorf("expected insertion order, got %s, %s", results[0].Unit.ID, results[1].Unit.ID)
	}
}

func TestMemoryStore_ReupsertKeepsPosition(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	err := s.Upsert(ctx, []port.VectorItem{
		testItem("primero", 1, 0),
		testItem("segundo", 1, 0),
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	// Updating the first unit must not move it behind the second
	if err := s.Upsert(ctx, []port.VectorItem{testItem("primero", 1, 0)}); err != nil {
		t.Fatalf("re-upsert failed: %v", err)
	}

	count, _ := s.Count(ctx)
	if count != 2 {
		t.Errorf("expected 2 units, got %d", count)
	}

	results, err := s.Search(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if results[0].Unit.ID != "primero" {
		t.Errorf("expected primero to keep first position, got %s", results[0].Unit.ID)
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	if err := s.Upsert(ctx, []port.VectorItem{testItem("a", 1, 0)}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	count, _ := s.Count(ctx)
	if count != 0 {
		t.Errorf("expected 0 units after clear, got %d", count)
	}
}
