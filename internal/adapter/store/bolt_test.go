package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

func testItem(id string, vector ...float32) port.VectorItem {
	return port.VectorItem{
		Unit: domain.TextUnit{
			ID:      id,
			Content: "contenido " + id,
			Metadata: map[string]any{
				domain.MetaSensorID: id,
			},
		},
		Vector: vector,
	}
}

func newTestBoltStore(t *testing.T, dimension int) (*BoltVectorStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	s, err := NewBoltVectorStore(path, dimension)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s, path
}

func TestBoltVectorStore_UpsertAndSearch(t *testing.T) {
	s, _ := newTestBoltStore(t, 3)
	defer s.Close()

	ctx := context.Background()
	err := s.Upsert(ctx, []port.VectorItem{
		testItem("S1", 1, 0, 0),
		testItem("S2", 0.9, 0.1, 0),
		testItem("S3", 0, 1, 0),
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 units, got %d", count)
	}

	results, err := s.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Unit.ID != "S1" {
		t.Errorf("expected S1 first, got %s", results[0].Unit.ID)
	}
	if results[1].Unit.ID != "S2" {
		t.Errorf("expected S2 second, got %s", results[1].Unit.ID)
	}
	if results[0].Score < results[1].Score {
		t.Error("expected descending scores")
	}
	if math.Abs(results[0].Score-1) > 1e-6 {
		t.Errorf("expected score 1 for identical vector, got %f", results[0].Score)
	}
	if results[0].Unit.Content != "contenido S1" {
		t.Errorf("expected unit content carried through, got %q", results[0].Unit.Content)
	}
}

func TestBoltVectorStore_TieBreakInsertionOrder(t *testing.T) {
	s, _ := newTestBoltStore(t, 2)
	defer s.Close()

	ctx := context.Background()
	// Identical vectors: ranking must fall back to insertion order
	err := s.Upsert(ctx, []port.VectorItem{
		testItem("primero", 1, 0),
		testItem("segundo", 1, 0),
		testItem("tercero", 1, 0),
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	results, err := s.Search(ctx, []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	want := []string{"primero", "segundo", "tercero"}
	for i, id := range want {
		if results[i].Unit.ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, results[i].Unit.ID)
		}
	}
}

func TestBoltVectorStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	ctx := context.Background()

	s, err := NewBoltVectorStore(path, 2)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	err = s.Upsert(ctx, []port.VectorItem{
		testItem("a", 1, 0),
		testItem("b", 1, 0),
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := NewBoltVectorStore(path, 2)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 units after reopen, got %d", count)
	}

	// Insertion order survives the reopen
	results, err := reopened.Search(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if results[0].Unit.ID != "a" || results[1].Unit.ID != "b" {
		t.Errorf("expected order a, b after reopen, got %s, %s", results[0].Unit.ID, results[1].Unit.ID)
	}
}

func TestBoltVectorStore_Clear(t *testing.T) {
	s, _ := newTestBoltStore(t, 2)
	defer s.Close()

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

	results, err := s.Search(ctx, []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results after clear, got %d", len(results))
	}

	// The store stays usable after a clear
	if err := s.Upsert(ctx, []port.VectorItem{testItem("b", 0, 1)}); err != nil {
		t.Fatalf("upsert after clear failed: %v", err)
	}
	count, _ = s.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 unit after re-upsert, got %d", count)
	}
}

func TestBoltVectorStore_DimensionMismatch(t *testing.T) {
	s, _ := newTestBoltStore(t, 3)
	defer s.Close()

	ctx := context.Background()
	if err := s.Upsert(ctx, []port.VectorItem{testItem("a", 1, 0)}); err == nil {
		t.Error("expected error for wrong upsert dimension")
	}
	if _, err := s.Search(ctx, []float32{1, 0}, 3); err == nil {
		t.Error("expected error for wrong query dimension")
	}
}

func TestBoltVectorStore_KLargerThanSize(t *testing.T) {
	s, _ := newTestBoltStore(t, 2)
	defer s.Close()

	ctx := context.Background()
	err := s.Upsert(ctx, []port.VectorItem{
		testItem("a", 1, 0),
		testItem("b", 0, 1),
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	results, err := s.Search(ctx, []float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"length mismatch", []float32{1}, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
