package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/rodrigotabsan/RAGIoT/internal/adapter/store"
	"github.com/rodrigotabsan/RAGIoT/internal/domain"
	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

// stubEmbedder maps known texts to fixed vectors.
type stubEmbedder struct {
	vectors   map[string][]float32
	dimension int
	err       error
}

func (e *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, ok := e.vectors[t]
		if !ok {
			vec = make([]float32, e.dimension)
		}
		out[i] = vec
	}
	return out, nil
}

func (e *stubEmbedder) Dimension() int    { return e.dimension }
func (e *stubEmbedder) ModelName() string { return "stub" }

func TestSemanticRetriever_RanksByDescendingSimilarity(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore(2)

	err := st.Upsert(ctx, []port.VectorItem{
		{Unit: domain.TextUnit{ID: "lejos", Content: "lejos"}, Vector: []float32{0, 1}},
		{Unit: domain.TextUnit{ID: "cerca", Content: "cerca"}, Vector: []float32{1, 0}},
		{Unit: domain.TextUnit{ID: "medio", Content: "medio"}, Vector: []float32{1, 1}},
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	embedder := &stubEmbedder{
		vectors:   map[string][]float32{"pregunta": {1, 0}},
		dimension: 2,
	}

	r := NewSemanticRetriever(embedder, st)
	results, err := r.Retrieve(ctx, "pregunta", 2)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Unit.ID != "cerca" || results[1].Unit.ID != "medio" {
		t.Errorf("expected cerca, medio; got %s, %s", results[0].Unit.ID, results[1].Unit.ID)
	}
	if results[0].Score <= results[1].Score {
		t.Error("expected descending scores")
	}
}

func TestSemanticRetriever_MinOfKAndSize(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore(2)

	err := st.Upsert(ctx, []port.VectorItem{
		{Unit: domain.TextUnit{ID: "solo"}, Vector: []float32{1, 0}},
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	embedder := &stubEmbedder{
		vectors:   map[string][]float32{"pregunta": {1, 0}},
		dimension: 2,
	}

	results, err := NewSemanticRetriever(embedder, st).Retrieve(ctx, "pregunta", 3)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result for index of size 1, got %d", len(results))
	}
}

func TestSemanticRetriever_EmbedError(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("provider down"), dimension: 2}

	_, err := NewSemanticRetriever(embedder, store.NewMemoryStore(2)).Retrieve(context.Background(), "pregunta", 3)
	if err == nil {
		t.Error("expected error when embedding fails")
	}
}
