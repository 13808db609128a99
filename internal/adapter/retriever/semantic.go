package retriever

import (
	"context"
	"fmt"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

var _ port.Retriever = (*SemanticRetriever)(nil)

// SemanticRetriever embeds the question with the same embedder used at index
// time and searches the vector store.
type SemanticRetriever struct {
	embedder    port.Embedder
	vectorStore port.VectorStore
}

func NewSemanticRetriever(embedder port.Embedder, vectorStore port.VectorStore) *SemanticRetriever {
	return &SemanticRetriever{
		embedder:    embedder,
		vectorStore: vectorStore,
	}
}

func (r *SemanticRetriever) Retrieve(ctx context.Context, question string, k int) ([]domain.ScoredUnit, error) {
	embeddings, err := r.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding returned empty result")
	}

	results, err := r.vectorStore.Search(ctx, embeddings[0], k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	return results, nil
}
