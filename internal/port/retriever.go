package port

import (
	"context"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
)

// Retriever finds the text units most relevant to a question.
type Retriever interface {
	// Retrieve returns the top-k units for the question, ranked by
	// descending similarity.
	Retrieve(ctx context.Context, question string, k int) ([]domain.ScoredUnit, error)
}
