package usecase

import (
	"context"
	"fmt"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

// DefaultTopK is how many units are retrieved as context for a question.
const DefaultTopK = 3

// AnswerUseCase answers a question by retrieving the most similar units and
// feeding them verbatim to the language model.
type AnswerUseCase struct {
	retriever port.Retriever
	llm       port.LLM
	topK      int
	opts      port.GenerateOptions
}

// NewAnswerUseCase creates an answer use case. topK <= 0 falls back to
// DefaultTopK.
func NewAnswerUseCase(retriever port.Retriever, llm port.LLM, topK int, opts port.GenerateOptions) *AnswerUseCase {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerUseCase{
		retriever: retriever,
		llm:       llm,
		topK:      topK,
		opts:      opts,
	}
}

// Answer retrieves context for the question and generates an answer. The
// returned result carries the retrieved sources in rank order.
func (u *AnswerUseCase) Answer(ctx context.Context, question string) (*domain.QueryResult, error) {
	sources, err := u.retriever.Retrieve(ctx, question, u.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieval: %v", domain.ErrQueryFailed, err)
	}

	prompt, err := BuildPrompt(sources, question)
	if err != nil {
		return nil, fmt.Errorf("%w: prompt: %v", domain.ErrQueryFailed, err)
	}

	answer, err := u.llm.Generate(ctx, prompt, u.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: generation: %v", domain.ErrQueryFailed, err)
	}

	return &domain.QueryResult{
		Question: question,
		Answer:   answer,
		Sources:  sources,
	}, nil
}

// GeneratorModel returns the name of the generative model in use.
func (u *AnswerUseCase) GeneratorModel() string {
	return u.llm.ModelName()
}
