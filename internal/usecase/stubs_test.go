package usecase

import (
	"context"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

type fakeEmbedder struct {
	embedFn   func(ctx context.Context, texts []string) ([][]float32, error)
	dimension int
	calls     int
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.embedFn != nil {
		return f.embedFn(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, f.Dimension())
		out[i][0] = 1
	}
	return out, nil
}

func (f *fakeEmbedder) Dimension() int {
	if f.dimension > 0 {
		return f.dimension
	}
	return 3
}

func (f *fakeEmbedder) ModelName() string { return "fake-embedder" }

type fakeLLM struct {
	generateFn func(ctx context.Context, prompt string, opts port.GenerateOptions) (string, error)
	prompts    []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts port.GenerateOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.generateFn != nil {
		return f.generateFn(ctx, prompt, opts)
	}
	return "respuesta", nil
}

func (f *fakeLLM) ModelName() string { return "fake-llm" }

type fakeRetriever struct {
	retrieveFn func(ctx context.Context, question string, k int) ([]domain.ScoredUnit, error)
}

func (f *fakeRetriever) Retrieve(ctx context.Context, question string, k int) ([]domain.ScoredUnit, error) {
	return f.retrieveFn(ctx, question, k)
}

func unitsFixture(n int) []domain.TextUnit {
	units := make([]domain.TextUnit, n)
	for i := range units {
		units[i] = domain.TextUnit{
			ID:      string(rune('a' + i)),
			Content: "unidad " + string(rune('a'+i)),
			Metadata: map[string]any{
				domain.MetaSensorID: "S1",
			},
		}
	}
	return units
}
