package port

import "context"

// LLM represents a language model for text generation.
type LLM interface {
	// Generate produces a completion for the given prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}

// GenerateOptions controls sampling for a single generation.
type GenerateOptions struct {
	Temperature float64 // Sampling temperature (0 = provider default)
	MaxTokens   int     // Maximum tokens to generate (0 = provider default)
}
