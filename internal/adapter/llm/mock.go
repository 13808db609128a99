package llm

import (
	"context"

	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

// MockLLM returns a canned response without calling any provider.
// Lets the whole pipeline run offline.
type MockLLM struct {
	Response string
}

func NewMockLLM(response string) *MockLLM {
	if response == "" {
		response = "(respuesta simulada: no hay modelo generativo configurado)"
	}
	return &MockLLM{Response: response}
}

func (l *MockLLM) Generate(_ context.Context, _ string, _ port.GenerateOptions) (string, error) {
	return l.Response, nil
}

func (l *MockLLM) ModelName() string {
	return "mock"
}
