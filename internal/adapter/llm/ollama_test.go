package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

func TestOllamaLLM_Generate(t *testing.T) {
	var gotPath string
	var gotReq map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Write([]byte(`{"message": {"role": "assistant", "content": "El sensor S1 tiene una alerta."}, "done": true}`))
	}))
	defer server.Close()

	l := NewOllamaLLM("llama3.2", server.URL)

	answer, err := l.Generate(context.Background(), "¿Qué sensores tienen alertas?", port.GenerateOptions{Temperature: 0.7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "El sensor S1 tiene una alerta." {
		t.Errorf("unexpected answer: %q", answer)
	}

	if gotPath != "/api/chat" {
		t.Errorf("expected /api/chat, got %s", gotPath)
	}
	if gotReq["model"] != "llama3.2" {
		t.Errorf("expected model llama3.2, got %v", gotReq["model"])
	}
	if stream, ok := gotReq["stream"].(bool); !ok || stream {
		t.Errorf("expected stream false, got %v", gotReq["stream"])
	}

	options, ok := gotReq["options"].(map[string]any)
	if !ok {
		t.Fatalf("expected options object, got %v", gotReq["options"])
	}
	if temp, ok := options["temperature"].(float64); !ok || temp != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", options["temperature"])
	}
}

func TestOllamaLLM_DefaultOptionsOmitted(t *testing.T) {
	var gotReq map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"message": {"role": "assistant", "content": "ok"}}`))
	}))
	defer server.Close()

	l := NewOllamaLLM("", server.URL)

	if _, err := l.Generate(context.Background(), "pregunta", port.GenerateOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, present := gotReq["options"]; present {
		t.Error("expected options omitted when zero")
	}
	if gotReq["model"] != "llama3.2" {
		t.Errorf("expected default model llama3.2, got %v", gotReq["model"])
	}
}

func TestOllamaLLM_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "model not loaded"}`))
	}))
	defer server.Close()

	l := NewOllamaLLM("llama3.2", server.URL)
	if _, err := l.Generate(context.Background(), "pregunta", port.GenerateOptions{}); err == nil {
		t.Error("expected error for non-200 response")
	}
}
