package embedding

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	e := NewMockEmbedder(64)

	vecs, err := e.Embed(context.Background(), []string{"Sensor S1 en Sector A", "Sensor S1 en Sector A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(vecs[0], vecs[1]) {
		t.Error("expected identical vectors for identical text")
	}
}

func TestMockEmbedder_Dimension(t *testing.T) {
	e := NewMockEmbedder(32)
	vecs, err := e.Embed(context.Background(), []string{"sensor"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vecs[0]) != 32 {
		t.Errorf("expected dimension 32, got %d", len(vecs[0]))
	}

	if NewMockEmbedder(0).Dimension() != 384 {
		t.Errorf("expected default dimension 384, got %d", NewMockEmbedder(0).Dimension())
	}
}

func TestMockEmbedder_Normalized(t *testing.T) {
	e := NewMockEmbedder(128)
	vecs, err := e.Embed(context.Background(), []string{"Sensor S1 (humedad) en Sector A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var norm float64
	for _, v := range vecs[0] {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1) > 1e-6 {
		t.Errorf("expected unit norm, got %f", norm)
	}
}

func TestMockEmbedder_SharedVocabulary(t *testing.T) {
	e := NewMockEmbedder(384)
	vecs, err := e.Embed(context.Background(), []string{
		"¿Qué sensores tienen alertas activas?",
		"Estado: alerta",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var dot float64
	for i := range vecs[0] {
		dot += float64(vecs[0][i]) * float64(vecs[1][i])
	}
	if dot <= 0 {
		t.Errorf("expected positive similarity for shared vocabulary, got %f", dot)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"¿Qué sensores tienen alertas activas?", []string{"sensor", "tienen", "alerta", "activa"}},
		{"Which sensors have active alerts", []string{"sensor", "active", "alert"}},
		{"Valor: 45 %", []string{"valor", "45"}},
		{"Sector A", []string{"sector"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := tokenize(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
