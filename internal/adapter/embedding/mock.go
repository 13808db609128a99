package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// MockEmbedder produces deterministic embeddings from token features.
// Tokens are lowercased, stripped of punctuation and simple plural suffixes,
// then hashed into buckets; vectors are L2-normalized so cosine similarity
// reflects shared vocabulary. Good enough for tests and offline runs.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	if dimension <= 0 {
		dimension = 384
	}
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = e.embedText(text)
	}
	return embeddings, nil
}

func (e *MockEmbedder) embedText(text string) []float32 {
	vec := make([]float32, e.dimension)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[int(h.Sum32())%e.dimension]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}

// Function words carry no signal for matching questions to sensor units.
// Spanish first since the datasets are Spanish, plus common English ones.
var stopwords = map[string]struct{}{
	"de": {}, "la": {}, "el": {}, "en": {}, "los": {}, "las": {}, "un": {},
	"una": {}, "y": {}, "o": {}, "del": {}, "al": {}, "con": {}, "para": {},
	"por": {}, "se": {}, "su": {}, "es": {}, "son": {}, "hay": {}, "que": {},
	"qué": {}, "cuál": {}, "cómo": {},
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {},
	"in": {}, "on": {}, "at": {}, "is": {}, "are": {}, "with": {}, "for": {},
	"which": {}, "what": {}, "have": {}, "has": {},
}

// tokenize splits text into normalized word features.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := normalize(current.String())
		current.Reset()
		if token == "" {
			return
		}
		if _, ok := stopwords[token]; ok {
			return
		}
		tokens = append(tokens, token)
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// normalize trims simple plural suffixes so "alertas" and "alerta" share a
// feature. Deliberately crude; a mock does not need a real stemmer.
func normalize(token string) string {
	if len(token) < 2 {
		return ""
	}
	if len(token) > 4 && strings.HasSuffix(token, "es") {
		return token[:len(token)-2]
	}
	if len(token) > 3 && strings.HasSuffix(token, "s") {
		return token[:len(token)-1]
	}
	return token
}
