//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"github.com/rodrigotabsan/RAGIoT/internal/adapter/dataset"
	"github.com/rodrigotabsan/RAGIoT/internal/adapter/embedding"
	"github.com/rodrigotabsan/RAGIoT/internal/adapter/retriever"
	"github.com/rodrigotabsan/RAGIoT/internal/adapter/store"
	"github.com/rodrigotabsan/RAGIoT/internal/usecase"
)

// Browser build: the whole pipeline runs in-memory with the hash embedder,
// so no provider credentials ever reach the page.
var (
	loader    *dataset.Loader
	embedder  *embedding.MockEmbedder
	vectors   *store.MemoryStore
	builder   *usecase.BuildUseCase
	semantic  *retriever.SemanticRetriever
	unitCount int
)

func init() {
	loader = dataset.NewLoader()
	embedder = embedding.NewMockEmbedder(128)
	vectors = store.NewMemoryStore(embedder.Dimension())
	builder = usecase.NewBuildUseCase(embedder, vectors, 100)
	semantic = retriever.NewSemanticRetriever(embedder, vectors)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("ragiotLoad", js.FuncOf(loadDataset))
	js.Global().Set("ragiotRetrieve", js.FuncOf(retrieveUnits))
	js.Global().Set("ragiotClear", js.FuncOf(clearIndex))
	js.Global().Set("ragiotStats", js.FuncOf(getStats))

	<-c
}

func loadDataset(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: ragiotLoad(datasetJSON)")
	}

	units, err := loader.Parse([]byte(args[0].String()))
	if err != nil {
		return makeError("dataset rejected: " + err.Error())
	}

	result, err := builder.Build(context.Background(), units, nil)
	if err != nil {
		return makeError("indexing failed: " + err.Error())
	}
	if result == nil {
		unitCount = 0
		return makeResult(map[string]interface{}{
			"success": true,
			"units":   0,
		})
	}

	unitCount = result.UnitsIndexed
	return makeResult(map[string]interface{}{
		"success":   true,
		"units":     result.UnitsIndexed,
		"dimension": result.Dimension,
	})
}

func retrieveUnits(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: ragiotRetrieve(question, [topK])")
	}

	question := args[0].String()
	topK := 3
	if len(args) > 1 {
		topK = args[1].Int()
	}

	matches, err := semantic.Retrieve(context.Background(), question, topK)
	if err != nil {
		return makeError("retrieval failed: " + err.Error())
	}

	output := make([]map[string]interface{}, 0, len(matches))
	for _, m := range matches {
		output = append(output, map[string]interface{}{
			"id":       m.Unit.ID,
			"content":  m.Unit.Content,
			"metadata": m.Unit.Metadata,
			"score":    m.Score,
		})
	}

	return makeResult(map[string]interface{}{
		"question": question,
		"results":  output,
	})
}

func clearIndex(this js.Value, args []js.Value) interface{} {
	if err := vectors.Clear(context.Background()); err != nil {
		return makeError("clear failed: " + err.Error())
	}
	unitCount = 0
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func getStats(this js.Value, args []js.Value) interface{} {
	return makeResult(map[string]interface{}{
		"units":     unitCount,
		"dimension": embedder.Dimension(),
		"model":     embedder.ModelName(),
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
