package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rodrigotabsan/RAGIoT/config"
	"github.com/rodrigotabsan/RAGIoT/internal/adapter/cache"
	"github.com/rodrigotabsan/RAGIoT/internal/adapter/dataset"
	"github.com/rodrigotabsan/RAGIoT/internal/adapter/embedding"
	"github.com/rodrigotabsan/RAGIoT/internal/adapter/llm"
	"github.com/rodrigotabsan/RAGIoT/internal/adapter/retriever"
	"github.com/rodrigotabsan/RAGIoT/internal/adapter/store"
	"github.com/rodrigotabsan/RAGIoT/internal/domain"
	"github.com/rodrigotabsan/RAGIoT/internal/port"
	"github.com/rodrigotabsan/RAGIoT/internal/usecase"
)

// newEmbedder creates the embedding provider selected in config.
func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.BaseURL)
	case "ollama":
		return embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL), nil
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
}

// newLLM creates the generative model selected in config.
func newLLM(cfg *config.Config) (port.LLM, error) {
	switch cfg.LLM.Provider {
	case "openai":
		return llm.NewOpenAILLM(cfg.LLM.APIKeyEnv, cfg.LLM.Model, cfg.LLM.BaseURL)
	case "ollama":
		return llm.NewOllamaLLM(cfg.LLM.Model, cfg.LLM.BaseURL), nil
	case "mock":
		return llm.NewMockLLM(""), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
}

// newVectorStore creates the vector store backend selected in config. The
// bolt backend persists under dir/.ragiot.
func newVectorStore(cfg *config.Config, dir string, dimension int) (port.VectorStore, error) {
	switch cfg.Store.Backend {
	case "bolt":
		if err := config.EnsureStateDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create .ragiot directory: %w", err)
		}
		return store.NewBoltVectorStore(config.IndexDBPath(dir), dimension)
	case "postgres":
		dsn := os.Getenv(cfg.Store.PostgresDSNEnv)
		if dsn == "" {
			return nil, fmt.Errorf("%w: environment variable %s is empty", domain.ErrCredentialMissing, cfg.Store.PostgresDSNEnv)
		}
		return store.NewPostgresVectorStore(dsn, dimension)
	case "memory":
		return store.NewMemoryStore(dimension), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}

// datasetPaths resolves the configured dataset path into concrete files.
// Relative paths are anchored at the root directory.
func datasetPaths(cfg *config.Config, dir string) ([]string, error) {
	path := cfg.Dataset.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return dataset.Resolve(path, cfg.Dataset.Includes, cfg.Dataset.Excludes)
}

// newSession wires the full pipeline for the given config. The caller owns
// the returned store and must Close it.
func newSession(cfg *config.Config, dir string) (*usecase.Session, port.VectorStore, error) {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, nil, err
	}

	generator, err := newLLM(cfg)
	if err != nil {
		return nil, nil, err
	}

	vectorStore, err := newVectorStore(cfg, dir, embedder.Dimension())
	if err != nil {
		return nil, nil, err
	}

	paths, err := datasetPaths(cfg, dir)
	if err != nil {
		vectorStore.Close()
		return nil, nil, err
	}

	var ret port.Retriever = retriever.NewSemanticRetriever(embedder, vectorStore)
	var queryCache *cache.QueryCache
	if cfg.Retrieve.CacheSize > 0 {
		queryCache = cache.NewQueryCache(cfg.Retrieve.CacheSize, cfg.Retrieve.CacheTTL)
		ret = cache.NewCachedRetriever(ret, queryCache)
	}

	engine := usecase.NewAnswerUseCase(ret, generator, cfg.Retrieve.TopK, port.GenerateOptions{
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	builder := usecase.NewBuildUseCase(embedder, vectorStore, cfg.Embedding.BatchSize)
	loader := dataset.NewLoader()

	return usecase.NewSession(loader, builder, engine, queryCache, paths), vectorStore, nil
}
