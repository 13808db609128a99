package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

// ProgressFunc reports index build progress after each embedded batch.
type ProgressFunc func(done, total int)

// BuildUseCase builds the vector index from loaded text units.
type BuildUseCase struct {
	embedder  port.Embedder
	store     port.VectorStore
	batchSize int
}

// NewBuildUseCase creates a build use case. batchSize bounds how many unit
// contents are embedded per provider call.
func NewBuildUseCase(embedder port.Embedder, store port.VectorStore, batchSize int) *BuildUseCase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BuildUseCase{
		embedder:  embedder,
		store:     store,
		batchSize: batchSize,
	}
}

// BuildResult summarizes a completed index build.
type BuildResult struct {
	UnitsIndexed int
	Dimension    int
	Elapsed      time.Duration
}

// Build replaces the index content with the given units. An empty unit list
// yields no index and touches no provider. On failure the partial index is
// discarded so it can never be mistaken for a usable one.
func (u *BuildUseCase) Build(ctx context.Context, units []domain.TextUnit, progress ProgressFunc) (*BuildResult, error) {
	if len(units) == 0 {
		return nil, nil
	}

	start := time.Now()

	if err := u.store.Clear(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to clear previous index: %v", domain.ErrIndexBuildFailed, err)
	}

	for i := 0; i < len(units); i += u.batchSize {
		end := i + u.batchSize
		if end > len(units) {
			end = len(units)
		}
		batch := units[i:end]

		texts := make([]string, len(batch))
		for j, unit := range batch {
			texts[j] = unit.Content
		}

		embeddings, err := u.embedder.Embed(ctx, texts)
		if err != nil {
			u.discard(ctx)
			return nil, fmt.Errorf("%w: embedding batch failed: %v", domain.ErrIndexBuildFailed, err)
		}
		if len(embeddings) != len(batch) {
			u.discard(ctx)
			return nil, fmt.Errorf("%w: expected %d embeddings, got %d", domain.ErrIndexBuildFailed, len(batch), len(embeddings))
		}

		items := make([]port.VectorItem, len(batch))
		for j, unit := range batch {
			items[j] = port.VectorItem{Unit: unit, Vector: embeddings[j]}
		}

		if err := u.store.Upsert(ctx, items); err != nil {
			u.discard(ctx)
			return nil, fmt.Errorf("%w: failed to store vectors: %v", domain.ErrIndexBuildFailed, err)
		}

		if progress != nil {
			progress(end, len(units))
		}
	}

	count, err := u.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count units: %v", domain.ErrIndexBuildFailed, err)
	}
	if count != len(units) {
		u.discard(ctx)
		return nil, fmt.Errorf("%w: index holds %d units, expected %d", domain.ErrIndexBuildFailed, count, len(units))
	}

	return &BuildResult{
		UnitsIndexed: count,
		Dimension:    u.embedder.Dimension(),
		Elapsed:      time.Since(start),
	}, nil
}

// discard clears a partially built index, best effort.
func (u *BuildUseCase) discard(ctx context.Context) {
	_ = u.store.Clear(ctx)
}

// EmbedderModel returns the name of the embedding model in use.
func (u *BuildUseCase) EmbedderModel() string {
	return u.embedder.ModelName()
}
