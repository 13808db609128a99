package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rodrigotabsan/RAGIoT/internal/adapter/cache"
	"github.com/rodrigotabsan/RAGIoT/internal/adapter/dataset"
	"github.com/rodrigotabsan/RAGIoT/internal/domain"
)

// Session ties loading, indexing and answering together for one dataset.
// A session starts empty; Init loads the dataset and builds the index, and
// Ask refuses to run until that succeeded with at least one unit.
type Session struct {
	ID string

	loader   *dataset.Loader
	builder  *BuildUseCase
	engine   *AnswerUseCase
	cache    *cache.QueryCache
	paths    []string
	progress ProgressFunc

	ready   bool
	units   int
	builtAt time.Time
}

// NewSession creates a session over the given dataset files. cache may be nil
// when query caching is disabled.
func NewSession(loader *dataset.Loader, builder *BuildUseCase, engine *AnswerUseCase, queryCache *cache.QueryCache, paths []string) *Session {
	return &Session{
		ID:      uuid.NewString(),
		loader:  loader,
		builder: builder,
		engine:  engine,
		cache:   queryCache,
		paths:   paths,
	}
}

// OnProgress registers a callback invoked during index builds.
func (s *Session) OnProgress(fn ProgressFunc) {
	s.progress = fn
}

// Init loads the dataset and builds the index. A dataset that parses to zero
// units leaves the session not ready without error.
func (s *Session) Init(ctx context.Context) error {
	units, err := s.loader.LoadAll(s.paths)
	if err != nil {
		return err
	}
	slog.Info("dataset loaded", "files", len(s.paths), "units", len(units))

	result, err := s.builder.Build(ctx, units, s.progress)
	if err != nil {
		return err
	}
	if result == nil {
		slog.Warn("dataset produced no units; session not ready")
		return nil
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}
	s.ready = true
	s.units = result.UnitsIndexed
	s.builtAt = time.Now()
	slog.Info("index built",
		"session", s.ID,
		"units", result.UnitsIndexed,
		"dimension", result.Dimension,
		"elapsed", result.Elapsed)
	return nil
}

// Ask answers a question against the built index.
func (s *Session) Ask(ctx context.Context, question string) (*domain.QueryResult, error) {
	if !s.ready {
		return nil, fmt.Errorf("%w: build an index first", domain.ErrIndexNotReady)
	}
	return s.engine.Answer(ctx, question)
}

// Ready reports whether the session holds a usable index.
func (s *Session) Ready() bool {
	return s.ready
}

// UnitCount returns how many units the current index holds.
func (s *Session) UnitCount() int {
	return s.units
}

// BuiltAt returns when the current index finished building.
func (s *Session) BuiltAt() time.Time {
	return s.builtAt
}

// EmbeddingModel returns the name of the embedding model in use.
func (s *Session) EmbeddingModel() string {
	return s.builder.EmbedderModel()
}

// GenerativeModel returns the name of the generative model in use.
func (s *Session) GenerativeModel() string {
	return s.engine.GeneratorModel()
}
