package server

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
	"github.com/rodrigotabsan/RAGIoT/internal/usecase"
)

// Server exposes a question-answering session as a JSON API.
type Server struct {
	app     *fiber.App
	session *usecase.Session
}

// New creates the HTTP server around an initialized session.
func New(session *usecase.Session) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "ragiot",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{app: app, session: session}

	app.Post("/api/v1/query", s.handleQuery)
	app.Get("/api/v1/health", s.handleHealth)
	app.Get("/api/v1/session", s.handleSession)

	return s
}

// Listen blocks serving HTTP on the given address.
func (s *Server) Listen(addr string) error {
	slog.Info("HTTP server listening", "addr", addr, "session", s.session.ID)
	return s.app.Listen(addr)
}

// App returns the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleQuery(c fiber.Ctx) error {
	var body struct {
		Question string `json:"question"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "question is empty"})
	}

	requestID := uuid.NewString()
	result, err := s.session.Ask(c.Context(), body.Question)
	if err != nil {
		slog.Error("query failed", "request", requestID, "error", err)
		switch {
		case errors.Is(err, domain.ErrIndexNotReady):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "index is not ready"})
		case errors.Is(err, domain.ErrQueryFailed):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	sources := make([]fiber.Map, len(result.Sources))
	for i, src := range result.Sources {
		sources[i] = fiber.Map{
			"id":         src.Unit.ID,
			"content":    src.Unit.Content,
			"metadata":   src.Unit.Metadata,
			"similarity": src.Score,
		}
	}

	return c.JSON(fiber.Map{
		"question": result.Question,
		"answer":   result.Answer,
		"sources":  sources,
	})
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"ready":  s.session.Ready(),
	})
}

func (s *Server) handleSession(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"session":          s.session.ID,
		"ready":            s.session.Ready(),
		"units":            s.session.UnitCount(),
		"built_at":         s.session.BuiltAt(),
		"embedding_model":  s.session.EmbeddingModel(),
		"generative_model": s.session.GenerativeModel(),
	})
}
