package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
	"github.com/rodrigotabsan/RAGIoT/internal/port"
)

var _ port.VectorStore = (*PostgresVectorStore)(nil)

// PostgresVectorStore persists units in Postgres using the pgvector
// extension. Distance ordering is delegated to the database; seq keeps
// the same insertion-order tie-break as the Bolt store.
type PostgresVectorStore struct {
	db        *sql.DB
	dimension int
}

// NewPostgresVectorStore connects to Postgres and ensures the schema exists.
func NewPostgresVectorStore(dsn string, dimension int) (*PostgresVectorStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresVectorStore{db: db, dimension: dimension}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresVectorStore) migrate() error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS sensor_units (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}',
			seq BIGSERIAL,
			vector vector(%d) NOT NULL
		)`, s.dimension),
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (s *PostgresVectorStore) Upsert(ctx context.Context, items []port.VectorItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sensor_units (id, content, metadata, vector)
		 VALUES ($1, $2, $3, $4::vector)
		 ON CONFLICT (id) DO UPDATE SET content = $2, metadata = $3, vector = $4::vector`)
	if err != nil {
		return fmt.Errorf("failed to prepare: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if len(item.Vector) != s.dimension {
			return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(item.Vector))
		}

		metadata, err := json.Marshal(item.Unit.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, item.Unit.ID, item.Unit.Content, metadata, vectorToString(item.Vector)); err != nil {
			return fmt.Errorf("failed to insert unit: %w", err)
		}
	}

	return tx.Commit()
}

func (s *PostgresVectorStore) Search(ctx context.Context, query []float32, k int) ([]domain.ScoredUnit, error) {
	if len(query) != s.dimension {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", s.dimension, len(query))
	}
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, metadata, 1 - (vector <=> $1::vector) AS similarity
		 FROM sensor_units
		 ORDER BY vector <=> $1::vector, seq
		 LIMIT $2`,
		vectorToString(query), k)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer rows.Close()

	var results []domain.ScoredUnit
	for rows.Next() {
		var unit domain.TextUnit
		var metadata []byte
		var score float64
		if err := rows.Scan(&unit.ID, &unit.Content, &metadata, &score); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &unit.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}
		results = append(results, domain.ScoredUnit{Unit: unit, Score: score})
	}
	return results, rows.Err()
}

func (s *PostgresVectorStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sensor_units`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count units: %w", err)
	}
	return count, nil
}

func (s *PostgresVectorStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sensor_units`); err != nil {
		return fmt.Errorf("failed to clear units: %w", err)
	}
	return nil
}

func (s *PostgresVectorStore) Close() error {
	return s.db.Close()
}

// vectorToString converts a float32 slice to pgvector format: [0.1,0.2,0.3].
func vectorToString(v []float32) string {
	parts := make([]string, len(v))
	for i, val := range v {
		parts[i] = fmt.Sprintf("%g", val)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
