package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"novella/internal/application"
	"novella/internal/domain"
	"novella/internal/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NovelStore implements ports.NovelRepository for one novel row
type NovelStore struct {
	pool *pgxpool.Pool
	id   string
}

// Ensure NovelStore implements NovelRepository
var _ ports.NovelRepository = (*NovelStore)(nil)

// Load reads the novel document
func (s *NovelStore) Load(ctx context.Context) (*domain.Novel, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT document FROM novels WHERE id = $1`, s.id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("novel %s: %w", s.id, application.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading novel %s: %w", s.id, err)
	}

	n, err := domain.DecodeNovelJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding novel %s: %w", s.id, err)
	}
	return n, nil
}

// Save upserts the novel document
func (s *NovelStore) Save(ctx context.Context, n *domain.Novel) error {
	doc, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding novel: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO novels (id, title, document, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			document = EXCLUDED.document,
			updated_at = now()
	`, s.id, n.Title, doc)
	if err != nil {
		return fmt.Errorf("saving novel %s: %w", s.id, err)
	}
	return nil
}
