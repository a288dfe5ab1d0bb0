package postgres

import (
	"context"
	"errors"
	"fmt"

	"novella/internal/domain"
	"novella/internal/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileStore implements ports.ProfileStore on postgres
type ProfileStore struct {
	pool *pgxpool.Pool
}

// Ensure ProfileStore implements ProfileStore
var _ ports.ProfileStore = (*ProfileStore)(nil)

// Get retrieves a profile by name
func (s *ProfileStore) Get(ctx context.Context, name string) (*domain.Profile, error) {
	var p domain.Profile
	err := s.pool.QueryRow(ctx, `
		SELECT name, created_at, episode_id, paragraph_index, sub_paragraph_index,
			path_choices, collected_items, met_characters
		FROM profiles WHERE name = $1
	`, name).Scan(&p.Name, &p.CreatedAt, &p.CurrentEpisodeID, &p.CurrentParagraphIndex,
		&p.CurrentSubParagraphIndex, &p.PathChoices, &p.CollectedItems, &p.MetCharacters)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", name, err)
	}

	if err := s.loadMarks(ctx, &p); err != nil {
		return nil, err
	}
	if err := s.loadBookmarks(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileStore) loadMarks(ctx context.Context, p *domain.Profile) error {
	sets := map[string]*[]string{
		ports.MarkRead:      &p.ReadParagraphs,
		ports.MarkChoice:    &p.UsedChoices,
		ports.MarkPath:      &p.ActivePaths,
		ports.MarkStoryItem: &p.StoryItems,
		ports.MarkCompleted: &p.CompletedEpisodes,
	}
	for _, set := range sets {
		*set = []string{}
	}

	rows, err := s.pool.Query(ctx, `
		SELECT kind, value FROM profile_marks WHERE profile = $1 ORDER BY kind, seq
	`, p.Name)
	if err != nil {
		return fmt.Errorf("reading marks of %s: %w", p.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return err
		}
		if set, ok := sets[kind]; ok {
			*set = append(*set, value)
		}
	}
	return rows.Err()
}

func (s *ProfileStore) loadBookmarks(ctx context.Context, p *domain.Profile) error {
	rows, err := s.pool.Query(ctx, `
		SELECT id, episode_id, paragraph_index, comment, created_at
		FROM bookmarks WHERE profile = $1 ORDER BY created_at, id
	`, p.Name)
	if err != nil {
		return fmt.Errorf("reading bookmarks of %s: %w", p.Name, err)
	}

	bookmarks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Bookmark, error) {
		var b domain.Bookmark
		err := row.Scan(&b.ID, &b.EpisodeID, &b.ParagraphIndex, &b.Comment, &b.CreatedAt)
		return b, err
	})
	if err != nil {
		return fmt.Errorf("reading bookmarks of %s: %w", p.Name, err)
	}
	p.Bookmarks = bookmarks
	return nil
}

// Save writes the whole profile in one transaction
func (s *ProfileStore) Save(ctx context.Context, p *domain.Profile) error {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.UpsertProfile(p); err != nil {
		return fmt.Errorf("saving profile %s: %w", p.Name, err)
	}
	marks := map[string][]string{
		ports.MarkRead:      p.ReadParagraphs,
		ports.MarkChoice:    p.UsedChoices,
		ports.MarkPath:      p.ActivePaths,
		ports.MarkStoryItem: p.StoryItems,
		ports.MarkCompleted: p.CompletedEpisodes,
	}
	for kind, values := range marks {
		if err := tx.ReplaceMarks(p.Name, kind, values); err != nil {
			return fmt.Errorf("saving %s marks: %w", kind, err)
		}
	}
	if err := tx.ReplaceBookmarks(p.Name, p.Bookmarks); err != nil {
		return fmt.Errorf("saving bookmarks: %w", err)
	}
	return tx.Commit()
}

// List returns the profile names in alphabetical order
func (s *ProfileStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Delete removes a profile with its marks and bookmarks
func (s *ProfileStore) Delete(ctx context.Context, name string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM profiles WHERE name = $1`, name); err != nil {
		return fmt.Errorf("deleting profile %s: %w", name, err)
	}
	return nil
}

// Close is a no-op; the Client owns the pool
func (s *ProfileStore) Close() error {
	return nil
}

// BeginTx starts a new transaction
func (s *ProfileStore) BeginTx(ctx context.Context) (ports.ProfileTx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &profileTx{ctx: ctx, tx: tx}, nil
}
