package postgres

import (
	"context"

	"novella/internal/domain"
	"novella/internal/ports"

	"github.com/jackc/pgx/v5"
)

// profileTx implements ports.ProfileTx
type profileTx struct {
	ctx context.Context
	tx  pgx.Tx
}

// Ensure profileTx implements ProfileTx
var _ ports.ProfileTx = (*profileTx)(nil)

// UpsertProfile inserts or updates the profile row
func (t *profileTx) UpsertProfile(p *domain.Profile) error {
	pathChoices := p.PathChoices
	if pathChoices == nil {
		pathChoices = map[string][]string{}
	}
	items := p.CollectedItems
	if items == nil {
		items = []domain.CollectedItem{}
	}
	characters := p.MetCharacters
	if characters == nil {
		characters = []domain.MetCharacter{}
	}

	_, err := t.tx.Exec(t.ctx, `
		INSERT INTO profiles (name, created_at, episode_id, paragraph_index, sub_paragraph_index,
			path_choices, collected_items, met_characters, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (name) DO UPDATE SET
			episode_id = EXCLUDED.episode_id,
			paragraph_index = EXCLUDED.paragraph_index,
			sub_paragraph_index = EXCLUDED.sub_paragraph_index,
			path_choices = EXCLUDED.path_choices,
			collected_items = EXCLUDED.collected_items,
			met_characters = EXCLUDED.met_characters,
			updated_at = now()
	`, p.Name, p.CreatedAt, p.CurrentEpisodeID, p.CurrentParagraphIndex, p.CurrentSubParagraphIndex,
		pathChoices, items, characters)
	return err
}

// ReplaceMarks overwrites one kind of mark
func (t *profileTx) ReplaceMarks(name, kind string, values []string) error {
	if _, err := t.tx.Exec(t.ctx, `DELETE FROM profile_marks WHERE profile = $1 AND kind = $2`, name, kind); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, v := range values {
		batch.Queue(`
			INSERT INTO profile_marks (profile, kind, value, seq)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (profile, kind, value) DO NOTHING
		`, name, kind, v, i)
	}
	return t.tx.SendBatch(t.ctx, batch).Close()
}

// ReplaceBookmarks overwrites the bookmarks of a profile
func (t *profileTx) ReplaceBookmarks(name string, bookmarks []domain.Bookmark) error {
	if _, err := t.tx.Exec(t.ctx, `DELETE FROM bookmarks WHERE profile = $1`, name); err != nil {
		return err
	}
	for _, b := range bookmarks {
		_, err := t.tx.Exec(t.ctx, `
			INSERT INTO bookmarks (id, profile, episode_id, paragraph_index, comment, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				profile = EXCLUDED.profile,
				episode_id = EXCLUDED.episode_id,
				paragraph_index = EXCLUDED.paragraph_index,
				comment = EXCLUDED.comment
		`, b.ID, name, b.EpisodeID, b.ParagraphIndex, b.Comment, b.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *profileTx) Commit() error {
	return t.tx.Commit(t.ctx)
}

// Rollback aborts the transaction
func (t *profileTx) Rollback() error {
	return t.tx.Rollback(t.ctx)
}
