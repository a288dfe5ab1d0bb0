package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"novella/internal/domain"
	"novella/internal/ports"
)

// profileTx implements ports.ProfileTx
type profileTx struct {
	tx *sql.Tx
}

// Ensure profileTx implements ProfileTx
var _ ports.ProfileTx = (*profileTx)(nil)

// UpsertProfile inserts or updates the profile row
func (t *profileTx) UpsertProfile(p *domain.Profile) error {
	pathChoices := p.PathChoices
	if pathChoices == nil {
		pathChoices = map[string][]string{}
	}
	choicesJSON, err := json.Marshal(pathChoices)
	if err != nil {
		return fmt.Errorf("failed to encode path choices: %w", err)
	}
	itemsJSON, err := json.Marshal(orEmpty(p.CollectedItems))
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	charactersJSON, err := json.Marshal(orEmpty(p.MetCharacters))
	if err != nil {
		return fmt.Errorf("failed to encode characters: %w", err)
	}

	_, err = t.tx.Exec(`
		INSERT INTO profiles (name, created_at, episode_id, paragraph_index, sub_paragraph_index,
			path_choices, collected_items, met_characters, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			episode_id = excluded.episode_id,
			paragraph_index = excluded.paragraph_index,
			sub_paragraph_index = excluded.sub_paragraph_index,
			path_choices = excluded.path_choices,
			collected_items = excluded.collected_items,
			met_characters = excluded.met_characters,
			updated_at = excluded.updated_at
	`, p.Name, p.CreatedAt.UTC().Format(time.RFC3339Nano), p.CurrentEpisodeID, p.CurrentParagraphIndex,
		p.CurrentSubParagraphIndex, string(choicesJSON), string(itemsJSON), string(charactersJSON),
		time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// ReplaceMarks overwrites one kind of mark
func (t *profileTx) ReplaceMarks(name, kind string, values []string) error {
	if _, err := t.tx.Exec(`DELETE FROM marks WHERE profile = ? AND kind = ?`, name, kind); err != nil {
		return err
	}
	for i, v := range values {
		_, err := t.tx.Exec(`
			INSERT OR IGNORE INTO marks (profile, kind, value, seq)
			VALUES (?, ?, ?, ?)
		`, name, kind, v, i)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReplaceBookmarks overwrites the bookmarks of a profile
func (t *profileTx) ReplaceBookmarks(name string, bookmarks []domain.Bookmark) error {
	if _, err := t.tx.Exec(`DELETE FROM bookmarks WHERE profile = ?`, name); err != nil {
		return err
	}
	for _, b := range bookmarks {
		_, err := t.tx.Exec(`
			INSERT OR REPLACE INTO bookmarks (id, profile, episode_id, paragraph_index, comment, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, b.ID, name, b.EpisodeID, b.ParagraphIndex, b.Comment, b.CreatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *profileTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *profileTx) Rollback() error {
	return t.tx.Rollback()
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
