package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"novella/internal/domain"
	"novella/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// Store implements ports.ProfileStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements ProfileStore
var _ ports.ProfileStore = (*Store)(nil)

// Open opens (creating when needed) the profile database at dbPath
func Open(dbPath string) (*Store, error) {
	dbPath = expandHome(dbPath)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas + schema in single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS profiles (
			name TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			episode_id TEXT NOT NULL,
			paragraph_index INTEGER NOT NULL,
			sub_paragraph_index INTEGER NOT NULL DEFAULT 0,
			path_choices TEXT NOT NULL DEFAULT '{}',
			collected_items TEXT NOT NULL DEFAULT '[]',
			met_characters TEXT NOT NULL DEFAULT '[]',
			updated_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS marks (
			profile TEXT NOT NULL REFERENCES profiles(name) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			value TEXT NOT NULL,
			seq INTEGER NOT NULL,
			PRIMARY KEY (profile, kind, value)
		);
		CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY,
			profile TEXT NOT NULL REFERENCES profiles(name) ON DELETE CASCADE,
			episode_id TEXT NOT NULL,
			paragraph_index INTEGER NOT NULL,
			comment TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_profile ON bookmarks(profile);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file
func (s *Store) Path() string {
	return s.dbPath
}

// SchemaVersion returns the version recorded in the meta table
func (s *Store) SchemaVersion() string {
	var version string
	s.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	return version
}

// DefaultPath returns the XDG data path for the profiles of one novel file
func DefaultPath(novelPath string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "novella", hashNovelPath(novelPath)+".db")
}

// hashNovelPath returns a short hash of the novel path
func hashNovelPath(novelPath string) string {
	h := sha256.Sum256([]byte(novelPath))
	return hex.EncodeToString(h[:8])
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Get retrieves a profile by name
func (s *Store) Get(ctx context.Context, name string) (*domain.Profile, error) {
	var (
		p                                  domain.Profile
		createdAt                          string
		pathChoices, collected, characters string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT name, created_at, episode_id, paragraph_index, sub_paragraph_index,
			path_choices, collected_items, met_characters
		FROM profiles WHERE name = ?
	`, name).Scan(&p.Name, &createdAt, &p.CurrentEpisodeID, &p.CurrentParagraphIndex,
		&p.CurrentSubParagraphIndex, &pathChoices, &collected, &characters)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", name, err)
	}

	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at of %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(pathChoices), &p.PathChoices); err != nil {
		return nil, fmt.Errorf("failed to decode path choices of %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(collected), &p.CollectedItems); err != nil {
		return nil, fmt.Errorf("failed to decode items of %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(characters), &p.MetCharacters); err != nil {
		return nil, fmt.Errorf("failed to decode characters of %s: %w", name, err)
	}

	if err := s.loadMarks(ctx, &p); err != nil {
		return nil, err
	}
	if p.Bookmarks, err = s.loadBookmarks(ctx, name); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) loadMarks(ctx context.Context, p *domain.Profile) error {
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

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, value FROM marks WHERE profile = ? ORDER BY kind, seq
	`, p.Name)
	if err != nil {
		return fmt.Errorf("failed to read marks of %s: %w", p.Name, err)
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

func (s *Store) loadBookmarks(ctx context.Context, name string) ([]domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, episode_id, paragraph_index, comment, created_at
		FROM bookmarks WHERE profile = ? ORDER BY created_at, id
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks of %s: %w", name, err)
	}
	defer rows.Close()

	bookmarks := []domain.Bookmark{}
	for rows.Next() {
		var (
			b         domain.Bookmark
			createdAt string
		)
		if err := rows.Scan(&b.ID, &b.EpisodeID, &b.ParagraphIndex, &b.Comment, &createdAt); err != nil {
			return nil, err
		}
		if b.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse bookmark %s: %w", b.ID, err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// Save writes the whole profile in one transaction
func (s *Store) Save(ctx context.Context, p *domain.Profile) error {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.UpsertProfile(p); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", p.Name, err)
	}
	marks := []struct {
		kind   string
		values []string
	}{
		{ports.MarkRead, p.ReadParagraphs},
		{ports.MarkChoice, p.UsedChoices},
		{ports.MarkPath, p.ActivePaths},
		{ports.MarkStoryItem, p.StoryItems},
		{ports.MarkCompleted, p.CompletedEpisodes},
	}
	for _, m := range marks {
		if err := tx.ReplaceMarks(p.Name, m.kind, m.values); err != nil {
			return fmt.Errorf("failed to save %s marks: %w", m.kind, err)
		}
	}
	if err := tx.ReplaceBookmarks(p.Name, p.Bookmarks); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}

	return tx.Commit()
}

// List returns the profile names in alphabetical order
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a profile with its marks and bookmarks
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", name, err)
	}
	return nil
}

// BeginTx starts a new transaction
func (s *Store) BeginTx(ctx context.Context) (ports.ProfileTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &profileTx{tx: tx}, nil
}
