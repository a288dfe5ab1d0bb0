package ports

import (
	"context"

	"novella/internal/domain"
)

// ProfileStore persists reader profiles by name
type ProfileStore interface {
	// Get returns nil, nil when no profile has that name
	Get(ctx context.Context, name string) (*domain.Profile, error)
	Save(ctx context.Context, p *domain.Profile) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Mark kinds stored by ProfileTx.ReplaceMarks
const (
	MarkRead      = "read"
	MarkChoice    = "choice"
	MarkPath      = "path"
	MarkStoryItem = "story_item"
	MarkCompleted = "completed"
)

// ProfileTx writes one profile atomically
type ProfileTx interface {
	// UpsertProfile stores the position and the document-shaped fields
	UpsertProfile(p *domain.Profile) error

	// ReplaceMarks overwrites every value of one kind for the profile
	ReplaceMarks(name, kind string, values []string) error
	ReplaceBookmarks(name string, bookmarks []domain.Bookmark) error

	// Transaction control
	Commit() error
	Rollback() error
}
