package ports

import (
	"context"

	"novella/internal/domain"
)

// NovelRepository loads and stores the novel document
type NovelRepository interface {
	Load(ctx context.Context) (*domain.Novel, error)
	Save(ctx context.Context, n *domain.Novel) error
}

// NovelWatcher reports edits to the novel while a reader is running.
// Watch blocks until ctx is done.
type NovelWatcher interface {
	Watch(ctx context.Context, onChange func(*domain.Novel), onError func(error)) error
}
