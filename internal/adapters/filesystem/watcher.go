package filesystem

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"novella/internal/domain"
	"novella/internal/ports"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle
const DefaultDebounce = 300 * time.Millisecond

// Watcher reloads the novel file when it changes on disk
type Watcher struct {
	repo     *Repository
	debounce time.Duration
	logger   *slog.Logger
}

// Ensure Watcher implements NovelWatcher
var _ ports.NovelWatcher = (*Watcher)(nil)

// NewWatcher creates a watcher for the repository's file
func NewWatcher(repo *Repository, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{repo: repo, debounce: debounce, logger: logger}
}

// Watch blocks until ctx is done. The parent directory is watched so editors
// that save by renaming a temp file are still seen.
func (w *Watcher) Watch(ctx context.Context, onChange func(*domain.Novel), onError func(error)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.repo.Path())
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching novel", "path", w.repo.Path())

	target := filepath.Clean(w.repo.Path())
	reload := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			n, err := w.repo.Load(ctx)
			if err != nil {
				w.logger.Warn("novel reload failed", "error", err)
				if onError != nil {
					onError(err)
				}
				continue
			}
			w.logger.Info("novel reloaded", "episodes", len(n.Episodes))
			onChange(n)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}
}
