package application

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"novella/internal/domain"
	"novella/internal/ports"
)

// Library hands out one Session per profile over a shared novel, for
// front-ends that serve several readers at once
type Library struct {
	mu       sync.Mutex
	novel    *domain.Novel
	store    ports.ProfileStore
	cfg      SessionConfig
	sessions map[string]*Session
	onOpen   []func(*Session)
	logger   *slog.Logger
}

// NewLibrary creates a library. cfg is copied into every session it opens.
func NewLibrary(n *domain.Novel, store ports.ProfileStore, cfg SessionConfig) *Library {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Library{
		novel:    n,
		store:    store,
		cfg:      cfg,
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// OnOpen registers a hook run once for every newly opened session
func (l *Library) OnOpen(fn func(*Session)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onOpen = append(l.onOpen, fn)
}

// Novel returns the current novel
func (l *Library) Novel() *domain.Novel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.novel
}

// Session returns the open session for name, loading or creating the
// profile the first time it is asked for
func (l *Library) Session(ctx context.Context, name string) (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.sessions[name]; ok {
		return s, nil
	}

	p, err := OpenProfile(ctx, l.store, l.novel, name, domain.Env{Now: l.cfg.Clock(), NewID: l.cfg.NewID})
	if err != nil {
		return nil, err
	}

	s := NewSession(l.novel, p, l.store, l.cfg)
	l.sessions[name] = s
	for _, fn := range l.onOpen {
		fn(s)
	}
	l.logger.Debug("opened session", "profile", name)
	return s, nil
}

// SetNovel swaps the novel in every open session
func (l *Library) SetNovel(ctx context.Context, n *domain.Novel) error {
	l.mu.Lock()
	l.novel = n
	sessions := make([]*Session, 0, len(l.sessions))
	for _, s := range l.sessions {
		sessions = append(sessions, s)
	}
	l.mu.Unlock()

	var firstErr error
	for _, s := range sessions {
		if err := s.SetNovel(ctx, n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Profiles lists the stored profile names together with any open ones
func (l *Library) Profiles(ctx context.Context) ([]string, error) {
	names, err := l.store.List(ctx)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	for name := range l.sessions {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	l.mu.Unlock()

	slices.Sort(names)
	return names, nil
}

// Forget closes the session for name and deletes the stored profile
func (l *Library) Forget(ctx context.Context, name string) error {
	l.mu.Lock()
	if s, ok := l.sessions[name]; ok {
		s.Cancel()
		delete(l.sessions, name)
	}
	l.mu.Unlock()
	return l.store.Delete(ctx, name)
}
