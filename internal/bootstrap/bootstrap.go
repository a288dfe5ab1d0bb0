// Package bootstrap opens the stores and the library every binary reads from
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"novella/internal/adapters/access"
	"novella/internal/adapters/filesystem"
	"novella/internal/adapters/postgres"
	"novella/internal/adapters/sqlite"
	"novella/internal/application"
	"novella/internal/config"
	"novella/internal/domain"
	"novella/internal/ports"
)

// Runtime holds the adapters selected by the configuration
type Runtime struct {
	Config   *config.Config
	File     *filesystem.Repository
	Novels   ports.NovelRepository
	Profiles ports.ProfileStore
	Access   ports.GuestAccess
	Logger   *slog.Logger

	pg *postgres.Client
}

// Open selects Postgres when a DSN is configured and SQLite otherwise.
// The novel file is always the authoring source; with Postgres the
// published copy lives in the novels table.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rt := &Runtime{
		Config: cfg,
		File:   filesystem.NewRepository(cfg.Novel),
		Access: GuestAccess(cfg.Guest),
		Logger: logger,
	}

	if cfg.Postgres != "" {
		client, err := postgres.New(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		rt.pg = client
		rt.Novels = client.Novels(NovelID(cfg.Novel))
		rt.Profiles = client.Profiles()
		logger.Debug("using postgres", "novel", NovelID(cfg.Novel))
		return rt, nil
	}

	dbPath := cfg.Database
	if dbPath == "" {
		dbPath = sqlite.DefaultPath(rt.File.Path())
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}
	rt.Novels = rt.File
	rt.Profiles = store
	logger.Debug("using sqlite", "path", store.Path())
	return rt, nil
}

// GuestAccess builds the guest policy from configuration
func GuestAccess(cfg config.GuestConfig) ports.GuestAccess {
	if !cfg.Everyone && len(cfg.Names) == 0 {
		return access.Open{}
	}
	return access.NewGuestPolicy(cfg.Everyone, cfg.Names...).WithPreview(cfg.Preview...)
}

// NovelID names a novel by its file's base name
func NovelID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SessionConfig maps configuration onto session settings
func (r *Runtime) SessionConfig() application.SessionConfig {
	return application.SessionConfig{
		FadeDelay:       r.Config.Timings.FadeDelay,
		BackgroundDelay: r.Config.Timings.BackgroundDelay,
		Admin:           r.Config.Admin,
		Access:          r.Access,
		Logger:          r.Logger,
	}
}

// LoadNovel reads and validates the novel
func (r *Runtime) LoadNovel(ctx context.Context) (*domain.Novel, error) {
	n, err := r.Novels.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := application.ValidateNovel(n); err != nil {
		return nil, fmt.Errorf("novel is invalid: %w", err)
	}
	return n, nil
}

// Library loads the novel and opens a library over the profile store
func (r *Runtime) Library(ctx context.Context) (*application.Library, error) {
	n, err := r.LoadNovel(ctx)
	if err != nil {
		return nil, err
	}
	return application.NewLibrary(n, r.Profiles, r.SessionConfig()), nil
}

// Migrator returns the schema migrator, or an error without Postgres
func (r *Runtime) Migrator() (*postgres.Migrator, error) {
	if r.Config.Postgres == "" {
		return nil, errors.New("migrations need a postgres DSN")
	}
	return postgres.NewMigrator(r.Config.Postgres)
}

// Publish copies the novel file into Postgres
func (r *Runtime) Publish(ctx context.Context) (*domain.Novel, error) {
	if r.pg == nil {
		return nil, errors.New("publishing needs a postgres DSN")
	}
	n, err := r.File.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := application.ValidateNovel(n); err != nil {
		return nil, fmt.Errorf("novel is invalid: %w", err)
	}
	if err := r.Novels.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Close releases the stores
func (r *Runtime) Close() error {
	var errs []error
	if r.Profiles != nil {
		errs = append(errs, r.Profiles.Close())
	}
	if r.pg != nil {
		errs = append(errs, r.pg.Close())
	}
	return errors.Join(errs...)
}
