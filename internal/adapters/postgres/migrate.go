package postgres

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNoChange is returned when the schema is already at the requested version
var ErrNoChange = errors.New("no change")

// Migrator applies the embedded schema migrations
type Migrator struct {
	dsn string
}

// NewMigrator creates a migrator for a postgres:// DSN
func NewMigrator(dsn string) (*Migrator, error) {
	if dsn == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	return &Migrator{dsn: dsn}, nil
}

// migrateURL rewrites the DSN scheme to the one the pgx/v5 migrate driver registers
func migrateURL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	mig, closer, err := m.instance()
	if err != nil {
		return err
	}
	defer closer()
	if err := mig.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return ErrNoChange
		}
		return fmt.Errorf("failed to migrate up: %w", err)
	}
	return nil
}

// Down reverts the latest migration
func (m *Migrator) Down() error {
	mig, closer, err := m.instance()
	if err != nil {
		return err
	}
	defer closer()
	if err := mig.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return ErrNoChange
		}
		return fmt.Errorf("failed to migrate down: %w", err)
	}
	return nil
}

// Version reports the applied schema version
func (m *Migrator) Version() (uint, bool, error) {
	mig, closer, err := m.instance()
	if err != nil {
		return 0, false, err
	}
	defer closer()
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (m *Migrator) instance() (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open migrations: %w", err)
	}
	mig, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(m.dsn))
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to create migrator: %w", err)
	}
	return mig, func() { mig.Close() }, nil
}
