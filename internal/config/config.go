package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultNovelPath   = "novel.json"
	DefaultProfileName = "reader"
	DefaultServerAddr  = ":8080"
)

// NovelPath returns the novel file from NOVELLA_NOVEL env var,
// falling back to DefaultNovelPath.
func NovelPath() string {
	if env := os.Getenv("NOVELLA_NOVEL"); env != "" {
		return env
	}
	return DefaultNovelPath
}

// ProfileName returns the reader profile from NOVELLA_PROFILE env var,
// falling back to DefaultProfileName.
func ProfileName() string {
	if env := os.Getenv("NOVELLA_PROFILE"); env != "" {
		return env
	}
	return DefaultProfileName
}

// DatabasePath returns the SQLite file from NOVELLA_DB. Empty means the
// store derives a per-novel path under the XDG data home.
func DatabasePath() string {
	return os.Getenv("NOVELLA_DB")
}

// PostgresURL returns the DSN from NOVELLA_POSTGRES_URL. Empty means SQLite.
func PostgresURL() string {
	return os.Getenv("NOVELLA_POSTGRES_URL")
}

// LogLevel parses NOVELLA_LOG_LEVEL, defaulting to info
func LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("NOVELLA_LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger creates a text logger at LogLevel writing to w
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: LogLevel()}))
}

// Config is the reader configuration shared by every binary
type Config struct {
	Novel    string       `yaml:"novel"`
	Profile  string       `yaml:"profile"`
	Database string       `yaml:"database"`
	Postgres string       `yaml:"postgres"`
	Admin    bool         `yaml:"admin"`
	Guest    GuestConfig  `yaml:"guest"`
	Server   ServerConfig `yaml:"server"`
	Timings  Timings      `yaml:"timings"`
}

// GuestConfig controls guest access
type GuestConfig struct {
	Everyone bool     `yaml:"everyone"`
	Names    []string `yaml:"names"`
	Preview  []string `yaml:"preview"`
}

// ServerConfig tunes novella-server
type ServerConfig struct {
	Addr string `yaml:"addr"`
	CORS bool   `yaml:"cors"`
}

// Timings are the reader's deferred-transition delays
type Timings struct {
	FadeDelay       time.Duration `yaml:"fadeDelay"`
	BackgroundDelay time.Duration `yaml:"backgroundDelay"`
	WatchDebounce   time.Duration `yaml:"watchDebounce"`
}

// Default builds the configuration from the environment
func Default() *Config {
	return &Config{
		Novel:    NovelPath(),
		Profile:  ProfileName(),
		Database: DatabasePath(),
		Postgres: PostgresURL(),
		Server:   ServerConfig{Addr: DefaultServerAddr},
		Timings: Timings{
			FadeDelay:       300 * time.Millisecond,
			BackgroundDelay: 2 * time.Second,
			WatchDebounce:   300 * time.Millisecond,
		},
	}
}

// Load reads a YAML config file over the environment defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Novel) == "" {
		return fmt.Errorf("novel path is required")
	}
	if strings.TrimSpace(cfg.Profile) == "" {
		return fmt.Errorf("profile is required")
	}
	if cfg.Database != "" && cfg.Postgres != "" {
		return fmt.Errorf("database and postgres are mutually exclusive")
	}
	if cfg.Timings.FadeDelay < 0 || cfg.Timings.BackgroundDelay < 0 || cfg.Timings.WatchDebounce < 0 {
		return fmt.Errorf("timings must not be negative")
	}
	for i, name := range cfg.Guest.Names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("guest %d name is required", i)
		}
	}
	return nil
}
