package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEnvDefaults(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
		get  func() string
		want string
	}{
		{"novel default", "NOVELLA_NOVEL", "", NovelPath, DefaultNovelPath},
		{"novel from env", "NOVELLA_NOVEL", "/books/tower.yaml", NovelPath, "/books/tower.yaml"},
		{"profile default", "NOVELLA_PROFILE", "", ProfileName, DefaultProfileName},
		{"profile from env", "NOVELLA_PROFILE", "ada", ProfileName, "ada"},
		{"database unset", "NOVELLA_DB", "", DatabasePath, ""},
		{"postgres from env", "NOVELLA_POSTGRES_URL", "postgres://localhost/novella", PostgresURL, "postgres://localhost/novella"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			if got := tt.get(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	t.Setenv("NOVELLA_LOG_LEVEL", "debug")
	if got := LogLevel(); got != slog.LevelDebug {
		t.Errorf("expected debug, got %v", got)
	}

	t.Setenv("NOVELLA_LOG_LEVEL", "chatty")
	if got := LogLevel(); got != slog.LevelInfo {
		t.Errorf("expected info fallback, got %v", got)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("NOVELLA_NOVEL", "")
	t.Setenv("NOVELLA_PROFILE", "")
	t.Setenv("NOVELLA_DB", "")
	t.Setenv("NOVELLA_POSTGRES_URL", "")

	t.Run("valid config loads", func(t *testing.T) {
		path := writeTempConfig(t, `novel: ./tower.yaml
profile: ada
guest:
  names: [bob]
  preview: [ep2]
server:
  addr: ":9090"
timings:
  fadeDelay: 150ms
  backgroundDelay: 1s
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Novel != "./tower.yaml" || cfg.Profile != "ada" {
			t.Errorf("unexpected config %+v", cfg)
		}
		if cfg.Timings.FadeDelay != 150*time.Millisecond || cfg.Timings.BackgroundDelay != time.Second {
			t.Errorf("unexpected timings %+v", cfg.Timings)
		}
		if cfg.Timings.WatchDebounce != 300*time.Millisecond {
			t.Errorf("expected default debounce kept, got %v", cfg.Timings.WatchDebounce)
		}
		if cfg.Server.Addr != ":9090" || len(cfg.Guest.Names) != 1 {
			t.Errorf("unexpected server or guest config %+v", cfg)
		}
	})

	t.Run("no path uses defaults", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Novel != DefaultNovelPath || cfg.Server.Addr != DefaultServerAddr {
			t.Errorf("unexpected defaults %+v", cfg)
		}
	})

	t.Run("both stores", func(t *testing.T) {
		path := writeTempConfig(t, "database: ./p.db\npostgres: postgres://localhost/novella\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("negative timing", func(t *testing.T) {
		path := writeTempConfig(t, "timings:\n  fadeDelay: -1s\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("empty profile", func(t *testing.T) {
		path := writeTempConfig(t, "profile: \"  \"\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "novel: [\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "novella.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
