package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"novella/internal/domain"
)

const harborJSON = `{
  "title": "Harbor",
  "episodes": [
    {
      "id": "ep1",
      "title": "Fog",
      "paragraphs": [
        {"id": "a", "type": "text", "content": "Fog rolls in."},
        {"id": "c", "type": "choice", "question": "Follow?", "options": [{"id": "yes", "text": "Yes"}]}
      ]
    }
  ],
  "library": {"items": [], "characters": [], "choices": []}
}`

const harborYAML = `
title: Harbor
episodes:
  - id: ep1
    title: Fog
    paragraphs:
      - id: a
        type: text
        content: Fog rolls in.
library:
  items: []
  characters: []
  choices: []
`

func writeNovel(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write novel: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		wantErr    bool
		errMsg     string
		paragraphs int
	}{
		{
			name:       "json",
			file:       "harbor.json",
			content:    harborJSON,
			paragraphs: 2,
		},
		{
			name:       "yaml",
			file:       "harbor.yaml",
			content:    harborYAML,
			paragraphs: 1,
		},
		{
			name:       "yml extension",
			file:       "harbor.YML",
			content:    harborYAML,
			paragraphs: 1,
		},
		{
			name:    "unknown paragraph type",
			file:    "broken.json",
			content: `{"title": "x", "episodes": [{"id": "ep1", "paragraphs": [{"id": "a", "type": "video"}]}]}`,
			wantErr: true,
			errMsg:  "failed to decode broken.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository(writeNovel(t, tt.file, tt.content))

			n, err := repo.Load(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if n.Title != "Harbor" {
				t.Errorf("expected title Harbor, got %q", n.Title)
			}
			if got := len(n.Episodes[0].Paragraphs); got != tt.paragraphs {
				t.Errorf("expected %d paragraphs, got %d", tt.paragraphs, got)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "missing.json"))

	_, err := repo.Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to read novel") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestNewRepository_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	repo := NewRepository("~/novels/harbor.json")
	if want := filepath.Join(home, "novels", "harbor.json"); repo.Path() != want {
		t.Errorf("expected %s, got %s", want, repo.Path())
	}
}

func TestSave_RoundTrip(t *testing.T) {
	for _, file := range []string{"harbor.json", "harbor.yaml"} {
		t.Run(file, func(t *testing.T) {
			ctx := context.Background()
			src := NewRepository(writeNovel(t, "src.json", harborJSON))
			n, err := src.Load(ctx)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			dst := NewRepository(filepath.Join(t.TempDir(), "out", file))
			if err := dst.Save(ctx, n); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			back, err := dst.Load(ctx)
			if err != nil {
				t.Fatalf("Load after save failed: %v", err)
			}
			ps := back.Episodes[0].Paragraphs
			if len(ps) != 2 {
				t.Fatalf("expected 2 paragraphs, got %d", len(ps))
			}
			if c, ok := ps[1].(*domain.ChoiceParagraph); !ok || c.Options[0].ID != "yes" {
				t.Errorf("expected choice paragraph to survive, got %#v", ps[1])
			}

			entries, _ := os.ReadDir(filepath.Dir(dst.Path()))
			if len(entries) != 1 {
				t.Errorf("expected only the novel file, found %d entries", len(entries))
			}
		})
	}
}
