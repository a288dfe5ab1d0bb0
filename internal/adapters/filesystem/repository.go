package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"novella/internal/domain"
	"novella/internal/ports"

	"gopkg.in/yaml.v3"
)

// Repository implements ports.NovelRepository over a single JSON or YAML file
type Repository struct {
	path string
}

// Ensure Repository implements NovelRepository
var _ ports.NovelRepository = (*Repository)(nil)

// NewRepository creates a new filesystem repository
func NewRepository(path string) *Repository {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return &Repository{path: path}
}

// Path returns the novel file
func (r *Repository) Path() string {
	return r.path
}

// isYAML reports whether the file extension selects the YAML codec
func (r *Repository) isYAML() bool {
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads and decodes the novel
func (r *Repository) Load(ctx context.Context) (*domain.Novel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read novel: %w", err)
	}

	var n *domain.Novel
	if r.isYAML() {
		n, err = domain.DecodeNovelYAML(data)
	} else {
		n, err = domain.DecodeNovelJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(r.path), err)
	}
	return n, nil
}

// Save encodes the novel and replaces the file atomically
func (r *Repository) Save(ctx context.Context, n *domain.Novel) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if r.isYAML() {
		data, err = yaml.Marshal(n)
	} else {
		data, err = json.MarshalIndent(n, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode novel: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "."+filepath.Base(r.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write novel: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write novel: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace novel: %w", err)
	}
	return nil
}
