package commands

import (
	"context"
	"fmt"

	"novella/internal/application"
	"novella/internal/ports"
)

// ValidateNovelResult summarizes a checked novel
type ValidateNovelResult struct {
	Episodes   int
	Paragraphs int
	Message    string
}

// ValidateNovelCommand loads the novel and checks its content graph
type ValidateNovelCommand struct {
	repo ports.NovelRepository
}

// NewValidateNovelCommand creates a new ValidateNovelCommand
func NewValidateNovelCommand(repo ports.NovelRepository) *ValidateNovelCommand {
	return &ValidateNovelCommand{repo: repo}
}

// Execute runs the validate command
func (c *ValidateNovelCommand) Execute(ctx context.Context) (*ValidateNovelResult, error) {
	n, err := c.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load novel: %w", err)
	}
	if err := application.ValidateNovel(n); err != nil {
		return nil, err
	}

	paragraphs := 0
	for _, ep := range n.Episodes {
		paragraphs += len(ep.Paragraphs)
	}
	return &ValidateNovelResult{
		Episodes:   len(n.Episodes),
		Paragraphs: paragraphs,
		Message:    fmt.Sprintf("%s: %d episodes, %d paragraphs, no problems found", n.Title, len(n.Episodes), paragraphs),
	}, nil
}
