package commands

import (
	"context"
	"fmt"

	"novella/internal/application"
)

// ResetResult contains the result of resetting a profile
type ResetResult struct {
	Profile string
	Message string
}

// ResetProfileCommand starts the reader over from the first paragraph
type ResetProfileCommand struct {
	session *application.Session
}

// NewResetProfileCommand creates a new ResetProfileCommand
func NewResetProfileCommand(session *application.Session) *ResetProfileCommand {
	return &ResetProfileCommand{session: session}
}

// Execute runs the reset command
func (c *ResetProfileCommand) Execute(ctx context.Context) (*ResetResult, error) {
	p, err := c.session.Reset(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reset profile: %w", err)
	}

	return &ResetResult{
		Profile: p.Name,
		Message: fmt.Sprintf("Reset %s to %s", p.Name, c.session.View().Number),
	}, nil
}
