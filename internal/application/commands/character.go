package commands

import (
	"context"
	"fmt"

	"novella/internal/application"
)

// AnnotateCharacterResult contains the result of noting a character
type AnnotateCharacterResult struct {
	CharacterID string
	Message     string
}

// AnnotateCharacterCommand keeps a reader's note on a met character
type AnnotateCharacterCommand struct {
	session     *application.Session
	CharacterID string
	Comment     string
}

// NewAnnotateCharacterCommand creates a new AnnotateCharacterCommand
func NewAnnotateCharacterCommand(session *application.Session, characterID, comment string) *AnnotateCharacterCommand {
	return &AnnotateCharacterCommand{
		session:     session,
		CharacterID: characterID,
		Comment:     comment,
	}
}

// Validate checks the character id
func (c *AnnotateCharacterCommand) Validate() error {
	return application.ValidateRequired("characterID", c.CharacterID)
}

// Execute runs the annotate command. An empty comment clears the note.
func (c *AnnotateCharacterCommand) Execute(ctx context.Context) (*AnnotateCharacterResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.session.AnnotateCharacter(ctx, c.CharacterID, c.Comment); err != nil {
		return nil, fmt.Errorf("failed to annotate character: %w", err)
	}

	msg := fmt.Sprintf("Noted character %s", c.CharacterID)
	if c.Comment == "" {
		msg = fmt.Sprintf("Cleared note on character %s", c.CharacterID)
	}
	return &AnnotateCharacterResult{
		CharacterID: c.CharacterID,
		Message:     msg,
	}, nil
}
