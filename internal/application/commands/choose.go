package commands

import (
	"context"
	"fmt"

	"novella/internal/application"
)

// ChooseResult contains the result of picking an option
type ChooseResult struct {
	OptionID string
	Step     application.StepResult
	Message  string
}

// ChooseCommand picks an option of the current choice paragraph
type ChooseCommand struct {
	session  *application.Session
	OptionID string
}

// NewChooseCommand creates a new ChooseCommand
func NewChooseCommand(session *application.Session, optionID string) *ChooseCommand {
	return &ChooseCommand{
		session:  session,
		OptionID: optionID,
	}
}

// Validate checks the option id
func (c *ChooseCommand) Validate() error {
	return application.ValidateRequired("optionID", c.OptionID)
}

// Execute runs the choose command
func (c *ChooseCommand) Execute(ctx context.Context) (*ChooseResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	step, err := c.session.Choose(ctx, c.OptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to choose %s: %w", c.OptionID, err)
	}

	return &ChooseResult{
		OptionID: c.OptionID,
		Step:     step,
		Message:  fmt.Sprintf("Chose %s. %s", c.OptionID, DescribeStep(c.session.Novel(), step)),
	}, nil
}

// JumpResult contains the result of starting an episode
type JumpResult struct {
	EpisodeID string
	Step      application.StepResult
	Message   string
}

// JumpToEpisodeCommand starts reading an episode from the top
type JumpToEpisodeCommand struct {
	session   *application.Session
	EpisodeID string
}

// NewJumpToEpisodeCommand creates a new JumpToEpisodeCommand
func NewJumpToEpisodeCommand(session *application.Session, episodeID string) *JumpToEpisodeCommand {
	return &JumpToEpisodeCommand{
		session:   session,
		EpisodeID: episodeID,
	}
}

// Validate checks the episode id
func (c *JumpToEpisodeCommand) Validate() error {
	return application.ValidateRequired("episodeID", c.EpisodeID)
}

// Execute runs the jump command
func (c *JumpToEpisodeCommand) Execute(ctx context.Context) (*JumpResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	step, err := c.session.JumpToEpisode(ctx, c.EpisodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to open episode: %w", err)
	}

	return &JumpResult{
		EpisodeID: c.EpisodeID,
		Step:      step,
		Message:   fmt.Sprintf("Opened episode %s at %s", c.EpisodeID, step.View.Number),
	}, nil
}

// CommitResult contains the result of applying a pending transition
type CommitResult struct {
	Step    application.StepResult
	Message string
}

// CommitTransitionCommand applies a pending transition by id
type CommitTransitionCommand struct {
	session      *application.Session
	TransitionID string
}

// NewCommitTransitionCommand creates a new CommitTransitionCommand
func NewCommitTransitionCommand(session *application.Session, transitionID string) *CommitTransitionCommand {
	return &CommitTransitionCommand{
		session:      session,
		TransitionID: transitionID,
	}
}

// Validate checks the transition id
func (c *CommitTransitionCommand) Validate() error {
	return application.ValidateRequired("transitionID", c.TransitionID)
}

// Execute runs the commit command
func (c *CommitTransitionCommand) Execute(ctx context.Context) (*CommitResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	step, err := c.session.Commit(ctx, c.TransitionID)
	if err != nil {
		return nil, err
	}

	return &CommitResult{
		Step:    step,
		Message: DescribeStep(c.session.Novel(), step),
	}, nil
}
