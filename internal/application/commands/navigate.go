package commands

import (
	"context"
	"fmt"

	"novella/internal/application"
	"novella/internal/domain"
)

// Direction names a navigation step
type Direction string

const (
	DirectionNext        Direction = "next"
	DirectionPrevious    Direction = "previous"
	DirectionSubNext     Direction = "sub-next"
	DirectionSubPrevious Direction = "sub-previous"
	DirectionTap         Direction = "tap"
)

// NavigateResult contains the result of a navigation step
type NavigateResult struct {
	Step    application.StepResult
	Message string
}

// NavigateCommand moves the reader one step
type NavigateCommand struct {
	session   *application.Session
	Direction Direction
}

// NewNavigateCommand creates a new NavigateCommand
func NewNavigateCommand(session *application.Session, direction Direction) *NavigateCommand {
	return &NavigateCommand{
		session:   session,
		Direction: direction,
	}
}

// Validate checks the direction
func (c *NavigateCommand) Validate() error {
	switch c.Direction {
	case DirectionNext, DirectionPrevious, DirectionSubNext, DirectionSubPrevious, DirectionTap:
		return nil
	case "":
		return &application.ValidationError{
			Field:   "direction",
			Message: "direction is required",
		}
	default:
		return &application.ValidationError{
			Field:   "direction",
			Message: fmt.Sprintf("unknown direction: %s", c.Direction),
		}
	}
}

// Execute runs the navigation step
func (c *NavigateCommand) Execute(ctx context.Context) (*NavigateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var (
		step application.StepResult
		err  error
	)
	switch c.Direction {
	case DirectionNext:
		step, err = c.session.Next(ctx)
	case DirectionPrevious:
		step, err = c.session.Previous(ctx)
	case DirectionSubNext:
		step, err = c.session.NextSub(ctx)
	case DirectionSubPrevious:
		step, err = c.session.PreviousSub(ctx)
	case DirectionTap:
		step, err = c.session.Tap(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to navigate %s: %w", c.Direction, err)
	}

	return &NavigateResult{
		Step:    step,
		Message: DescribeStep(c.session.Novel(), step),
	}, nil
}

// DescribeStep renders a one-line summary of a step for terminal output
func DescribeStep(n *domain.Novel, step application.StepResult) string {
	out := step.Outcome
	switch {
	case step.Pending != nil && !out.Moved:
		pt := step.Pending
		return fmt.Sprintf("Moving on from %s after %s (transition %s)", n.ParagraphNumber(pt.From.EpisodeID, pt.From.ParagraphIndex), pt.Cause, pt.ID)
	case out.GuestLimitReached:
		return "This episode is only available to members"
	case out.Moved && out.From == out.To:
		return fmt.Sprintf("%s (%d/%d)", step.View.Number, step.View.SubParagraphIndex, step.View.SubParagraphCount)
	case out.Moved:
		return fmt.Sprintf("Moved %s -> %s", n.ParagraphNumber(out.From.EpisodeID, out.From.ParagraphIndex), step.View.Number)
	case out.Reason != "":
		return fmt.Sprintf("Stayed at %s: %s", step.View.Number, out.Reason)
	default:
		return fmt.Sprintf("Stayed at %s", step.View.Number)
	}
}
