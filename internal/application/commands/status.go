package commands

import (
	"context"
	"fmt"
	"strings"

	"novella/internal/application"
	"novella/internal/domain"
)

// StatusResult describes where the reader is
type StatusResult struct {
	View    domain.View
	Pending *domain.PendingTransition
	Message string
}

// StatusCommand reports the current paragraph
type StatusCommand struct {
	session *application.Session
}

// NewStatusCommand creates a new StatusCommand
func NewStatusCommand(session *application.Session) *StatusCommand {
	return &StatusCommand{session: session}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context) (*StatusResult, error) {
	view := c.session.View()
	if !view.Found {
		return nil, fmt.Errorf("position %s: %w", view.Position, application.ErrNotFound)
	}

	return &StatusResult{
		View:    view,
		Pending: c.session.Pending(),
		Message: RenderView(view),
	}, nil
}

// RenderView formats a view as plain text
func RenderView(v domain.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", v.Number, v.EpisodeTitle)
	if v.Bookmarked {
		b.WriteString(" *")
	}
	b.WriteString("\n")

	if v.Speaker != "" {
		fmt.Fprintf(&b, "%s: ", v.Speaker)
	}
	if v.Text != "" {
		b.WriteString(v.Text)
		b.WriteString("\n")
	}

	switch v.Kind {
	case domain.KindChoice:
		if len(v.Options) == 0 {
			b.WriteString("  (no options left)\n")
		}
		for _, opt := range v.Options {
			fmt.Fprintf(&b, "  - %s: %s\n", opt.ID, opt.Text)
		}
	case domain.KindItem:
		if it, ok := v.Paragraph.(*domain.ItemParagraph); ok {
			fmt.Fprintf(&b, "  [item] %s\n", it.Name)
		}
	case domain.KindImage, domain.KindBackground, domain.KindComic, domain.KindPause:
		fmt.Fprintf(&b, "  (%s)\n", v.Kind)
	case domain.KindText, domain.KindDialogue:
		if v.HasSubParagraphs {
			fmt.Fprintf(&b, "  (%d/%d)\n", v.SubParagraphIndex, v.SubParagraphCount)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
