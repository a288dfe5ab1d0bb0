package commands

import (
	"context"

	"novella/internal/application"
)

// ListEpisodesCommand lists episodes with progress and access for the reader
type ListEpisodesCommand struct {
	session *application.Session
	Admin   bool
}

// NewListEpisodesCommand creates a new ListEpisodesCommand
func NewListEpisodesCommand(session *application.Session, admin bool) *ListEpisodesCommand {
	return &ListEpisodesCommand{
		session: session,
		Admin:   admin,
	}
}

// Execute runs the list episodes command
func (c *ListEpisodesCommand) Execute(ctx context.Context) ([]application.EpisodeSummary, error) {
	return application.SummarizeEpisodes(c.session.Novel(), c.session.Profile(), c.session.GuestGate(), c.Admin), nil
}
