package application

import "novella/internal/domain"

// Re-export domain types for use by adapters
type (
	Novel             = domain.Novel
	Episode           = domain.Episode
	Profile           = domain.Profile
	Position          = domain.Position
	View              = domain.View
	Bookmark          = domain.Bookmark
	PendingTransition = domain.PendingTransition
)

// EpisodeSummary is one row of an episode listing
type EpisodeSummary struct {
	Number         int
	ID             string
	Title          string
	Description    string
	Read           int
	Total          int
	Minutes        int
	Accessible     bool
	GuestLocked    bool
	UnlockedForAll bool
	Current        bool
	Timeframe      domain.Timeframe
}

// SummarizeEpisodes lists every episode with the reader's progress and access
func SummarizeEpisodes(n *domain.Novel, p domain.Profile, guestGate func(string) bool, admin bool) []EpisodeSummary {
	out := make([]EpisodeSummary, 0, len(n.Episodes))
	for i := range n.Episodes {
		ep := &n.Episodes[i]
		read, total := domain.EpisodeProgress(ep, p)
		locked := guestGate != nil && !guestGate(ep.ID)
		out = append(out, EpisodeSummary{
			Number:         i + 1,
			ID:             ep.ID,
			Title:          ep.Title,
			Description:    ep.ShortDescription,
			Read:           read,
			Total:          total,
			Minutes:        ep.ReadingMinutes(),
			Accessible:     !locked && domain.IsEpisodeAccessible(ep, p.ActivePaths, admin),
			GuestLocked:    locked,
			UnlockedForAll: ep.UnlockedForAll,
			Current:        ep.ID == p.CurrentEpisodeID,
			Timeframe:      ep.Timeframe(),
		})
	}
	return out
}
