package access

import (
	"slices"

	"novella/internal/domain"
	"novella/internal/ports"
)

// GuestPolicy treats named profiles, or every profile, as guests and lets
// them open the first episode and episodes unlocked for all
type GuestPolicy struct {
	everyone bool
	guests   []string
	extra    []string
}

// Ensure GuestPolicy implements GuestAccess
var _ ports.GuestAccess = (*GuestPolicy)(nil)

// NewGuestPolicy creates a policy. With everyone set, every profile is a guest.
func NewGuestPolicy(everyone bool, guests ...string) *GuestPolicy {
	return &GuestPolicy{everyone: everyone, guests: guests}
}

// WithPreview opens additional episodes to guests
func (g *GuestPolicy) WithPreview(episodeIDs ...string) *GuestPolicy {
	g.extra = append(slices.Clone(g.extra), episodeIDs...)
	return g
}

// IsGuest reports whether the profile reads as a guest
func (g *GuestPolicy) IsGuest(profileName string) bool {
	return g.everyone || slices.Contains(g.guests, profileName)
}

// IsEpisodeAccessibleForGuest applies the novel's own rules, then the preview list
func (g *GuestPolicy) IsEpisodeAccessibleForGuest(n *domain.Novel, episodeID string) bool {
	if domain.IsEpisodeAccessibleForGuest(n, episodeID) {
		return true
	}
	return n.Episode(episodeID) != nil && slices.Contains(g.extra, episodeID)
}

// Open lets everyone read everything
type Open struct{}

// Ensure Open implements GuestAccess
var _ ports.GuestAccess = Open{}

func (Open) IsGuest(string) bool { return false }

func (Open) IsEpisodeAccessibleForGuest(n *domain.Novel, episodeID string) bool {
	return n.Episode(episodeID) != nil
}
