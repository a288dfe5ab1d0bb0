package ports

import "novella/internal/domain"

// GuestAccess decides which readers are guests and what they may open
type GuestAccess interface {
	IsGuest(profileName string) bool
	IsEpisodeAccessibleForGuest(n *domain.Novel, episodeID string) bool
}
