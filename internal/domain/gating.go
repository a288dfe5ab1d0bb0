package domain

import "slices"

// IsParagraphAccessible implements the linear unlock model: index 0 is always
// open, any read position stays open, and reading index i opens i+1.
func IsParagraphAccessible(p Profile, episodeID string, index int) bool {
	if index == 0 {
		return true
	}
	if index < 0 {
		return false
	}
	if p.HasRead(ReadKey(episodeID, index)) {
		return true
	}
	return p.HasRead(ReadKey(episodeID, index-1))
}

// IsEpisodeAccessibleForGuest opens the first episode and any episode
// unlocked for everyone. Unknown episodes are closed.
func IsEpisodeAccessibleForGuest(n *Novel, episodeID string) bool {
	idx := n.EpisodeIndex(episodeID)
	if idx < 0 {
		return false
	}
	return idx == 0 || n.Episodes[idx].UnlockedForAll
}

// IsEpisodeAccessible applies path requirements to an episode
func IsEpisodeAccessible(ep *Episode, activePaths []string, admin bool) bool {
	if ep == nil {
		return false
	}
	if admin || ep.UnlockedForAll {
		return true
	}
	if len(ep.RequiredPaths) > 0 && !anyActive(ep.RequiredPaths, activePaths) {
		return false
	}
	if ep.RequiredPath != "" && !slices.Contains(activePaths, ep.RequiredPath) {
		return false
	}
	return true
}

// IsParagraphVisible applies a paragraph's requiredPaths: any one active path is enough
func IsParagraphVisible(par Paragraph, activePaths []string) bool {
	if par == nil {
		return false
	}
	req := par.Base().RequiredPaths
	return len(req) == 0 || anyActive(req, activePaths)
}

func anyActive(required, active []string) bool {
	for _, r := range required {
		if slices.Contains(active, r) {
			return true
		}
	}
	return false
}

// EpisodeProgress counts read paragraphs of an episode
func EpisodeProgress(ep *Episode, p Profile) (read, total int) {
	if ep == nil {
		return 0, 0
	}
	for i := range ep.Paragraphs {
		if p.HasRead(ReadKey(ep.ID, i)) {
			read++
		}
	}
	return read, len(ep.Paragraphs)
}

// EpisodeFullyRead reports whether every paragraph of ep was read
func EpisodeFullyRead(ep *Episode, p Profile) bool {
	read, total := EpisodeProgress(ep, p)
	return total > 0 && read == total
}

// CompletedEpisodes lists fully read episodes in novel order
func CompletedEpisodes(n *Novel, p Profile) []string {
	done := []string{}
	if n == nil {
		return done
	}
	for i := range n.Episodes {
		if EpisodeFullyRead(&n.Episodes[i], p) {
			done = append(done, n.Episodes[i].ID)
		}
	}
	return done
}
