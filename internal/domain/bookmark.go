package domain

import (
	"slices"
	"time"
)

// AddBookmark keeps one bookmark per position. Bookmarking a position again
// replaces its comment and keeps the original id.
func AddBookmark(p Profile, pos Position, comment, id string, now time.Time) (Profile, Bookmark) {
	p.Bookmarks = slices.Clone(p.Bookmarks)
	for i, b := range p.Bookmarks {
		if b.EpisodeID == pos.EpisodeID && b.ParagraphIndex == pos.ParagraphIndex {
			p.Bookmarks[i].Comment = comment
			return p, p.Bookmarks[i]
		}
	}

	b := Bookmark{
		ID:             id,
		EpisodeID:      pos.EpisodeID,
		ParagraphIndex: pos.ParagraphIndex,
		Comment:        comment,
		CreatedAt:      now,
	}
	p.Bookmarks = append(p.Bookmarks, b)
	return p, b
}

// RemoveBookmark deletes the bookmark with id, reporting whether it existed
func RemoveBookmark(p Profile, id string) (Profile, bool) {
	idx := slices.IndexFunc(p.Bookmarks, func(b Bookmark) bool { return b.ID == id })
	if idx < 0 {
		return p, false
	}
	p.Bookmarks = slices.Delete(slices.Clone(p.Bookmarks), idx, idx+1)
	return p, true
}

// BookmarkAt returns the bookmark at pos, if any
func BookmarkAt(p Profile, pos Position) (Bookmark, bool) {
	for _, b := range p.Bookmarks {
		if b.EpisodeID == pos.EpisodeID && b.ParagraphIndex == pos.ParagraphIndex {
			return b, true
		}
	}
	return Bookmark{}, false
}

// BookmarksSorted orders bookmarks by episode sequence, then paragraph
func BookmarksSorted(n *Novel, p Profile) []Bookmark {
	out := slices.Clone(p.Bookmarks)
	slices.SortStableFunc(out, func(a, b Bookmark) int {
		if ea, eb := n.EpisodeIndex(a.EpisodeID), n.EpisodeIndex(b.EpisodeID); ea != eb {
			return ea - eb
		}
		return a.ParagraphIndex - b.ParagraphIndex
	})
	return out
}
