package domain

import "testing"

func TestAddBookmark(t *testing.T) {
	p := Profile{}
	pos := Position{EpisodeID: "ep1", ParagraphIndex: 3}

	p, first := AddBookmark(p, pos, "nice line", "b1", testNow)
	if first.ID != "b1" || first.Comment != "nice line" {
		t.Fatalf("unexpected bookmark %+v", first)
	}

	p, again := AddBookmark(p, pos, "even nicer", "b2", testNow)
	if len(p.Bookmarks) != 1 {
		t.Fatalf("expected one bookmark per position, got %d", len(p.Bookmarks))
	}
	if again.ID != "b1" || again.Comment != "even nicer" {
		t.Errorf("expected comment updated on original bookmark, got %+v", again)
	}

	if _, ok := BookmarkAt(p, pos); !ok {
		t.Error("expected bookmark at position")
	}
}

func TestRemoveBookmark(t *testing.T) {
	p := Profile{Bookmarks: []Bookmark{{ID: "b1"}, {ID: "b2"}}}

	got, ok := RemoveBookmark(p, "b1")
	if !ok || len(got.Bookmarks) != 1 || got.Bookmarks[0].ID != "b2" {
		t.Errorf("expected only b2 left, got %+v", got.Bookmarks)
	}
	if len(p.Bookmarks) != 2 {
		t.Error("expected original profile untouched")
	}
	if _, ok := RemoveBookmark(p, "missing"); ok {
		t.Error("expected removing unknown bookmark to report false")
	}
}

func TestBookmarksSorted(t *testing.T) {
	n := linearNovel()
	p := Profile{Bookmarks: []Bookmark{
		{ID: "late", EpisodeID: "ep2", ParagraphIndex: 0},
		{ID: "mid", EpisodeID: "ep1", ParagraphIndex: 1},
		{ID: "early", EpisodeID: "ep1", ParagraphIndex: 0},
	}}

	got := BookmarksSorted(n, p)
	want := []string{"early", "mid", "late"}
	for i, b := range got {
		if b.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], b.ID)
		}
	}
}
