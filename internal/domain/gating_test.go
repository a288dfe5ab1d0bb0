package domain

import (
	"slices"
	"testing"
)

func TestIsParagraphAccessible(t *testing.T) {
	p := Profile{ReadParagraphs: []string{"ep1-0", "ep1-1", "ep1-4"}}

	tests := []struct {
		index int
		want  bool
	}{
		{0, true},
		{1, true},  // itself read
		{2, true},  // predecessor read
		{3, false}, // neither read
		{4, true},
		{5, true},
		{6, false},
		{-1, false},
	}

	for _, tt := range tests {
		if got := IsParagraphAccessible(p, "ep1", tt.index); got != tt.want {
			t.Errorf("index %d: expected %v, got %v", tt.index, tt.want, got)
		}
	}
}

func TestSequentialUnlockMatchesReadSet(t *testing.T) {
	read := []string{"ep1-2", "ep1-3", "ep1-7"}
	p := Profile{ReadParagraphs: read}
	for i := 1; i < 10; i++ {
		want := slices.Contains(read, ReadKey("ep1", i)) || slices.Contains(read, ReadKey("ep1", i-1))
		if got := IsParagraphAccessible(p, "ep1", i); got != want {
			t.Errorf("index %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	p := Profile{ReadParagraphs: []string{"ep1-0"}}
	once := p.MarkRead("ep1-1")
	twice := once.MarkRead("ep1-1")
	if !slices.Equal(once.ReadParagraphs, twice.ReadParagraphs) {
		t.Errorf("expected %v, got %v", once.ReadParagraphs, twice.ReadParagraphs)
	}
	if len(p.ReadParagraphs) != 1 {
		t.Error("expected original profile untouched")
	}
}

func TestIsEpisodeAccessibleForGuest(t *testing.T) {
	n := &Novel{Episodes: []Episode{
		{ID: "first"},
		{ID: "locked"},
		{ID: "free", UnlockedForAll: true},
	}}

	tests := []struct {
		id   string
		want bool
	}{
		{"first", true},
		{"locked", false},
		{"free", true},
		{"unknown", false},
	}
	for _, tt := range tests {
		if got := IsEpisodeAccessibleForGuest(n, tt.id); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.id, tt.want, got)
		}
	}
}

func TestIsEpisodeAccessible(t *testing.T) {
	tests := []struct {
		name   string
		ep     *Episode
		active []string
		admin  bool
		want   bool
	}{
		{name: "nil episode", ep: nil, want: false},
		{name: "no requirements", ep: &Episode{ID: "e"}, want: true},
		{name: "required path missing", ep: &Episode{ID: "e", RequiredPath: "p"}, want: false},
		{name: "required path active", ep: &Episode{ID: "e", RequiredPath: "p"}, active: []string{"p"}, want: true},
		{name: "any of required paths", ep: &Episode{ID: "e", RequiredPaths: []string{"x", "y"}}, active: []string{"y"}, want: true},
		{name: "none of required paths", ep: &Episode{ID: "e", RequiredPaths: []string{"x", "y"}}, active: []string{"z"}, want: false},
		{name: "admin bypasses", ep: &Episode{ID: "e", RequiredPath: "p"}, admin: true, want: true},
		{name: "unlocked for all", ep: &Episode{ID: "e", RequiredPath: "p", UnlockedForAll: true}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEpisodeAccessible(tt.ep, tt.active, tt.admin); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsParagraphVisible(t *testing.T) {
	par := text("a", "A.")
	if !IsParagraphVisible(par, nil) {
		t.Error("expected ungated paragraph to be visible")
	}
	par.RequiredPaths = []string{"p1", "p2"}
	if IsParagraphVisible(par, []string{"p3"}) {
		t.Error("expected gated paragraph to be hidden")
	}
	if !IsParagraphVisible(par, []string{"p2"}) {
		t.Error("expected one active path to be enough")
	}
	if IsParagraphVisible(nil, nil) {
		t.Error("expected nil paragraph to be hidden")
	}
}

func TestEpisodeProgress(t *testing.T) {
	n := linearNovel()
	p := Profile{ReadParagraphs: []string{"ep1-0", "ep1-1", "ep2-5"}}

	read, total := EpisodeProgress(&n.Episodes[0], p)
	if read != 2 || total != 2 {
		t.Errorf("expected 2/2, got %d/%d", read, total)
	}
	if got := CompletedEpisodes(n, p); !slices.Equal(got, []string{"ep1"}) {
		t.Errorf("expected [ep1], got %v", got)
	}
}
