package application

import (
	"context"
	"slices"
	"testing"

	"novella/internal/domain"
)

func TestLibrarySessionIsCachedPerProfile(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	lib := NewLibrary(storyNovel(), store, SessionConfig{})

	opened := 0
	lib.OnOpen(func(*Session) { opened++ })

	first, err := lib.Session(ctx, "ada")
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	again, _ := lib.Session(ctx, "ada")
	other, _ := lib.Session(ctx, "bo")

	if first != again {
		t.Error("expected the same session for the same profile")
	}
	if first == other {
		t.Error("expected separate sessions for separate profiles")
	}
	if opened != 2 {
		t.Errorf("expected OnOpen to run twice, got %d", opened)
	}
	if _, ok := store.profiles["ada"]; !ok {
		t.Error("expected a new profile to be saved on open")
	}
}

func TestLibrarySessionRequiresName(t *testing.T) {
	lib := NewLibrary(storyNovel(), newMemStore(), SessionConfig{})

	if _, err := lib.Session(context.Background(), " "); err == nil {
		t.Error("expected validation error for empty profile name")
	}
}

func TestLibrarySetNovelReachesEverySession(t *testing.T) {
	ctx := context.Background()
	lib := NewLibrary(storyNovel(), newMemStore(), SessionConfig{})

	s, _ := lib.Session(ctx, "ada")
	if _, err := s.JumpToEpisode(ctx, "ep2"); err != nil {
		t.Fatalf("JumpToEpisode failed: %v", err)
	}

	shorter := storyNovel()
	shorter.Episodes = shorter.Episodes[:1]
	if err := lib.SetNovel(ctx, shorter); err != nil {
		t.Fatalf("SetNovel failed: %v", err)
	}

	if lib.Novel() != shorter {
		t.Error("expected the library to hold the new novel")
	}
	if got := s.Profile().Position(); got != (domain.Position{EpisodeID: "ep1"}) {
		t.Errorf("expected clamp to ep1-0, got %v", got)
	}
}

func TestLibraryProfilesAndForget(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	lib := NewLibrary(storyNovel(), store, SessionConfig{})

	for _, name := range []string{"zoe", "ada"} {
		if _, err := lib.Session(ctx, name); err != nil {
			t.Fatalf("Session %s failed: %v", name, err)
		}
	}

	names, err := lib.Profiles(ctx)
	if err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	if !slices.Equal(names, []string{"ada", "zoe"}) {
		t.Errorf("expected [ada zoe], got %v", names)
	}

	if err := lib.Forget(ctx, "zoe"); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	names, _ = lib.Profiles(ctx)
	if !slices.Equal(names, []string{"ada"}) {
		t.Errorf("expected [ada], got %v", names)
	}
}
