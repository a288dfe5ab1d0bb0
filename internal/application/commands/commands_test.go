package commands

import (
	"context"
	"errors"
	"testing"

	"novella/internal/application"
	"novella/internal/domain"
)

func TestNavigateCommand_Validate(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		wantErr   bool
		errMsg    string
	}{
		{
			name:      "next",
			direction: DirectionNext,
			wantErr:   false,
		},
		{
			name:      "tap",
			direction: DirectionTap,
			wantErr:   false,
		},
		{
			name:      "empty direction",
			direction: "",
			wantErr:   true,
			errMsg:    "direction is required",
		},
		{
			name:      "unknown direction",
			direction: "sideways",
			wantErr:   true,
			errMsg:    "unknown direction: sideways",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &NavigateCommand{Direction: tt.direction}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestNavigateCommand_Execute(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, domain.Position{EpisodeID: "ep1"})

	result, err := NewNavigateCommand(session, DirectionNext).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Message != "Moved 1.1 -> 1.2" {
		t.Errorf("unexpected message %q", result.Message)
	}

	result, err = NewNavigateCommand(session, DirectionNext).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !contains(result.Message, "Stayed at 1.2") {
		t.Errorf("expected choice to hold the reader, got %q", result.Message)
	}
}

func TestChooseCommand(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		optionID string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "empty option",
			optionID: "",
			wantErr:  true,
			errMsg:   "option ID is required",
		},
		{
			name:     "unknown option",
			optionID: "fly",
			wantErr:  true,
			errMsg:   "option unavailable",
		},
		{
			name:     "valid option",
			optionID: "climb",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newTestSession(t, domain.Position{EpisodeID: "ep1", ParagraphIndex: 1})
			result, err := NewChooseCommand(session, tt.optionID).Execute(ctx)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !contains(result.Message, "Moved 1.2 -> 2.1") {
				t.Errorf("unexpected message %q", result.Message)
			}
			if !session.Profile().HasPath("brave") {
				t.Error("expected path brave to be active")
			}
		})
	}
}

func TestStatusCommand(t *testing.T) {
	session := newTestSession(t, domain.Position{EpisodeID: "ep1", ParagraphIndex: 1})

	result, err := NewStatusCommand(session).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	for _, want := range []string{"[1.2] Shore", "Climb the tower?", "- climb: Climb", "- wait: Wait"} {
		if !contains(result.Message, want) {
			t.Errorf("expected status containing %q, got %q", want, result.Message)
		}
	}
}

func TestBookmarkCommands(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, domain.Position{EpisodeID: "ep1"})

	added, err := NewAddBookmarkCommand(session, "good start").Execute(ctx)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !contains(added.Message, "Bookmarked 1.1") {
		t.Errorf("unexpected message %q", added.Message)
	}

	entries, _ := NewListBookmarksCommand(session).Execute(ctx)
	if len(entries) != 1 || entries[0].Number != "1.1" || entries[0].Comment != "good start" {
		t.Errorf("unexpected bookmarks %+v", entries)
	}

	if _, err := NewRemoveBookmarkCommand(session, "").Execute(ctx); err == nil {
		t.Error("expected validation error for empty id")
	}
	if _, err := NewRemoveBookmarkCommand(session, "missing").Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := NewRemoveBookmarkCommand(session, added.Bookmark.ID).Execute(ctx); err != nil {
		t.Errorf("remove failed: %v", err)
	}
}

func TestListEpisodesCommand(t *testing.T) {
	session := newTestSession(t, domain.Position{EpisodeID: "ep1", ParagraphIndex: 1})
	_, _ = session.Update(context.Background(), func(p domain.Profile) domain.Profile {
		return p.MarkRead("ep1-0")
	})

	episodes, err := NewListEpisodesCommand(session, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(episodes) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(episodes))
	}
	first := episodes[0]
	if first.Read != 1 || first.Total != 3 || !first.Current || !first.Accessible {
		t.Errorf("unexpected summary %+v", first)
	}
	if episodes[1].GuestLocked {
		t.Error("expected members to see every episode unlocked")
	}
}

func TestInventoryCommand(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, domain.Position{EpisodeID: "ep1", ParagraphIndex: 1})

	if _, err := NewChooseCommand(session, "wait").Execute(ctx); err != nil {
		t.Fatalf("choose failed: %v", err)
	}

	inv, err := NewInventoryCommand(session).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(inv.Collectibles) != 1 || inv.Collectibles[0].Name != "Shell" {
		t.Errorf("expected the shell, got %+v", inv.Collectibles)
	}
	if len(inv.StoryItems) != 0 {
		t.Errorf("expected no story items, got %+v", inv.StoryItems)
	}
}

func TestValidateNovelCommand(t *testing.T) {
	ctx := context.Background()

	result, err := NewValidateNovelCommand(staticRepo{novel: testNovel()}).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Episodes != 2 || result.Paragraphs != 4 {
		t.Errorf("unexpected counts %+v", result)
	}

	broken := testNovel()
	broken.Episodes[1].ID = "ep1"
	if _, err := NewValidateNovelCommand(staticRepo{novel: broken}).Execute(ctx); err == nil {
		t.Error("expected validation error")
	}

	if _, err := NewValidateNovelCommand(staticRepo{err: errors.New("no such file")}).Execute(ctx); !contains(err.Error(), "failed to load novel") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestResetProfileCommand(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, domain.Position{EpisodeID: "ep2"})

	result, err := NewResetProfileCommand(session).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Message != "Reset ada to 1.1" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestJumpToEpisodeCommand(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, domain.Position{EpisodeID: "ep1"})

	result, err := NewJumpToEpisodeCommand(session, "ep2").Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Message != "Opened episode ep2 at 2.1" {
		t.Errorf("unexpected message %q", result.Message)
	}
	if len(session.Profile().MetCharacters) != 1 {
		t.Error("expected arriving on dialogue to meet the speaker")
	}
}

func TestSearchCommand(t *testing.T) {
	session := newTestSession(t, domain.Position{EpisodeID: "ep1"})

	results, err := NewSearchCommand(session, "waves").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(results) != 1 || results[0].Number != "1.1" {
		t.Errorf("expected the opening paragraph, got %+v", results)
	}

	// locked paragraphs stay hidden
	results, _ = NewSearchCommand(session, "pink").Execute(context.Background())
	if len(results) != 0 {
		t.Errorf("expected no results from locked paragraphs, got %+v", results)
	}
}

func TestGoToBookmarkCommand(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, domain.Position{EpisodeID: "ep1"})

	added, err := NewAddBookmarkCommand(session, "").Execute(ctx)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := NewJumpToEpisodeCommand(session, "ep2").Execute(ctx); err != nil {
		t.Fatalf("jump failed: %v", err)
	}

	result, err := NewGoToBookmarkCommand(session, added.Bookmark.ID).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Message != "Moved 2.1 -> 1.1" {
		t.Errorf("unexpected message %q", result.Message)
	}

	if _, err := NewGoToBookmarkCommand(session, "missing").Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAnnotateCharacterCommand(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, domain.Position{EpisodeID: "ep1"})

	if _, err := NewJumpToEpisodeCommand(session, "ep2").Execute(ctx); err != nil {
		t.Fatalf("jump failed: %v", err)
	}
	keeper := session.Profile().MetCharacters[0]

	tests := []struct {
		name    string
		id      string
		comment string
		wantErr bool
		errMsg  string
		wantMsg string
	}{
		{
			name:    "empty id",
			id:      "",
			wantErr: true,
			errMsg:  "character ID is required",
		},
		{
			name:    "unknown character",
			id:      "nobody",
			comment: "x",
			wantErr: true,
			errMsg:  "not found",
		},
		{
			name:    "note",
			id:      keeper.ID,
			comment: "guards the stairs",
			wantMsg: "Noted character " + keeper.ID,
		},
		{
			name:    "clear",
			id:      keeper.ID,
			comment: "",
			wantMsg: "Cleared note on character " + keeper.ID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewAnnotateCharacterCommand(session, tt.id, tt.comment).Execute(ctx)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Message != tt.wantMsg {
				t.Errorf("unexpected message %q", result.Message)
			}
			if got := session.Profile().MetCharacters[0].Comment; got != tt.comment {
				t.Errorf("expected comment %q, got %q", tt.comment, got)
			}
		})
	}
}
