package mcp

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"novella/internal/application"
	"novella/internal/domain"
)

type memStore struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
}

func (m *memStore) Get(_ context.Context, name string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[name]
	if !ok {
		return nil, nil
	}
	c := p.Clone()
	return &c, nil
}

func (m *memStore) Save(_ context.Context, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.Name] = p.Clone()
	return nil
}

func (m *memStore) List(context.Context) ([]string, error) { return nil, nil }
func (m *memStore) Delete(context.Context, string) error  { return nil }
func (m *memStore) Close() error                          { return nil }

func testNovel() *domain.Novel {
	return &domain.Novel{
		Title: "Lighthouse",
		Episodes: []domain.Episode{
			{ID: "ep1", Title: "Shore", Paragraphs: domain.Paragraphs{
				&domain.TextParagraph{ParagraphBase: domain.ParagraphBase{ID: "a", Type: domain.KindText}, Content: "Waves against the rocks."},
				&domain.ChoiceParagraph{
					ParagraphBase: domain.ParagraphBase{ID: "c", Type: domain.KindChoice},
					Question:      "Climb the tower?",
					Options: []domain.ChoiceOption{
						{ID: "climb", Text: "Climb", NextEpisodeID: "ep2"},
						{ID: "wait", Text: "Wait"},
					},
				},
			}},
			{ID: "ep2", Title: "Tower", Paragraphs: domain.Paragraphs{
				&domain.TextParagraph{ParagraphBase: domain.ParagraphBase{ID: "d", Type: domain.KindText}, Content: "Stairs."},
			}},
		},
	}
}

func newTestTools(t *testing.T) *Tools {
	t.Helper()
	lib := application.NewLibrary(testNovel(), &memStore{profiles: map[string]domain.Profile{}}, application.SessionConfig{})
	return NewTools(lib, "ada")
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("expected content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestStatusHandler(t *testing.T) {
	tools := newTestTools(t)

	res, err := tools.statusHandler(context.Background(), call(nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if got := resultText(t, res); !strings.Contains(got, "[1.1] Shore") || !strings.Contains(got, "Waves against the rocks.") {
		t.Errorf("unexpected status %q", got)
	}
}

func TestNavigateAndChoose(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	res, _ := tools.navigateHandler("next")(ctx, call(nil))
	if got := resultText(t, res); !strings.Contains(got, "Moved 1.1 -> 1.2") || !strings.Contains(got, "- climb: Climb") {
		t.Errorf("unexpected next result %q", got)
	}

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
		want    string
	}{
		{
			name:    "missing option",
			args:    map[string]any{},
			wantErr: true,
			want:    "option ID is required",
		},
		{
			name:    "unknown option",
			args:    map[string]any{"option_id": "fly"},
			wantErr: true,
			want:    "option unavailable",
		},
		{
			name: "valid option",
			args: map[string]any{"option_id": "climb"},
			want: "Moved 1.2 -> 2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tools.chooseHandler(ctx, call(tt.args))
			if err != nil {
				t.Fatalf("handler failed: %v", err)
			}
			if res.IsError != tt.wantErr {
				t.Errorf("expected IsError=%v, got %v (%s)", tt.wantErr, res.IsError, resultText(t, res))
			}
			if got := resultText(t, res); !strings.Contains(got, tt.want) {
				t.Errorf("expected %q in %q", tt.want, got)
			}
		})
	}
}

func TestProfileArgumentSelectsSession(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	if _, err := tools.navigateHandler("next")(ctx, call(map[string]any{"profile": "bo"})); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	res, _ := tools.statusHandler(ctx, call(nil))
	if got := resultText(t, res); !strings.Contains(got, "[1.1]") {
		t.Errorf("expected the default profile to stay at 1.1, got %q", got)
	}
	res, _ = tools.statusHandler(ctx, call(map[string]any{"profile": "bo"}))
	if got := resultText(t, res); !strings.Contains(got, "[1.2]") {
		t.Errorf("expected bo at 1.2, got %q", got)
	}
}

func TestBookmarkTools(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	res, _ := tools.bookmarkAddHandler(ctx, call(map[string]any{"comment": "opening"}))
	if got := resultText(t, res); !strings.Contains(got, "Bookmarked 1.1") {
		t.Errorf("unexpected add result %q", got)
	}

	res, _ = tools.bookmarksHandler(ctx, call(nil))
	if got := resultText(t, res); !strings.Contains(got, "1.1  opening") {
		t.Errorf("unexpected bookmarks %q", got)
	}

	res, _ = tools.bookmarkRemoveHandler(ctx, call(map[string]any{"id": "nope"}))
	if !res.IsError {
		t.Error("expected error removing unknown bookmark")
	}
}

func TestEpisodesAndSearch(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	res, _ := tools.episodesHandler(ctx, call(nil))
	got := resultText(t, res)
	if !strings.Contains(got, "1  ep1  Shore  0/2 read") || !strings.Contains(got, "current") {
		t.Errorf("unexpected episodes %q", got)
	}

	res, _ = tools.searchHandler(ctx, call(map[string]any{}))
	if !res.IsError {
		t.Error("expected error for empty query")
	}

	res, _ = tools.searchHandler(ctx, call(map[string]any{"query": "waves"}))
	if got := resultText(t, res); !strings.Contains(got, "1.1  Shore") {
		t.Errorf("unexpected search result %q", got)
	}
}

func TestResetRequiresConfirm(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	res, _ := tools.resetHandler(ctx, call(nil))
	if !res.IsError {
		t.Error("expected reset without confirm to fail")
	}

	res, _ = tools.resetHandler(ctx, call(map[string]any{"confirm": true}))
	if got := resultText(t, res); got != "Reset ada to 1.1" {
		t.Errorf("unexpected reset result %q", got)
	}
}

func TestCharacterNoteTool(t *testing.T) {
	ctx := context.Background()
	tools := newTestTools(t)

	res, _ := tools.characterNoteHandler(ctx, call(map[string]any{"comment": "x"}))
	if got := resultText(t, res); !res.IsError || !strings.Contains(got, "character ID is required") {
		t.Errorf("expected validation error, got %q", got)
	}

	res, _ = tools.characterNoteHandler(ctx, call(map[string]any{"id": "nobody", "comment": "x"}))
	if !res.IsError {
		t.Error("expected error for a character never met")
	}
}
