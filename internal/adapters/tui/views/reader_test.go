package views

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

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

func newTestSession(t *testing.T, cfg application.SessionConfig, at domain.Position) *application.Session {
	t.Helper()
	n := testNovel()
	p := domain.NewProfile("ada", n, time.Now()).MoveTo(at)
	return application.NewSession(n, p, &memStore{profiles: map[string]domain.Profile{}}, cfg)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and feeds the resulting message back, like the runtime does
func press(t *testing.T, m tea.Model, k string) tea.Msg {
	t.Helper()
	_, cmd := m.Update(keyMsg(k))
	if cmd == nil {
		return nil
	}
	msg := cmd()
	m.Update(msg)
	return msg
}

func TestReaderNavigation(t *testing.T) {
	session := newTestSession(t, application.SessionConfig{}, domain.Position{EpisodeID: "ep1"})
	m := NewReaderModel(session)

	msg := press(t, m, "n")
	step, ok := msg.(StepMsg)
	if !ok {
		t.Fatalf("expected StepMsg, got %T", msg)
	}
	if step.Message != "Moved 1.1 -> 1.2" {
		t.Errorf("unexpected message %q", step.Message)
	}
	if m.view.Kind != domain.KindChoice || m.choices.Len() != 2 {
		t.Fatalf("expected the choice with two options, got %+v", m.view)
	}

	press(t, m, "j")
	if opt, _ := m.choices.Selected(); opt.ID != "wait" {
		t.Errorf("expected cursor on wait, got %s", opt.ID)
	}
	press(t, m, "k")
	press(t, m, "enter")

	if got := session.Profile().Position(); got != (domain.Position{EpisodeID: "ep2"}) {
		t.Errorf("expected climb to reach ep2, got %s", got)
	}
	if m.view.Number != "2.1" {
		t.Errorf("expected view refreshed to 2.1, got %s", m.view.Number)
	}
}

func TestReaderCommitsFade(t *testing.T) {
	session := newTestSession(t, application.SessionConfig{FadeDelay: 10 * time.Millisecond}, domain.Position{EpisodeID: "ep1"})
	m := NewReaderModel(session)

	_, cmd := m.Update(keyMsg("n"))
	step := cmd().(StepMsg)
	if step.Step.Pending == nil {
		t.Fatal("expected a pending fade")
	}
	_, tick := m.Update(step)
	if tick == nil {
		t.Fatal("expected a commit to be scheduled")
	}
	if !strings.Contains(m.View(), "fade") {
		t.Error("expected the pending fade to be shown")
	}

	// a stale id is ignored
	if _, cmd := m.Update(CommitMsg{ID: "other"}); cmd != nil {
		t.Error("expected stale commit to be ignored")
	}

	time.Sleep(15 * time.Millisecond)
	_, cmd = m.Update(CommitMsg{ID: step.Step.Pending.ID})
	if cmd == nil {
		t.Fatal("expected commit command")
	}
	committed, ok := cmd().(StepMsg)
	if !ok || !committed.Step.Outcome.Moved {
		t.Fatalf("expected committed move, got %+v", committed)
	}
	m.Update(committed)
	if m.pending != nil || m.view.Number != "1.2" {
		t.Errorf("expected reader at 1.2 with nothing pending, got %s pending=%v", m.view.Number, m.pending)
	}
}

func TestReaderShortcuts(t *testing.T) {
	session := newTestSession(t, application.SessionConfig{}, domain.Position{EpisodeID: "ep1"})
	m := NewReaderModel(session)

	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	press(t, m, "y")
	if copied != "1.1" || m.Message != "Copied 1.1" {
		t.Errorf("expected number copied, got %q (%q)", copied, m.Message)
	}

	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"e", OpenEditorMsg{ParagraphID: "a"}},
		{"b", SwitchToBookmarksMsg{}},
		{"i", SwitchToInventoryMsg{}},
		{"c", SwitchToEpisodesMsg{}},
		{"?", SwitchToHelpMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, cmd := m.Update(keyMsg(tt.key))
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReaderViewShowsChoice(t *testing.T) {
	session := newTestSession(t, application.SessionConfig{}, domain.Position{EpisodeID: "ep1", ParagraphIndex: 1})
	m := NewReaderModel(session)
	m.SetSize(80, 24)

	out := m.View()
	for _, want := range []string{"Shore", "1.2", "Climb", "Wait"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view containing %q", want)
		}
	}
}

func TestBookmarksAddOpenDelete(t *testing.T) {
	session := newTestSession(t, application.SessionConfig{}, domain.Position{EpisodeID: "ep1"})
	m := NewBookmarksModel(session)
	m.Update(m.Init()())

	// focusing starts the cursor blink, which the test does not run
	m.Update(keyMsg("a"))
	if !m.adding {
		t.Fatal("expected comment input")
	}
	for _, r := range "start" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	press(t, m, "enter")

	if len(m.entries) != 1 || m.entries[0].Comment != "start" || m.entries[0].Number != "1.1" {
		t.Fatalf("expected one bookmark, got %+v", m.entries)
	}

	if _, err := session.JumpToEpisode(context.Background(), "ep2"); err != nil {
		t.Fatalf("jump failed: %v", err)
	}
	msg := press(t, m, "enter")
	if step, ok := msg.(StepMsg); !ok || step.Message != "Moved 2.1 -> 1.1" {
		t.Errorf("expected bookmark opened, got %#v", msg)
	}

	press(t, m, "d")
	if len(m.entries) != 0 {
		t.Errorf("expected bookmark deleted, got %+v", m.entries)
	}
}

func TestEpisodesJump(t *testing.T) {
	session := newTestSession(t, application.SessionConfig{}, domain.Position{EpisodeID: "ep1"})
	m := NewEpisodesModel(session, false)
	m.Init()

	if len(m.episodes) != 2 || m.pager.Cursor() != 0 {
		t.Fatalf("expected two episodes with cursor on the current one, got %d/%d", len(m.episodes), m.pager.Cursor())
	}
	press(t, m, "j")
	msg := press(t, m, "enter")
	if step, ok := msg.(StepMsg); !ok || step.Message != "Opened episode ep2 at 2.1" {
		t.Errorf("expected jump to ep2, got %#v", msg)
	}
}

func TestChoicesKeepCursorOnSameQuestion(t *testing.T) {
	var m ChoicesModel
	opts := []domain.ChoiceOption{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	m.SetOptions(opts)
	m.Down()
	m.Down()
	m.Down()
	if sel, _ := m.Selected(); sel.ID != "c" {
		t.Errorf("expected cursor clamped at c, got %s", sel.ID)
	}

	m.SetOptions(opts)
	if sel, _ := m.Selected(); sel.ID != "c" {
		t.Errorf("expected cursor kept, got %s", sel.ID)
	}

	m.SetOptions([]domain.ChoiceOption{{ID: "x"}})
	if sel, _ := m.Selected(); sel.ID != "x" {
		t.Errorf("expected cursor reset, got %s", sel.ID)
	}
}
