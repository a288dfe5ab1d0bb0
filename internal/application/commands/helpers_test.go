package commands

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

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
	return &p, nil
}

func (m *memStore) Save(_ context.Context, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.Name] = p.Clone()
	return nil
}

func (m *memStore) List(context.Context) ([]string, error) { return nil, nil }

func (m *memStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, name)
	return nil
}

func (m *memStore) Close() error { return nil }

type staticRepo struct {
	novel *domain.Novel
	err   error
}

func (r staticRepo) Load(context.Context) (*domain.Novel, error) { return r.novel, r.err }

func (r staticRepo) Save(context.Context, *domain.Novel) error { return nil }

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
						{ID: "climb", Text: "Climb", ActivatesPath: "brave", NextEpisodeID: "ep2"},
						{ID: "wait", Text: "Wait"},
					},
				},
				&domain.ItemParagraph{ParagraphBase: domain.ParagraphBase{ID: "shell", Type: domain.KindItem}, Name: "Shell", Description: "Pink."},
			}},
			{ID: "ep2", Title: "Tower", Paragraphs: domain.Paragraphs{
				&domain.DialogueParagraph{ParagraphBase: domain.ParagraphBase{ID: "d", Type: domain.KindDialogue}, CharacterName: "Keeper", Text: "Who goes there?"},
			}},
		},
		Paths: []domain.Path{{ID: "brave", Name: "Brave"}},
	}
}

func newTestSession(t *testing.T, at domain.Position) *application.Session {
	t.Helper()
	n := testNovel()
	start := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	seq := 0
	p := domain.NewProfile("ada", n, start).MoveTo(at)
	return application.NewSession(n, p, &memStore{profiles: map[string]domain.Profile{}}, application.SessionConfig{
		Clock: func() time.Time { return start },
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	})
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
