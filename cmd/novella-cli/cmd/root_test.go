package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"novella/internal/application"
	"novella/internal/config"
	"novella/internal/domain"
)

type nopStore struct{}

func (nopStore) Get(context.Context, string) (*domain.Profile, error) { return nil, nil }
func (nopStore) Save(context.Context, *domain.Profile) error          { return nil }
func (nopStore) List(context.Context) ([]string, error)               { return nil, nil }
func (nopStore) Delete(context.Context, string) error                 { return nil }
func (nopStore) Close() error                                         { return nil }

func TestSettleCommitsFade(t *testing.T) {
	n := &domain.Novel{
		Title: "Lighthouse",
		Episodes: []domain.Episode{
			{ID: "ep1", Title: "Shore", Paragraphs: domain.Paragraphs{
				&domain.TextParagraph{ParagraphBase: domain.ParagraphBase{ID: "a", Type: domain.KindText}, Content: "Waves."},
				&domain.TextParagraph{ParagraphBase: domain.ParagraphBase{ID: "b", Type: domain.KindText}, Content: "Wind."},
			}},
		},
	}
	session := application.NewSession(n, domain.NewProfile("ada", n, time.Now()), nopStore{}, application.SessionConfig{FadeDelay: 5 * time.Millisecond})

	ctx := context.Background()
	step, err := session.Next(ctx)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if step.Pending == nil {
		t.Fatal("expected a pending fade")
	}

	settled, err := settle(ctx, session, step)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if !settled.Outcome.Moved || settled.Pending != nil {
		t.Errorf("expected a committed move, got %+v", settled.Outcome)
	}
	if got := session.View().Number; got != "1.2" {
		t.Errorf("expected reader at 1.2, got %s", got)
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVarP(&novelPath, "novel", "n", "", "")
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "")
	cmd.Flags().StringVar(&dbPath, "db", "", "")
	cmd.Flags().StringVar(&postgresURL, "postgres", "", "")
	t.Cleanup(func() { guest, admin = false, false })

	if err := cmd.Flags().Set("profile", "bob"); err != nil {
		t.Fatal(err)
	}
	guest = true

	cfg := &config.Config{Novel: "from-file.yaml", Profile: "ada"}
	applyFlags(cmd, cfg)

	if cfg.Profile != "bob" {
		t.Errorf("expected flag to win, got %q", cfg.Profile)
	}
	if cfg.Novel != "from-file.yaml" {
		t.Errorf("expected unset flag to keep the file value, got %q", cfg.Novel)
	}
	if !cfg.Guest.Everyone || cfg.Admin {
		t.Errorf("unexpected guest/admin %+v", cfg)
	}
}
