package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"novella/internal/domain"
	"novella/internal/ports"
)

// Default timings of deferred transitions
const (
	DefaultFadeDelay       = 300 * time.Millisecond
	DefaultBackgroundDelay = 3200 * time.Millisecond
)

// SessionConfig tunes a Session. Zero delays commit immediately.
type SessionConfig struct {
	FadeDelay       time.Duration
	BackgroundDelay time.Duration
	Guest           bool
	Admin           bool
	Access          ports.GuestAccess
	Logger          *slog.Logger
	Clock           func() time.Time
	NewID           func() string
}

// StepResult is what a navigation call did. Pending is set when the step was
// deferred instead of applied.
type StepResult struct {
	Outcome domain.Outcome
	Pending *domain.PendingTransition
	View    domain.View
}

// Deferred reports whether the step is waiting on a pending transition
func (r StepResult) Deferred() bool {
	return r.Pending != nil
}

// Session owns one reader's profile while they read. Every mutation goes
// through the lock, is persisted, then published to listeners.
type Session struct {
	mu      sync.Mutex
	novel   *domain.Novel
	profile domain.Profile
	pending *domain.PendingTransition
	store   ports.ProfileStore
	cfg     SessionConfig
	logger  *slog.Logger

	listenersMu  sync.Mutex
	onUpdate     []func(domain.Profile)
	onGuestLimit []func(domain.Position)
}

// NewSession creates a session over an already loaded profile
func NewSession(n *domain.Novel, p domain.Profile, store ports.ProfileStore, cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	s := &Session{
		novel:   n,
		profile: clampPosition(n, p),
		store:   store,
		cfg:     cfg,
		logger:  logger.With("profile", p.Name),
	}
	s.autoAdvanceLocked()
	return s
}

// OpenProfile loads a profile by name, creating and saving a fresh one when
// the store has none. A fresh profile has already arrived at the first
// paragraph.
func OpenProfile(ctx context.Context, store ports.ProfileStore, n *domain.Novel, name string, env domain.Env) (domain.Profile, error) {
	if err := ValidateRequired("profile", name); err != nil {
		return domain.Profile{}, err
	}

	existing, err := store.Get(ctx, name)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to load profile %s: %w", name, err)
	}
	if existing != nil {
		return clampPosition(n, *existing), nil
	}

	p := domain.StartProfile(name, n, env)
	if err := store.Save(ctx, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to create profile %s: %w", name, err)
	}
	return p, nil
}

// clampPosition moves a profile whose position no longer exists back into
// the novel and clamps its sub-paragraph cursor
func clampPosition(n *domain.Novel, p domain.Profile) domain.Profile {
	if ep := n.Episode(p.CurrentEpisodeID); ep == nil {
		p = p.MoveTo(n.FirstPosition())
	} else if p.CurrentParagraphIndex >= len(ep.Paragraphs) || p.CurrentParagraphIndex < 0 {
		last := max(len(ep.Paragraphs)-1, 0)
		p = p.MoveTo(domain.Position{EpisodeID: ep.ID, ParagraphIndex: last})
	}
	return domain.RestoreSubParagraph(n, p)
}

// OnUpdate registers a listener for every persisted profile change
func (s *Session) OnUpdate(fn func(domain.Profile)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.onUpdate = append(s.onUpdate, fn)
}

// OnGuestLimitReached registers a listener called once per transition the
// guest gate denies
func (s *Session) OnGuestLimitReached(fn func(domain.Position)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.onGuestLimit = append(s.onGuestLimit, fn)
}

// Profile returns a copy of the current profile
func (s *Session) Profile() domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// Novel returns the novel being read
func (s *Session) Novel() *domain.Novel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.novel
}

// View snapshots the current position
func (s *Session) View() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Snapshot(s.novel, s.profile)
}

// Pending returns the pending transition, if any
func (s *Session) Pending() *domain.PendingTransition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	pt := *s.pending
	return &pt
}

// IsGuest reports whether the reader is behind the guest gate
func (s *Session) IsGuest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guestLocked()
}

func (s *Session) guestLocked() bool {
	if s.cfg.Guest {
		return true
	}
	return s.cfg.Access != nil && s.cfg.Access.IsGuest(s.profile.Name)
}

// GuestGate returns the episode check applied to guests
func (s *Session) GuestGate() func(string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.guestLocked() {
		return nil
	}
	return s.gateLocked()
}

func (s *Session) gateLocked() func(string) bool {
	n := s.novel
	access := s.cfg.Access
	return func(episodeID string) bool {
		if access != nil {
			return access.IsEpisodeAccessibleForGuest(n, episodeID)
		}
		return domain.IsEpisodeAccessibleForGuest(n, episodeID)
	}
}

func (s *Session) env() domain.Env {
	return domain.Env{
		Guest:     s.guestLocked(),
		GuestGate: s.gateLocked(),
		Now:       s.cfg.Clock(),
		NewID:     s.cfg.NewID,
	}
}

// Update applies fn to the latest profile under the lock, so updates issued
// back to back compose instead of overwriting each other
func (s *Session) Update(ctx context.Context, fn func(domain.Profile) domain.Profile) (domain.Profile, error) {
	s.mu.Lock()
	next, err := s.saveLocked(ctx, fn(s.profile.Clone()))
	s.mu.Unlock()
	if err != nil {
		return next, err
	}
	s.publish(next)
	return next, nil
}

func (s *Session) saveLocked(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	for _, id := range domain.CompletedEpisodes(s.novel, p) {
		if !slices.Contains(p.CompletedEpisodes, id) {
			p.CompletedEpisodes = append(slices.Clone(p.CompletedEpisodes), id)
		}
	}
	if s.store != nil {
		if err := s.store.Save(ctx, &p); err != nil {
			return s.profile.Clone(), fmt.Errorf("failed to save profile: %w", err)
		}
	}
	s.profile = p
	return p.Clone(), nil
}

func (s *Session) publish(p domain.Profile) {
	s.listenersMu.Lock()
	listeners := slices.Clone(s.onUpdate)
	s.listenersMu.Unlock()
	for _, fn := range listeners {
		fn(p)
	}
}

func (s *Session) guestLimitReached(at domain.Position) {
	s.listenersMu.Lock()
	listeners := slices.Clone(s.onGuestLimit)
	s.listenersMu.Unlock()
	for _, fn := range listeners {
		fn(at)
	}
}

// Next advances to the next paragraph. Leaving a text paragraph waits for the
// fade delay: the step is returned as pending and applied by Commit.
func (s *Session) Next(ctx context.Context) (StepResult, error) {
	return s.navigate(ctx, domain.Intent{Kind: domain.IntentNext})
}

// Previous steps back inside the current episode
func (s *Session) Previous(ctx context.Context) (StepResult, error) {
	return s.navigate(ctx, domain.Intent{Kind: domain.IntentPrevious})
}

// NextSub reveals the next sub-paragraph
func (s *Session) NextSub(ctx context.Context) (StepResult, error) {
	return s.navigate(ctx, domain.Intent{Kind: domain.IntentNextSub})
}

// PreviousSub hides the last revealed sub-paragraph
func (s *Session) PreviousSub(ctx context.Context) (StepResult, error) {
	return s.navigate(ctx, domain.Intent{Kind: domain.IntentPreviousSub})
}

// Tap reveals the next sub-paragraph or, on the last one, moves on
func (s *Session) Tap(ctx context.Context) (StepResult, error) {
	s.mu.Lock()
	in, ok := domain.TapIntent(s.novel, s.profile)
	if !ok {
		pos := s.profile.Position()
		res := StepResult{
			Outcome: domain.Outcome{Profile: s.profile.Clone(), From: pos, To: pos, Reason: "nothing to advance"},
			View:    domain.Snapshot(s.novel, s.profile),
		}
		s.mu.Unlock()
		return res, nil
	}
	s.mu.Unlock()
	return s.navigate(ctx, in)
}

// Choose picks a visible option of the current choice paragraph
func (s *Session) Choose(ctx context.Context, optionID string) (StepResult, error) {
	if err := ValidateRequired("optionID", optionID); err != nil {
		return StepResult{}, err
	}

	s.mu.Lock()
	pos := s.profile.Position()
	c, ok := s.novel.Episode(pos.EpisodeID).Paragraph(pos.ParagraphIndex).(*domain.ChoiceParagraph)
	if !ok {
		s.mu.Unlock()
		return StepResult{}, &NavigationError{Position: pos, Reason: "current paragraph is not a choice"}
	}
	opt := c.Option(optionID)
	if opt == nil || !domain.IsOptionVisible(c, s.profile, optionID) {
		s.mu.Unlock()
		return StepResult{}, fmt.Errorf("%w: %s", ErrOptionUnavailable, optionID)
	}
	in := domain.Intent{Kind: domain.IntentChoose, Choice: domain.ChoiceFromOption(c, *opt)}
	s.mu.Unlock()

	return s.navigate(ctx, in)
}

func (s *Session) navigate(ctx context.Context, in domain.Intent) (StepResult, error) {
	s.mu.Lock()

	if s.pending != nil && in.Kind.Forward() && s.pending.Intent.Kind.Forward() {
		pt := *s.pending
		res := StepResult{Pending: &pt, View: domain.Snapshot(s.novel, s.profile)}
		s.mu.Unlock()
		s.logger.Debug("coalesced forward input", "intent", in.Kind, "transition", pt.ID)
		return res, nil
	}

	if in.Kind == domain.IntentNext && s.cfg.FadeDelay > 0 && s.currentKindLocked() == domain.KindText {
		pt := s.scheduleLocked(in, domain.CauseFade, s.cfg.FadeDelay)
		res := StepResult{Pending: &pt, View: domain.Snapshot(s.novel, s.profile)}
		s.mu.Unlock()
		return res, nil
	}

	return s.stepLocked(ctx, in)
}

func (s *Session) currentKindLocked() domain.Kind {
	par := s.novel.Episode(s.profile.CurrentEpisodeID).Paragraph(s.profile.CurrentParagraphIndex)
	if par == nil {
		return ""
	}
	return par.Kind()
}

// autoAdvanceLocked schedules leaving the background paragraph the reader
// stands on. It returns nil anywhere else or when the delay is disabled.
func (s *Session) autoAdvanceLocked() *domain.PendingTransition {
	if s.cfg.BackgroundDelay <= 0 || s.currentKindLocked() != domain.KindBackground {
		return nil
	}
	pt := s.scheduleLocked(domain.Intent{Kind: domain.IntentNext}, domain.CauseAutoAdvance, s.cfg.BackgroundDelay)
	return &pt
}

func (s *Session) scheduleLocked(in domain.Intent, cause domain.TransitionCause, delay time.Duration) domain.PendingTransition {
	pt := domain.PendingTransition{
		ID:       s.cfg.NewID(),
		From:     s.profile.Position(),
		Intent:   in,
		Cause:    cause,
		Deadline: s.cfg.Clock().Add(delay),
	}
	s.pending = &pt
	s.logger.Debug("scheduled transition", "transition", pt.ID, "cause", cause, "from", pt.From)
	return pt
}

// stepLocked runs the reducer. It is entered with the lock held and
// releases it before calling listeners.
func (s *Session) stepLocked(ctx context.Context, in domain.Intent) (StepResult, error) {
	before := s.profile
	out := domain.Reduce(s.novel, before, in, s.env())

	changed := out.Moved || !out.Profile.Equal(before)
	if changed {
		saved, err := s.saveLocked(ctx, out.Profile)
		if err != nil {
			s.mu.Unlock()
			return StepResult{}, err
		}
		out.Profile = saved
	}

	var pending *domain.PendingTransition
	if out.Moved {
		s.pending = nil
		pending = s.autoAdvanceLocked()
	}
	res := StepResult{Outcome: out, Pending: pending, View: domain.Snapshot(s.novel, s.profile)}
	s.mu.Unlock()

	switch {
	case out.GuestLimitReached:
		s.logger.Info("guest limit reached", "at", out.From)
	case out.Moved:
		s.logger.Debug("navigated", "intent", in.Kind, "from", out.From, "to", out.To)
	default:
		s.logger.Debug("navigation had no effect", "intent", in.Kind, "reason", out.Reason)
	}

	if changed {
		s.publish(out.Profile)
	}
	if out.GuestLimitReached {
		s.guestLimitReached(out.From)
	}
	return res, nil
}

// Commit applies the pending transition with the given id once it is due.
// A transition superseded by another step, or whose origin the reader has
// left, is rejected as stale.
func (s *Session) Commit(ctx context.Context, id string) (StepResult, error) {
	s.mu.Lock()
	switch {
	case s.pending == nil:
		s.mu.Unlock()
		return StepResult{}, ErrNoPendingTransition
	case s.pending.ID != id:
		s.mu.Unlock()
		return StepResult{}, fmt.Errorf("%w: %s", ErrStaleTransition, id)
	case !s.pending.StillValid(s.profile):
		s.pending = nil
		s.mu.Unlock()
		return StepResult{}, fmt.Errorf("%w: %s", ErrStaleTransition, id)
	case !s.pending.Due(s.cfg.Clock()):
		wait := s.pending.Wait(s.cfg.Clock())
		s.mu.Unlock()
		return StepResult{}, fmt.Errorf("%w: %s left", ErrTransitionNotDue, wait)
	}

	in := s.pending.Intent
	s.pending = nil
	return s.stepLocked(ctx, in)
}

// Cancel drops the pending transition, reporting whether there was one
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.pending != nil
	s.pending = nil
	return had
}

// SetNovel swaps in a reloaded novel. The pending transition is dropped and a
// position that no longer exists is clamped back into the novel.
func (s *Session) SetNovel(ctx context.Context, n *domain.Novel) error {
	s.mu.Lock()
	s.novel = n
	s.pending = nil
	clamped := clampPosition(n, s.profile)
	moved := clamped.Position() != s.profile.Position() ||
		clamped.CurrentSubParagraphIndex != s.profile.CurrentSubParagraphIndex
	if !moved {
		s.mu.Unlock()
		s.logger.Info("novel reloaded", "episodes", len(n.Episodes))
		return nil
	}
	saved, err := s.saveLocked(ctx, clamped)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.logger.Info("novel reloaded, position clamped", "episodes", len(n.Episodes), "position", saved.Position())
	s.publish(saved)
	return nil
}

// JumpToEpisode starts reading an episode from its first paragraph
func (s *Session) JumpToEpisode(ctx context.Context, episodeID string) (StepResult, error) {
	if err := ValidateRequired("episodeID", episodeID); err != nil {
		return StepResult{}, err
	}

	s.mu.Lock()
	ep := s.novel.Episode(episodeID)
	if ep == nil || len(ep.Paragraphs) == 0 {
		s.mu.Unlock()
		return StepResult{}, fmt.Errorf("episode %s: %w", episodeID, ErrNotFound)
	}
	from := s.profile.Position()
	if s.guestLocked() && !s.gateLocked()(episodeID) {
		s.mu.Unlock()
		s.guestLimitReached(from)
		return StepResult{}, fmt.Errorf("episode %s: %w", episodeID, ErrGuestLimit)
	}
	if !domain.IsEpisodeAccessible(ep, s.profile.ActivePaths, s.cfg.Admin) {
		s.mu.Unlock()
		return StepResult{}, &NavigationError{Position: from, Reason: fmt.Sprintf("episode %s requires %s", episodeID, s.novel.PathNames(requiredPaths(ep)))}
	}

	to := domain.Position{EpisodeID: episodeID}
	p := domain.Arrive(s.novel, s.profile.Clone().MoveTo(to), s.env())
	saved, err := s.saveLocked(ctx, p)
	if err != nil {
		s.mu.Unlock()
		return StepResult{}, err
	}
	s.pending = nil
	out := domain.Outcome{Profile: saved, From: from, To: to, Moved: true}
	res := StepResult{Outcome: out, Pending: s.autoAdvanceLocked(), View: domain.Snapshot(s.novel, s.profile)}
	s.mu.Unlock()

	s.logger.Debug("jumped to episode", "episode", episodeID)
	s.publish(saved)
	return res, nil
}

func requiredPaths(ep *domain.Episode) []string {
	paths := slices.Clone(ep.RequiredPaths)
	if ep.RequiredPath != "" && !slices.Contains(paths, ep.RequiredPath) {
		paths = append(paths, ep.RequiredPath)
	}
	return paths
}

// AddBookmark bookmarks the current position
func (s *Session) AddBookmark(ctx context.Context, comment string) (domain.Bookmark, error) {
	var added domain.Bookmark
	_, err := s.Update(ctx, func(p domain.Profile) domain.Profile {
		p, added = domain.AddBookmark(p, p.Position(), comment, s.cfg.NewID(), s.cfg.Clock())
		return p
	})
	return added, err
}

// RemoveBookmark deletes a bookmark by id
func (s *Session) RemoveBookmark(ctx context.Context, id string) error {
	if err := ValidateRequired("bookmarkID", id); err != nil {
		return err
	}
	found := false
	_, err := s.Update(ctx, func(p domain.Profile) domain.Profile {
		p, found = domain.RemoveBookmark(p, id)
		return p
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bookmark %s: %w", id, ErrNotFound)
	}
	return nil
}

// GoToBookmark moves to a bookmarked position inside the reader's reach
func (s *Session) GoToBookmark(ctx context.Context, id string) (StepResult, error) {
	p := s.Profile()
	idx := slices.IndexFunc(p.Bookmarks, func(b domain.Bookmark) bool { return b.ID == id })
	if idx < 0 {
		return StepResult{}, fmt.Errorf("bookmark %s: %w", id, ErrNotFound)
	}
	b := p.Bookmarks[idx]
	to := domain.Position{EpisodeID: b.EpisodeID, ParagraphIndex: b.ParagraphIndex}
	if !domain.IsParagraphAccessible(p, b.EpisodeID, b.ParagraphIndex) {
		return StepResult{}, &NavigationError{Position: p.Position(), Reason: fmt.Sprintf("bookmark %s points at a locked paragraph", id)}
	}

	from := p.Position()
	saved, err := s.Update(ctx, func(p domain.Profile) domain.Profile {
		return p.MoveTo(to)
	})
	if err != nil {
		return StepResult{}, err
	}
	s.Cancel()
	return StepResult{Outcome: domain.Outcome{Profile: saved, From: from, To: to, Moved: true}, View: s.View()}, nil
}

// AnnotateCharacter stores the reader's note on a met character
func (s *Session) AnnotateCharacter(ctx context.Context, id, comment string) error {
	found := false
	_, err := s.Update(ctx, func(p domain.Profile) domain.Profile {
		p, found = domain.AnnotateCharacter(p, id, comment)
		return p
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("character %s: %w", id, ErrNotFound)
	}
	return nil
}

// Reset starts the reader over, keeping only the profile name. The first
// paragraph is arrived at again, as for a new reader.
func (s *Session) Reset(ctx context.Context) (domain.Profile, error) {
	s.Cancel()
	p, err := s.Update(ctx, func(p domain.Profile) domain.Profile {
		return domain.StartProfile(p.Name, s.novel, s.env())
	})
	if err != nil {
		return p, err
	}
	s.mu.Lock()
	s.autoAdvanceLocked()
	s.mu.Unlock()
	return p, nil
}
