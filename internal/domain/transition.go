package domain

import "time"

// TransitionCause says why a transition was deferred
type TransitionCause string

const (
	CauseFade        TransitionCause = "fade"
	CauseAutoAdvance TransitionCause = "auto-advance"
)

// PendingTransition is a navigation step scheduled for later. It only
// applies if it is still the pending one and the reader is still at From.
type PendingTransition struct {
	ID       string          `json:"id"`
	From     Position        `json:"from"`
	Intent   Intent          `json:"-"`
	Cause    TransitionCause `json:"cause"`
	Deadline time.Time       `json:"deadline"`
}

// Due reports whether the deadline has passed at now
func (t PendingTransition) Due(now time.Time) bool {
	return !now.Before(t.Deadline)
}

// Wait returns how long until the transition is due
func (t PendingTransition) Wait(now time.Time) time.Duration {
	if d := t.Deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// StillValid reports whether p has not moved away from the transition's origin
func (t PendingTransition) StillValid(p Profile) bool {
	return p.Position() == t.From
}
