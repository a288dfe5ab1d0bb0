package application

import (
	"errors"
	"fmt"

	"novella/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidID           = errors.New("invalid ID")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrStaleTransition     = errors.New("stale transition")
	ErrNoPendingTransition = errors.New("no pending transition")
	ErrTransitionNotDue    = errors.New("transition not due")
	ErrOptionUnavailable   = errors.New("option unavailable")
	ErrGuestLimit          = errors.New("episode locked for guests")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NavigationError reports a navigation request that cannot apply at a position
type NavigationError struct {
	Position domain.Position
	Reason   string
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("cannot navigate from %s: %s", e.Position, e.Reason)
}

func (e *NavigationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// ContentError represents a structural problem in a novel
type ContentError struct {
	EpisodeID string
	Index     int // -1 for episode-level problems
	Reason    string
}

func (e *ContentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("episode %s: %s", e.EpisodeID, e.Reason)
	}
	return fmt.Sprintf("episode %s paragraph %d: %s", e.EpisodeID, e.Index, e.Reason)
}
