package views

import (
	"novella/internal/application"
	"novella/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// View switching messages
type (
	SwitchToReaderMsg    struct{}
	SwitchToBookmarksMsg struct{}
	SwitchToInventoryMsg struct{}
	SwitchToEpisodesMsg  struct{}
	SwitchToHelpMsg      struct{}
)

// StepMsg carries the result of a navigation command
type StepMsg struct {
	Step    application.StepResult
	Message string
}

// CommitMsg fires when a pending transition is due
type CommitMsg struct {
	ID string
}

// ErrMsg reports a failed command
type ErrMsg struct {
	Err error
}

// OpenEditorMsg asks the app to open the novel at a paragraph
type OpenEditorMsg struct {
	ParagraphID string
}

// NovelChangedMsg delivers a novel reloaded from disk
type NovelChangedMsg struct {
	Novel *domain.Novel
}

// NovelErrorMsg reports a novel edit that failed to load
type NovelErrorMsg struct {
	Err error
}
