package commands

import (
	"context"
	"fmt"

	"novella/internal/application"
	"novella/internal/domain"
)

// AddBookmarkResult contains the created or updated bookmark
type AddBookmarkResult struct {
	Bookmark domain.Bookmark
	Message  string
}

// AddBookmarkCommand bookmarks the current position
type AddBookmarkCommand struct {
	session *application.Session
	Comment string
}

// NewAddBookmarkCommand creates a new AddBookmarkCommand
func NewAddBookmarkCommand(session *application.Session, comment string) *AddBookmarkCommand {
	return &AddBookmarkCommand{
		session: session,
		Comment: comment,
	}
}

// Execute runs the add bookmark command
func (c *AddBookmarkCommand) Execute(ctx context.Context) (*AddBookmarkResult, error) {
	b, err := c.session.AddBookmark(ctx, c.Comment)
	if err != nil {
		return nil, fmt.Errorf("failed to add bookmark: %w", err)
	}

	number := c.session.Novel().ParagraphNumber(b.EpisodeID, b.ParagraphIndex)
	return &AddBookmarkResult{
		Bookmark: b,
		Message:  fmt.Sprintf("Bookmarked %s (%s)", number, b.ID),
	}, nil
}

// RemoveBookmarkResult contains the result of removing a bookmark
type RemoveBookmarkResult struct {
	BookmarkID string
	Message    string
}

// RemoveBookmarkCommand deletes a bookmark
type RemoveBookmarkCommand struct {
	session    *application.Session
	BookmarkID string
}

// NewRemoveBookmarkCommand creates a new RemoveBookmarkCommand
func NewRemoveBookmarkCommand(session *application.Session, bookmarkID string) *RemoveBookmarkCommand {
	return &RemoveBookmarkCommand{
		session:    session,
		BookmarkID: bookmarkID,
	}
}

// Validate checks the bookmark id
func (c *RemoveBookmarkCommand) Validate() error {
	return application.ValidateRequired("bookmarkID", c.BookmarkID)
}

// Execute runs the remove bookmark command
func (c *RemoveBookmarkCommand) Execute(ctx context.Context) (*RemoveBookmarkResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.session.RemoveBookmark(ctx, c.BookmarkID); err != nil {
		return nil, fmt.Errorf("failed to remove bookmark: %w", err)
	}

	return &RemoveBookmarkResult{
		BookmarkID: c.BookmarkID,
		Message:    fmt.Sprintf("Removed bookmark %s", c.BookmarkID),
	}, nil
}

// BookmarkEntry is a bookmark with its display number
type BookmarkEntry struct {
	domain.Bookmark
	Number string
}

// ListBookmarksCommand lists bookmarks in reading order
type ListBookmarksCommand struct {
	session *application.Session
}

// NewListBookmarksCommand creates a new ListBookmarksCommand
func NewListBookmarksCommand(session *application.Session) *ListBookmarksCommand {
	return &ListBookmarksCommand{session: session}
}

// Execute runs the list bookmarks command
func (c *ListBookmarksCommand) Execute(ctx context.Context) ([]BookmarkEntry, error) {
	n := c.session.Novel()
	sorted := domain.BookmarksSorted(n, c.session.Profile())

	entries := make([]BookmarkEntry, 0, len(sorted))
	for _, b := range sorted {
		entries = append(entries, BookmarkEntry{
			Bookmark: b,
			Number:   n.ParagraphNumber(b.EpisodeID, b.ParagraphIndex),
		})
	}
	return entries, nil
}

// GoToBookmarkCommand moves the reader to a bookmark
type GoToBookmarkCommand struct {
	session    *application.Session
	BookmarkID string
}

// NewGoToBookmarkCommand creates a new GoToBookmarkCommand
func NewGoToBookmarkCommand(session *application.Session, bookmarkID string) *GoToBookmarkCommand {
	return &GoToBookmarkCommand{
		session:    session,
		BookmarkID: bookmarkID,
	}
}

// Execute runs the go to bookmark command
func (c *GoToBookmarkCommand) Execute(ctx context.Context) (*NavigateResult, error) {
	if err := application.ValidateRequired("bookmarkID", c.BookmarkID); err != nil {
		return nil, err
	}

	step, err := c.session.GoToBookmark(ctx, c.BookmarkID)
	if err != nil {
		return nil, fmt.Errorf("failed to open bookmark: %w", err)
	}

	return &NavigateResult{
		Step:    step,
		Message: DescribeStep(c.session.Novel(), step),
	}, nil
}
