package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"novella/internal/adapters/tui/styles"
	"novella/internal/application"
	"novella/internal/application/commands"
)

// BookmarksKeyMap defines key bindings for the bookmarks view
type BookmarksKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Add    key.Binding
	Delete key.Binding
	Back   key.Binding
}

var BookmarksKeys = BookmarksKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "bookmark here"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "x"),
		key.WithHelp("d", "delete"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "b"),
		key.WithHelp("esc", "back"),
	),
}

type bookmarksLoadedMsg struct {
	entries []commands.BookmarkEntry
}

// BookmarksModel lists bookmarks and adds new ones with a comment
type BookmarksModel struct {
	ViewState
	session *application.Session
	entries []commands.BookmarkEntry
	pager   *Paginator
	adding  bool
	comment textinput.Model
}

// NewBookmarksModel creates a new bookmarks view model
func NewBookmarksModel(session *application.Session) *BookmarksModel {
	input := textinput.New()
	input.Placeholder = "comment (optional)"
	input.CharLimit = 200
	return &BookmarksModel{
		session: session,
		comment: input,
		pager:   NewPaginator(10),
	}
}

// SetSize updates the view dimensions and the page length
func (m *BookmarksModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(height - 10)
}

// Init loads the bookmarks
func (m *BookmarksModel) Init() tea.Cmd {
	m.adding = false
	m.comment.Blur()
	m.ClearMessage()
	return m.load
}

func (m *BookmarksModel) load() tea.Msg {
	entries, err := commands.NewListBookmarksCommand(m.session).Execute(context.Background())
	if err != nil {
		return ErrMsg{Err: err}
	}
	return bookmarksLoadedMsg{entries: entries}
}

// Update handles messages for the bookmarks view
func (m *BookmarksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bookmarksLoadedMsg:
		m.entries = msg.entries
		m.pager.SetTotal(len(m.entries))
		return m, nil

	case ErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m, m.handleInput(msg)
		}
		return m, m.handleKey(msg)
	}

	if m.adding {
		var cmd tea.Cmd
		m.comment, cmd = m.comment.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *BookmarksModel) handleInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.comment.Blur()
		return nil
	case "enter":
		comment := m.comment.Value()
		m.adding = false
		m.comment.Blur()
		m.comment.SetValue("")
		result, err := commands.NewAddBookmarkCommand(m.session, comment).Execute(context.Background())
		if err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		m.SetMessage(result.Message, false)
		return m.load
	}

	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return cmd
}

func (m *BookmarksModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BookmarksKeys.Back):
		return func() tea.Msg { return SwitchToReaderMsg{} }
	case key.Matches(msg, BookmarksKeys.Up):
		m.pager.CursorUp()
	case key.Matches(msg, BookmarksKeys.Down):
		m.pager.CursorDown()
	case key.Matches(msg, BookmarksKeys.Add):
		m.adding = true
		return m.comment.Focus()
	case key.Matches(msg, BookmarksKeys.Delete):
		entry, ok := m.selected()
		if !ok {
			return nil
		}
		result, err := commands.NewRemoveBookmarkCommand(m.session, entry.ID).Execute(context.Background())
		if err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		m.SetMessage(result.Message, false)
		return m.load
	case key.Matches(msg, BookmarksKeys.Open):
		entry, ok := m.selected()
		if !ok {
			return nil
		}
		session := m.session
		return func() tea.Msg {
			result, err := commands.NewGoToBookmarkCommand(session, entry.ID).Execute(context.Background())
			if err != nil {
				return ErrMsg{Err: err}
			}
			return StepMsg{Step: result.Step, Message: result.Message}
		}
	}
	return nil
}

func (m *BookmarksModel) selected() (commands.BookmarkEntry, bool) {
	cursor := m.pager.Cursor()
	if cursor >= len(m.entries) {
		return commands.BookmarkEntry{}, false
	}
	return m.entries[cursor], true
}

// View renders the bookmarks view
func (m *BookmarksModel) View() string {
	vb := NewViewBuilder().Title("Bookmarks")

	if len(m.entries) == 0 {
		vb.Muted("No bookmarks yet.")
	}
	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		e := m.entries[i]
		line := e.Number
		if e.Comment != "" {
			line = fmt.Sprintf("%-8s %s", e.Number, e.Comment)
		}
		vb.Line(RenderRow(line, i == m.pager.Cursor(), false))
	}
	vb.BlankLine()

	if m.adding {
		vb.Line(styles.InputLabel.Render("Comment"))
		vb.Line(styles.InputField.Render(m.comment.View()))
		vb.BlankLine()
	}

	vb.Message(m.Message, m.MessageErr)
	vb.Help(BookmarksKeys.Open, BookmarksKeys.Add, BookmarksKeys.Delete, BookmarksKeys.Back)
	return vb.String()
}
