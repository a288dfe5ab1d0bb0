package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"novella/internal/adapters/tui/styles"
	"novella/internal/application"
	"novella/internal/application/commands"
	"novella/internal/domain"
)

// ReaderKeyMap defines key bindings for the reader view
type ReaderKeyMap struct {
	Next        key.Binding
	Previous    key.Binding
	Tap         key.Binding
	SubNext     key.Binding
	SubPrevious key.Binding
	Up          key.Binding
	Down        key.Binding
	Bookmarks   key.Binding
	Inventory   key.Binding
	Episodes    key.Binding
	Copy        key.Binding
	Edit        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var ReaderKeys = ReaderKeyMap{
	Next: key.NewBinding(
		key.WithKeys("n", "l", "right"),
		key.WithHelp("n/→", "next"),
	),
	Previous: key.NewBinding(
		key.WithKeys("p", "h", "left"),
		key.WithHelp("p/←", "previous"),
	),
	Tap: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space/enter", "continue"),
	),
	SubNext: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next beat"),
	),
	SubPrevious: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous beat"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Bookmarks: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "bookmarks"),
	),
	Inventory: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "inventory"),
	),
	Episodes: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "episodes"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy number"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ReaderModel shows the current paragraph and drives navigation
type ReaderModel struct {
	ViewState
	session  *application.Session
	view     domain.View
	choices  ChoicesModel
	pending  *domain.PendingTransition
	renderer *glamour.TermRenderer
	wrap     int
	copy     func(string) error
}

// NewReaderModel creates a reader over a session
func NewReaderModel(session *application.Session) *ReaderModel {
	m := &ReaderModel{
		session: session,
		copy:    clipboard.WriteAll,
	}
	m.Refresh()
	return m
}

// Init schedules any transition already pending on the session
func (m *ReaderModel) Init() tea.Cmd {
	m.pending = m.session.Pending()
	return scheduleCommit(m.pending)
}

// Refresh reloads the view from the session
func (m *ReaderModel) Refresh() {
	m.view = m.session.View()
	m.choices.SetOptions(m.view.Options)
}

// SetSize updates the view dimensions and the text wrap width
func (m *ReaderModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	if wrap := max(width-8, 20); wrap != m.wrap {
		m.wrap = wrap
		m.renderer = nil
	}
}

// Update handles messages for the reader
func (m *ReaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StepMsg:
		m.Refresh()
		m.pending = msg.Step.Pending
		m.SetMessage(msg.Message, false)
		return m, scheduleCommit(msg.Step.Pending)

	case CommitMsg:
		if m.pending == nil || m.pending.ID != msg.ID {
			return m, nil
		}
		return m, m.commit(msg.ID)

	case ErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *ReaderModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	onChoice := m.view.Kind == domain.KindChoice && m.choices.Len() > 0

	switch {
	case key.Matches(msg, ReaderKeys.Quit):
		return tea.Quit
	case key.Matches(msg, ReaderKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	case key.Matches(msg, ReaderKeys.Bookmarks):
		return func() tea.Msg { return SwitchToBookmarksMsg{} }
	case key.Matches(msg, ReaderKeys.Inventory):
		return func() tea.Msg { return SwitchToInventoryMsg{} }
	case key.Matches(msg, ReaderKeys.Episodes):
		return func() tea.Msg { return SwitchToEpisodesMsg{} }

	case onChoice && key.Matches(msg, ReaderKeys.Up):
		m.choices.Up()
		return nil
	case onChoice && key.Matches(msg, ReaderKeys.Down):
		m.choices.Down()
		return nil
	case onChoice && msg.String() == "enter":
		opt, _ := m.choices.Selected()
		return m.choose(opt.ID)

	case key.Matches(msg, ReaderKeys.Tap):
		return m.navigate(commands.DirectionTap)
	case key.Matches(msg, ReaderKeys.Next):
		return m.navigate(commands.DirectionNext)
	case key.Matches(msg, ReaderKeys.Previous):
		return m.navigate(commands.DirectionPrevious)
	case key.Matches(msg, ReaderKeys.SubNext):
		return m.navigate(commands.DirectionSubNext)
	case key.Matches(msg, ReaderKeys.SubPrevious):
		return m.navigate(commands.DirectionSubPrevious)

	case key.Matches(msg, ReaderKeys.Copy):
		if err := m.copy(m.view.Number); err != nil {
			m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
			return nil
		}
		m.SetMessage(fmt.Sprintf("Copied %s", m.view.Number), false)
		return nil
	case key.Matches(msg, ReaderKeys.Edit):
		id := ""
		if m.view.Paragraph != nil {
			id = m.view.Paragraph.Base().ID
		}
		return func() tea.Msg { return OpenEditorMsg{ParagraphID: id} }
	}
	return nil
}

func (m *ReaderModel) navigate(direction commands.Direction) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		result, err := commands.NewNavigateCommand(session, direction).Execute(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return StepMsg{Step: result.Step, Message: result.Message}
	}
}

func (m *ReaderModel) choose(optionID string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		result, err := commands.NewChooseCommand(session, optionID).Execute(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return StepMsg{Step: result.Step, Message: result.Message}
	}
}

// commit applies a due transition. A transition that is not due yet is
// retried at its deadline; one superseded meanwhile is dropped.
func (m *ReaderModel) commit(id string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		result, err := commands.NewCommitTransitionCommand(session, id).Execute(context.Background())
		switch {
		case errors.Is(err, application.ErrTransitionNotDue):
			if pt := session.Pending(); pt != nil {
				return scheduleCommit(pt)()
			}
			return nil
		case errors.Is(err, application.ErrStaleTransition), errors.Is(err, application.ErrNoPendingTransition):
			return nil
		case err != nil:
			return ErrMsg{Err: err}
		}
		return StepMsg{Step: result.Step, Message: result.Message}
	}
}

func scheduleCommit(pt *domain.PendingTransition) tea.Cmd {
	if pt == nil {
		return nil
	}
	id := pt.ID
	return tea.Tick(pt.Wait(time.Now()), func(time.Time) tea.Msg {
		return CommitMsg{ID: id}
	})
}

func (m *ReaderModel) renderText(text string) string {
	if m.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(max(m.wrap, 20)),
		)
		if err != nil {
			return text
		}
		m.renderer = r
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

// View renders the reader
func (m *ReaderModel) View() string {
	v := m.view
	vb := NewViewBuilder()

	if !v.Found {
		vb.Title("Nothing to read here")
		vb.Muted(fmt.Sprintf("Position %s is not part of the novel", v.Position))
		return vb.BlankLine().Help(ReaderKeys.Episodes, ReaderKeys.Quit).String()
	}

	header := styles.EpisodeTitle(v.PastelColor).Render(v.EpisodeTitle) + " " + styles.Number.Render(v.Number)
	if v.Bookmarked {
		header += " " + styles.Bookmarked.String()
	}
	vb.Line(header).BlankLine()

	if v.Background != nil && v.Kind == domain.KindBackground {
		vb.Muted("[scene: " + v.Background.URL + "]")
	}
	if len(v.ComicFrames) > 0 {
		vb.Muted(fmt.Sprintf("[%d comic frame(s)]", len(v.ComicFrames)))
	}

	switch {
	case !v.Accessible:
		vb.Line(styles.Locked.Render("This paragraph is locked."))
	case v.Kind == domain.KindPause:
		vb.Muted("…")
	default:
		if v.Speaker != "" {
			vb.Line(styles.Speaker.Render(v.Speaker))
		}
		if v.Text != "" {
			vb.Line(m.renderText(v.Text))
		}
	}

	if v.HasSubParagraphs {
		vb.Muted(fmt.Sprintf("(%d/%d)", v.SubParagraphIndex, v.SubParagraphCount))
	}
	if v.Kind == domain.KindChoice {
		vb.BlankLine().Raw(m.choices.View())
	}
	if m.pending != nil {
		vb.Line(styles.Pending.Render(fmt.Sprintf("%s…", m.pending.Cause)))
	}

	vb.BlankLine()
	vb.Message(m.Message, m.MessageErr)
	vb.Help(ReaderKeys.Tap, ReaderKeys.Previous, ReaderKeys.Bookmarks, ReaderKeys.Episodes, ReaderKeys.Help, ReaderKeys.Quit)
	return vb.String()
}
