package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"novella/internal/application"
	"novella/internal/application/commands"
)

// EpisodesKeyMap defines key bindings for the episode list
type EpisodesKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Back key.Binding
}

var EpisodesKeys = EpisodesKeyMap{
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
		key.WithHelp("enter", "read from start"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "c"),
		key.WithHelp("esc", "back"),
	),
}

// EpisodesModel lists episodes with progress and accessibility
type EpisodesModel struct {
	ViewState
	session  *application.Session
	admin    bool
	episodes []application.EpisodeSummary
	pager    *Paginator
}

// NewEpisodesModel creates a new episode list model
func NewEpisodesModel(session *application.Session, admin bool) *EpisodesModel {
	return &EpisodesModel{session: session, admin: admin, pager: NewPaginator(10)}
}

// Init refreshes the list and puts the cursor on the current episode
func (m *EpisodesModel) Init() tea.Cmd {
	m.ClearMessage()
	episodes, err := commands.NewListEpisodesCommand(m.session, m.admin).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	m.episodes = episodes
	m.pager.SetTotal(len(episodes))
	m.pager.SetCursor(0)
	for i, ep := range episodes {
		if ep.Current {
			m.pager.SetCursor(i)
		}
	}
	return nil
}

// SetSize updates the view dimensions and the page length
func (m *EpisodesModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(height - 8)
}

// Update handles messages for the episode list
func (m *EpisodesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, EpisodesKeys.Back):
		return m, func() tea.Msg { return SwitchToReaderMsg{} }
	case key.Matches(keyMsg, EpisodesKeys.Up):
		m.pager.CursorUp()
	case key.Matches(keyMsg, EpisodesKeys.Down):
		m.pager.CursorDown()
	case key.Matches(keyMsg, EpisodesKeys.Open):
		if m.pager.Cursor() >= len(m.episodes) {
			return m, nil
		}
		ep := m.episodes[m.pager.Cursor()]
		if !ep.Accessible {
			m.SetMessage(fmt.Sprintf("%s is not open yet", ep.Title), true)
			return m, nil
		}
		session := m.session
		return m, func() tea.Msg {
			result, err := commands.NewJumpToEpisodeCommand(session, ep.ID).Execute(context.Background())
			if err != nil {
				return ErrMsg{Err: err}
			}
			return StepMsg{Step: result.Step, Message: result.Message}
		}
	}
	return m, nil
}

func episodeLine(ep application.EpisodeSummary) string {
	line := fmt.Sprintf("%2d  %-24s %s %d/%d  ~%d min", ep.Number, ep.Title, RenderProgress(ep.Read, ep.Total, 10), ep.Read, ep.Total, ep.Minutes)
	switch {
	case ep.GuestLocked:
		line += "  members only"
	case !ep.Accessible:
		line += "  locked"
	}
	if ep.Current {
		line += "  ◀"
	}
	return line
}

// View renders the episode list
func (m *EpisodesModel) View() string {
	vb := NewViewBuilder().Title("Episodes")
	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		ep := m.episodes[i]
		vb.Line(RenderRow(episodeLine(ep), i == m.pager.Cursor(), !ep.Accessible))
	}
	if m.pager.TotalPages() > 1 {
		vb.Muted(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
	}
	vb.BlankLine()
	vb.Message(m.Message, m.MessageErr)
	vb.Help(EpisodesKeys.Up, EpisodesKeys.Down, EpisodesKeys.Open, EpisodesKeys.Back)
	return vb.String()
}
