package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"novella/internal/adapters/tui/styles"
	"novella/internal/adapters/tui/views"
	"novella/internal/application"
	"novella/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewReader
	ViewBookmarks
	ViewInventory
	ViewEpisodes
	ViewHelp
)

// Options configures the reader application
type Options struct {
	Profile   string
	NovelPath string
	Admin     bool
	Logger    *slog.Logger
}

// App is the main TUI application model
type App struct {
	lib    *application.Library
	editor ports.EditorOpener
	opts   Options
	logger *slog.Logger

	state     ViewState
	spinner   spinner.Model
	loadErr   error
	session   *application.Session
	reader    *views.ReaderModel
	bookmarks *views.BookmarksModel
	inventory *views.InventoryModel
	episodes  *views.EpisodesModel
	help      *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(lib *application.Library, ed ports.EditorOpener, opts Options) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Subtitle

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &App{
		lib:     lib,
		editor:  ed,
		opts:    opts,
		logger:  logger,
		state:   ViewLoading,
		spinner: s,
		help:    views.NewHelpModel(),
	}
}

type sessionLoadedMsg struct {
	session *application.Session
}

type sessionErrMsg struct {
	err error
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadSession)
}

func (a *App) loadSession() tea.Msg {
	session, err := a.lib.Session(context.Background(), a.opts.Profile)
	if err != nil {
		return sessionErrMsg{err: err}
	}
	return sessionLoadedMsg{session: session}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || (a.state == ViewLoading && msg.String() == "q") {
			return a, tea.Quit
		}

	case spinner.TickMsg:
		if a.state != ViewLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case sessionLoadedMsg:
		a.session = msg.session
		a.reader = views.NewReaderModel(msg.session)
		a.bookmarks = views.NewBookmarksModel(msg.session)
		a.inventory = views.NewInventoryModel(msg.session)
		a.episodes = views.NewEpisodesModel(msg.session, a.opts.Admin)
		a.resize()
		a.state = ViewReader
		a.logger.Info("reader opened", "profile", a.opts.Profile, "position", msg.session.Profile().Position())
		return a, a.reader.Init()

	case sessionErrMsg:
		a.loadErr = msg.err
		return a, nil

	// View switching messages
	case views.SwitchToReaderMsg:
		a.state = ViewReader
		a.reader.Refresh()
		return a, nil

	case views.SwitchToBookmarksMsg:
		a.state = ViewBookmarks
		return a, a.bookmarks.Init()

	case views.SwitchToInventoryMsg:
		a.state = ViewInventory
		return a, a.inventory.Init()

	case views.SwitchToEpisodesMsg:
		a.state = ViewEpisodes
		return a, a.episodes.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	// Reader messages arrive from any view
	case views.StepMsg, views.CommitMsg:
		if _, ok := msg.(views.StepMsg); ok {
			a.state = ViewReader
		}
		_, cmd := a.reader.Update(msg)
		return a, cmd

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.ParagraphID)

	case editorFinishedMsg:
		if msg.err != nil {
			a.reader.SetMessage(fmt.Sprintf("Editor: %v", msg.err), true)
		}
		return a, nil

	case views.NovelChangedMsg:
		if a.session == nil {
			return a, nil
		}
		if err := application.ValidateNovel(msg.Novel); err != nil {
			a.reader.SetMessage(fmt.Sprintf("Novel not reloaded: %v", err), true)
			return a, nil
		}
		if err := a.lib.SetNovel(context.Background(), msg.Novel); err != nil {
			a.reader.SetMessage(err.Error(), true)
			return a, nil
		}
		a.reader.Refresh()
		a.reader.SetMessage("Novel reloaded", false)
		return a, nil

	case views.NovelErrorMsg:
		if a.reader != nil {
			a.reader.SetMessage(fmt.Sprintf("Novel not reloaded: %v", msg.Err), true)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewReader:
		_, cmd = a.reader.Update(msg)
	case ViewBookmarks:
		_, cmd = a.bookmarks.Update(msg)
	case ViewInventory:
		_, cmd = a.inventory.Update(msg)
	case ViewEpisodes:
		_, cmd = a.episodes.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) resize() {
	a.help.SetSize(a.width, a.height)
	if a.reader == nil {
		return
	}
	a.reader.SetSize(a.width, a.height)
	a.bookmarks.SetSize(a.width, a.height)
	a.inventory.SetSize(a.width, a.height)
	a.episodes.SetSize(a.width, a.height)
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(paragraphID string) tea.Cmd {
	if a.editor == nil || a.opts.NovelPath == "" {
		return nil
	}

	cmd, err := a.editor.CommandAt(a.opts.NovelPath, searchPattern(a.opts.NovelPath, paragraphID))
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// searchPattern matches the paragraph's id line in the novel source
func searchPattern(path, paragraphID string) string {
	if paragraphID == "" {
		return ""
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "id: " + paragraphID
	default:
		return fmt.Sprintf(`"id": "%s"`, paragraphID)
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewLoading:
		if a.loadErr != nil {
			return styles.App.Render(views.RenderMessage(a.loadErr.Error(), true) + "\n\n" + styles.MutedText.Render("press q to quit"))
		}
		return styles.App.Render(a.spinner.View() + " Opening " + a.opts.Profile + "…")
	case ViewBookmarks:
		return a.bookmarks.View()
	case ViewInventory:
		return a.inventory.View()
	case ViewEpisodes:
		return a.episodes.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.reader.View()
	}
}
