package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"novella/internal/adapters/tui/styles"
)

var HelpClose = key.NewBinding(
	key.WithKeys("esc", "q", "?"),
	key.WithHelp("esc/q/?", "close"),
)

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init satisfies tea.Model; the help view has nothing to load
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpClose) {
		return m, func() tea.Msg { return SwitchToReaderMsg{} }
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Novella Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Reading"))
	b.WriteString("\n")
	for _, k := range []key.Binding{ReaderKeys.Tap, ReaderKeys.Next, ReaderKeys.Previous, ReaderKeys.SubNext, ReaderKeys.SubPrevious} {
		b.WriteString(helpLine(k))
	}
	b.WriteString(helpLine(key.NewBinding(key.WithHelp("j/k + enter", "pick an option"))))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Views"))
	b.WriteString("\n")
	for _, k := range []key.Binding{ReaderKeys.Bookmarks, ReaderKeys.Inventory, ReaderKeys.Episodes} {
		b.WriteString(helpLine(k))
	}
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	for _, k := range []key.Binding{ReaderKeys.Copy, ReaderKeys.Edit, ReaderKeys.Help, ReaderKeys.Quit} {
		b.WriteString(helpLine(k))
	}
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(k key.Binding) string {
	h := k.Help()
	return "  " + styles.HelpKey.Render(padRight(h.Key, 20)) + styles.HelpDesc.Render(h.Desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
