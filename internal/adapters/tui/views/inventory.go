package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"novella/internal/adapters/tui/styles"
	"novella/internal/application"
	"novella/internal/application/commands"
)

var InventoryBack = key.NewBinding(
	key.WithKeys("esc", "q", "i"),
	key.WithHelp("esc", "back"),
)

// InventoryModel shows items, met characters and active paths
type InventoryModel struct {
	ViewState
	session *application.Session
	inv     *commands.InventoryResult
}

// NewInventoryModel creates a new inventory view model
func NewInventoryModel(session *application.Session) *InventoryModel {
	return &InventoryModel{session: session}
}

// Init refreshes the inventory
func (m *InventoryModel) Init() tea.Cmd {
	inv, err := commands.NewInventoryCommand(m.session).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	m.inv = inv
	m.ClearMessage()
	return nil
}

// Update handles messages for the inventory view
func (m *InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, InventoryBack) {
		return m, func() tea.Msg { return SwitchToReaderMsg{} }
	}
	return m, nil
}

// View renders the inventory view
func (m *InventoryModel) View() string {
	vb := NewViewBuilder().Title("Inventory")
	if m.inv == nil {
		vb.Message(m.Message, m.MessageErr)
		return vb.Help(InventoryBack).String()
	}

	vb.Line(styles.InputLabel.Render("Collectibles"))
	if len(m.inv.Collectibles) == 0 {
		vb.Muted("  none")
	}
	for _, item := range m.inv.Collectibles {
		vb.Line(fmt.Sprintf("  %s  %s", item.Name, styles.MutedText.Render(item.Description)))
	}
	vb.BlankLine()

	vb.Line(styles.InputLabel.Render("Story items"))
	if len(m.inv.StoryItems) == 0 {
		vb.Muted("  none")
	}
	for _, item := range m.inv.StoryItems {
		vb.Line(fmt.Sprintf("  %s  %s", item.Name, styles.MutedText.Render(item.Description)))
	}
	vb.BlankLine()

	vb.Line(styles.InputLabel.Render("Characters"))
	if len(m.inv.MetCharacters) == 0 {
		vb.Muted("  nobody yet")
	}
	for _, c := range m.inv.MetCharacters {
		line := "  " + c.Name
		if c.Comment != "" {
			line += "  " + styles.MutedText.Render(c.Comment)
		}
		vb.Line(line)
	}
	vb.BlankLine()

	if m.inv.PathNames != "" {
		vb.Line(styles.InputLabel.Render("Paths") + " " + m.inv.PathNames)
		vb.BlankLine()
	}

	vb.Message(m.Message, m.MessageErr)
	return vb.Help(InventoryBack).String()
}
