package styles

import (
	"github.com/charmbracelet/lipgloss"

	"novella/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Reader
	Speaker = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Number = lipgloss.NewStyle().
		Foreground(Muted)

	Bookmarked = lipgloss.NewStyle().
			Foreground(Warning).
			SetString("★")

	Locked = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	Pending = lipgloss.NewStyle().
		Foreground(Warning).
		Italic(true)

	// List rows
	Row = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowDisabled = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// PastelColor returns the accent for an episode or paragraph tint
func PastelColor(c domain.PastelColor) lipgloss.Color {
	switch c {
	case domain.PastelPink:
		return lipgloss.Color("#F9A8D4")
	case domain.PastelBlue:
		return lipgloss.Color("#93C5FD")
	case domain.PastelPeach:
		return lipgloss.Color("#FDBA74")
	case domain.PastelLavender:
		return lipgloss.Color("#C4B5FD")
	case domain.PastelMint:
		return lipgloss.Color("#6EE7B7")
	case domain.PastelYellow:
		return lipgloss.Color("#FDE68A")
	case domain.PastelCoral:
		return lipgloss.Color("#FCA5A5")
	case domain.PastelSky:
		return lipgloss.Color("#7DD3FC")
	default:
		return Primary
	}
}

// EpisodeTitle styles a title in the episode's pastel accent
func EpisodeTitle(c domain.PastelColor) lipgloss.Style {
	return Title.Foreground(PastelColor(c))
}
