package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Highlight   lipgloss.Style
	StatusError lipgloss.Style
	Spinner     lipgloss.Style
	QueryPrompt lipgloss.Style
	Query       lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabDisabled lipgloss.Style
	TabGap      lipgloss.Style
	Badge       lipgloss.Style
	BadgeEmpty  lipgloss.Style

	Kind        lipgloss.Style
	Language    lipgloss.Style
	Name        lipgloss.Style
	Description lipgloss.Style
	SelectionBg lipgloss.Style
	Cursor      lipgloss.Style

	Popup lipgloss.Style
}

var tabBorder = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "╭",
	TopRight:    "╮",
	BottomLeft:  "┴",
	BottomRight: "┴",
}

var activeTabBorder = lipgloss.Border{
	Top:         "─",
	Bottom:      " ",
	Left:        "│",
	Right:       "│",
	TopLeft:     "╭",
	TopRight:    "╮",
	BottomLeft:  "┘",
	BottomRight: "└",
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	tab := lipgloss.NewStyle().
		Border(tabBorder, true).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(1, 2),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Spinner:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		QueryPrompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Query:       lipgloss.NewStyle().Bold(true),

		TabActive: tab.
			Border(activeTabBorder, true).
			BorderForeground(lipgloss.Color("99")).
			Bold(true),
		TabInactive: tab,
		TabDisabled: tab.Foreground(lipgloss.Color("240")),
		TabGap: lipgloss.NewStyle().
			Border(tabBorder, false, false, true, false).
			BorderForeground(lipgloss.Color("241")),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("252")).
			Padding(0, 1).
			MarginLeft(1),
		BadgeEmpty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("237")).
			Padding(0, 1).
			MarginLeft(1),

		Kind:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Language:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // blue
		Name:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(4),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),

		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
	}
}
