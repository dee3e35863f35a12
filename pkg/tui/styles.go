package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Minimal color palette
var (
	DimColor    = lipgloss.Color("#6c6c6c")
	TextColor   = lipgloss.Color("#e0e0e0")
	AccentColor = lipgloss.Color("#7aa2f7")
	ErrorColor  = lipgloss.Color("#f7768e")
	OkColor     = lipgloss.Color("#9ece6a")
	WarnColor   = lipgloss.Color("#e0af68")
)

// Tab bar styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(DimColor).
				Padding(0, 1)
)

// Field and list styles
var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(DimColor).
			Strikethrough(true)

	EnabledMarkStyle = lipgloss.NewStyle().
				Foreground(OkColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	WarnStyle = lipgloss.NewStyle().
			Foreground(WarnColor)
)

// Panel chrome
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimColor).
			Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(AccentColor).
				Padding(0, 1)

	PreviewStyle = lipgloss.NewStyle().
			Foreground(OkColor)

	DropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(AccentColor).
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(DimColor)
)

// Selection markers
const (
	CursorPrefix = "> "
	BlankPrefix  = "  "
)
