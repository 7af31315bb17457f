package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary   = lipgloss.Color("#4D3BED")
	Accent    = lipgloss.Color("#95E1A3")
	Warning   = lipgloss.Color("#FFE66D")
	Danger    = lipgloss.Color("#FF6B6B")
	Text      = lipgloss.Color("#FFFFFF")
	TextMuted = lipgloss.Color("#888888")
	Surface   = lipgloss.Color("#16213e")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	SidebarStyle = lipgloss.NewStyle().
			Width(24).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	CalendarStyle = lipgloss.NewStyle().
			Padding(1, 2)

	DayListStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(Border).
			Padding(1, 2)

	ProjectItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	ProjectItemSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(Surface).
					Bold(true)

	DayCellStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	DayCellBusyStyle = lipgloss.NewStyle().
				Foreground(Text).
				Bold(true)

	DayCellSelectedStyle = lipgloss.NewStyle().
				Background(Primary).
				Foreground(Text).
				Bold(true)

	DayCellTodayStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				Underline(true)

	EventItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	EventItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	SavingStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Width(13)

	LabelFocusStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Width(13)
)
