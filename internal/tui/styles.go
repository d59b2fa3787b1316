package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/plotline/internal/model"
)

// Color palette
var (
	Success = lipgloss.Color("#95E1A3")
	Danger  = lipgloss.Color("#FF6B6B")
	Warning = lipgloss.Color("#FFE66D")

	Primary   = lipgloss.Color("#4ECDC4")
	Secondary = lipgloss.Color("#6C757D")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 2)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Underline(true).
			Padding(0, 2)

	ListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	PriceStyle = lipgloss.NewStyle().Foreground(Success)
	AdminStyle = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	ErrorStyle = lipgloss.NewStyle().Foreground(Danger)

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

	DangerModalStyle = ModalStyle.
				BorderForeground(Danger)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Width(14)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// RoleBadge renders an account role
func RoleBadge(role string) string {
	if role == model.RoleAdmin {
		return AdminStyle.Render("admin")
	}
	return HelpStyle.Render(role)
}
