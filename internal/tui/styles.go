package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	featuredStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1).
			BorderForeground(lipgloss.Color("11"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	badgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	userTurnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	asstTurnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)
