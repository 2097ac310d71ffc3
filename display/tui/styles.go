package tui

import "github.com/charmbracelet/lipgloss"

var (
	// styleFooterKey highlights the focused panel name in the footer.
	styleFooterKey = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0D1117")).
			Background(lipgloss.Color("#7AA2F7")).
			Bold(true)

	// styleFooterText is the dim footer help text.
	styleFooterText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// styleError renders fatal layout messages.
	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)
