package desk

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/empdesk/pkg/desk/modal"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(modal.Primary)

	headerStyle = lipgloss.NewStyle().Foreground(modal.Muted).Bold(true)

	rowStyle = lipgloss.NewStyle()

	selectedRowStyle = lipgloss.NewStyle().
				Background(modal.BgSecondary).
				Foreground(lipgloss.Color("255")).
				Bold(true)

	idStyle = lipgloss.NewStyle().Foreground(modal.Muted)

	hintStyle = lipgloss.NewStyle().Foreground(modal.Muted)

	statusOKStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	statusErrStyle = lipgloss.NewStyle().Foreground(modal.Error)
)
