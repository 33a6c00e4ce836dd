package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dnoice/workforce-tracker/internal/store"
)

// Color palette, swapped by applyTheme.
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorAccent    = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Styles, rebuilt whenever the theme changes.
var (
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	titleStyle        lipgloss.Style
	accentStyle       lipgloss.Style
	successStyle      lipgloss.Style
	warningStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	highlightStyle    lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
	statValueStyle    lipgloss.Style
)

func init() {
	applyTheme("dark")
}

// applyTheme switches the palette and rebuilds every style from it.
func applyTheme(theme string) {
	if theme == "light" {
		colorPrimary = lipgloss.Color("#5A4FCF")
		colorAccent = lipgloss.Color("#D64545")
		colorMuted = lipgloss.Color("#8A8A8A")
		colorFg = lipgloss.Color("#24292F")
		colorSubtle = lipgloss.Color("#C9CED6")
		colorHighlight = lipgloss.Color("#0550AE")
	} else {
		colorPrimary = lipgloss.Color("#6C63FF")
		colorAccent = lipgloss.Color("#FF6B6B")
		colorMuted = lipgloss.Color("#666666")
		colorFg = lipgloss.Color("#C0CAF5")
		colorSubtle = lipgloss.Color("#414868")
		colorHighlight = lipgloss.Color("#7AA2F7")
	}
	rebuildStyles()
}

func rebuildStyles() {
	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorPrimary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	accentStyle = lipgloss.NewStyle().Foreground(colorAccent)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)
	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	selectedItemStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	normalItemStyle = lipgloss.NewStyle().Foreground(colorFg)

	statValueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorHighlight).
		Align(lipgloss.Center)
}

func workerStatusStyle(status string) lipgloss.Style {
	switch status {
	case store.WorkerActive:
		return successStyle
	case store.WorkerVacation:
		return warningStyle
	case store.WorkerSick:
		return errorStyle
	default:
		return mutedStyle
	}
}

func priorityStyle(priority string) lipgloss.Style {
	switch priority {
	case store.PriorityUrgent:
		return errorStyle
	case store.PriorityHigh:
		return accentStyle
	case store.PriorityMedium:
		return warningStyle
	default:
		return mutedStyle
	}
}

func invoiceStatusStyle(status string) lipgloss.Style {
	switch status {
	case store.InvoicePaid:
		return successStyle
	case store.InvoiceOverdue:
		return errorStyle
	case store.InvoiceSent:
		return highlightStyle
	default:
		return mutedStyle
	}
}
