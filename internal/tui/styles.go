package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor = lipgloss.Color("99")  // Purple
	errorColor   = lipgloss.Color("196") // Red
	mutedColor   = lipgloss.Color("245") // Gray
	accentColor  = lipgloss.Color("212") // Pink

	// Title style
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	anchorStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Header style
	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor).
			MarginBottom(1)

	searchPromptStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	searchHintStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Column header style
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	rowStyle = lipgloss.NewStyle()

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	markerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	// Footer style
	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(mutedColor)

	// Error banner style
	errorBannerStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Background(lipgloss.Color("52")). // Dark red background
				Bold(true).
				Padding(0, 2).
				MarginBottom(1)

	// Empty state style
	emptyStateStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(2)

	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)
)

// applyMaxWidth applies a maximum width to the framing styles.
func applyMaxWidth(width int) {
	if width <= 2 {
		return
	}
	headerStyle = headerStyle.Width(width - 2)
	footerStyle = footerStyle.Width(width - 2)
	errorBannerStyle = errorBannerStyle.MaxWidth(width)
}
