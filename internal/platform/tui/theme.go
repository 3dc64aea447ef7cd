package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the lipgloss styles of the menu and score screens.
type Theme struct {
	// Menu
	Title       lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style
	Section     lipgloss.Style

	// Footer and help
	Controls lipgloss.Style

	// Tables
	TableBorder   lipgloss.Style
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	Empty         lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Section:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),

		Controls: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		TableBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		TableHeader:   lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true),
		TableSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Empty:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme for terminals with few colors.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Title = lipgloss.NewStyle().Bold(true)
	theme.ItemActive = lipgloss.NewStyle().Bold(true).Underline(true)
	theme.Section = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	theme.TableSelected = lipgloss.NewStyle().Reverse(true)
	return theme
}

var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return theme
}
