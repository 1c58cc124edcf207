// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#5FAFFF")
	// SuccessColor indicates healthy metrics and successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates elevated-risk metrics.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or high-risk metrics.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)
)

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// FormatSuccess formats a success message.
func FormatSuccess(message string) string {
	return SuccessStyle.Render("✓ " + message)
}

// FormatError formats an error message.
func FormatError(message string) string {
	return ErrorStyle.Render("✗ " + message)
}

// FormatScore renders an overall health score colored by risk band.
func FormatScore(score int) string {
	text := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 70:
		return SuccessStyle.Render(text)
	case score >= 40:
		return WarningStyle.Render(text)
	default:
		return ErrorStyle.Render(text)
	}
}

// RenderBox renders content in a styled box with a title.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.UnsetMargins().Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	))
}
