// Package cli holds the terminal presentation shared by spendwise commands:
// lipgloss styles, money bars and charts, prompts and interrupt handling.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette colours adapt to light and dark terminals.
var (
	accent  = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	good    = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	caution = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	bad     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	info    = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}
	muted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	frame   = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
)

var (
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// SuccessStyle marks completed actions and money left to spend.
	SuccessStyle = lipgloss.NewStyle().Foreground(good)
	// WarningStyle marks a budget nearing its limit.
	WarningStyle = lipgloss.NewStyle().Foreground(caution)
	// ErrorStyle marks failures and overspending.
	ErrorStyle = lipgloss.NewStyle().Foreground(bad)
	// InfoStyle marks neutral figures.
	InfoStyle = lipgloss.NewStyle().Foreground(info)
	// SubtleStyle marks secondary text.
	SubtleStyle = lipgloss.NewStyle().Foreground(muted)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(frame).
			Padding(0, 2)

	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
)

// Section icons.
const (
	WalletIcon = "💰"
	ChartIcon  = "📊"
	TargetIcon = "🎯"
	BackupIcon = "🗄️"
)

// FormatSuccess formats a success message.
func FormatSuccess(message string) string {
	return SuccessStyle.Render("✓ " + message)
}

// FormatError formats an error message.
func FormatError(message string) string {
	return ErrorStyle.Render("✗ " + message)
}

// FormatWarning formats a warning such as the budget alert.
func FormatWarning(message string) string {
	return WarningStyle.Render("⚠️ " + message)
}

// FormatInfo formats an informational message.
func FormatInfo(message string) string {
	return InfoStyle.Render("ℹ️ " + message)
}

// FormatPrompt formats a question awaiting input.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// RenderBox renders content under title inside a rounded frame.
func RenderBox(title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(title)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}
