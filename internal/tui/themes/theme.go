// Package themes holds the colour schemes used by the expense browser.
package themes

import (
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Selected    lipgloss.Style
	Header      lipgloss.Style
	Label       lipgloss.Style
	FocusLabel  lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style
	RoundedBox  lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Foreground  lipgloss.Color
}

func build(primary, foreground, subtle, muted, border, selectedFg, info, errColor lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Muted:      muted,
		Border:     border,
		Foreground: foreground,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(subtle),
		Normal: lipgloss.NewStyle().
			Foreground(foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(selectedFg).
			Bold(true),
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(border).
			BorderBottom(true).
			Bold(true).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(muted),
		FocusLabel: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(info).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
	}
}

// Light suits light terminal backgrounds.
var Light = build(
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#1f2937"),
	lipgloss.Color("#4b5563"),
	lipgloss.Color("#6b7280"),
	lipgloss.Color("#d1d5db"),
	lipgloss.Color("#ffffff"),
	lipgloss.Color("#2563eb"),
	lipgloss.Color("#dc2626"),
)

// Dark is the Catppuccin Mocha palette.
var Dark = build(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#a6adc8"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#1e1e2e"),
	lipgloss.Color("#89dceb"),
	lipgloss.Color("#f38ba8"),
)

// For returns the theme matching the stored theme setting.
func For(t model.Theme) Theme {
	if t == model.ThemeDark {
		return Dark
	}
	return Light
}
