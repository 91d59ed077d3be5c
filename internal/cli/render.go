package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// UsageStyle picks a colour for a percent of budget used.
func UsageStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 100:
		return ErrorStyle
	case percent >= 75:
		return WarningStyle
	default:
		return SuccessStyle
	}
}

// ProgressBar renders percent as a bar of width cells. The fill is clamped
// to 100% while the label keeps the real value.
func ProgressBar(percent float64, width int) string {
	if width < 1 {
		width = 1
	}
	fill := math.Max(0, math.Min(percent, 100))
	filled := int(math.Round(fill / 100 * float64(width)))

	return UsageStyle(percent).Render(strings.Repeat("█", filled)) +
		SubtleStyle.Render(strings.Repeat("░", width-filled)) +
		" " + FormatPercent(percent)
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

// Sparkline renders values as a row of block characters scaled to the maximum.
func Sparkline(values []float64) string {
	var highest float64
	for _, v := range values {
		highest = math.Max(highest, v)
	}

	var b strings.Builder
	for _, v := range values {
		if highest <= 0 || v <= 0 {
			b.WriteRune(sparkTicks[0])
			continue
		}
		idx := int(math.Round(v / highest * float64(len(sparkTicks)-1)))
		b.WriteRune(sparkTicks[idx])
	}
	return b.String()
}

// HBar renders value as a horizontal bar relative to highest.
func HBar(value, highest float64, width int) string {
	if highest <= 0 || value <= 0 || width < 1 {
		return ""
	}
	n := int(math.Round(value / highest * float64(width)))
	if n < 1 {
		n = 1
	}
	return InfoStyle.Render(strings.Repeat("▇", n))
}
