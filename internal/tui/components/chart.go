package components

import (
	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders values as a colored block sparkline. Values are
// oldest-first.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface)
	return style.Render(cli.RenderSparkline(values))
}

// Trend labels the move from the first to the last value, e.g. "▲ 1.2%".
func Trend(values []float64) string {
	if len(values) < 2 || values[0] == 0 {
		return ""
	}
	t := theme.Active
	change := (values[len(values)-1] - values[0]) / values[0]
	switch {
	case change > 0:
		return lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("▲ " + cli.FormatPercentPrecise(change))
	case change < 0:
		return lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render("▼ " + cli.FormatPercentPrecise(-change))
	default:
		return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("= 0%")
	}
}
