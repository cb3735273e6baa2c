package components

import (
	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/summary"
	"github.com/theirongolddev/billtracker/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// BandColor maps a budget band to a theme color.
func BandColor(s summary.Status) lipgloss.Color {
	t := theme.Active
	switch s {
	case summary.Critical:
		return t.Red
	case summary.Warning:
		return t.Orange
	case summary.Healthy:
		return t.Green
	default:
		return t.TextMuted
	}
}

// BudgetBar renders the remaining-budget bar followed by its percentage and
// band label. Over-budget fractions render as an empty bar.
func BudgetBar(st summary.StatusResult, width int) string {
	t := theme.Active
	color := BandColor(st.Status)

	pctStr := cli.FormatPercent(st.DisplayFraction)
	label := cli.StatusLabel(st.Status)
	barW := max(width-lipgloss.Width(pctStr)-lipgloss.Width(label)-2, 4)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	return bar.ViewAs(min(max(st.DisplayFraction, 0), 1)) + space + pctStyle.Render(pctStr) + space + labelStyle.Render(label)
}
