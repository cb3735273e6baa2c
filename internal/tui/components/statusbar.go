package components

import (
	"strings"

	"github.com/theirongolddev/billtracker/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar is the content of the bottom line.
type StatusBar struct {
	RateStatus  string // tracker status line
	Spinner     string // non-empty while a fetch is in flight
	AutoRefresh bool
	Flash       string // last action result; replaces the key hints
	FlashErr    bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, sb StatusBar) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var left string
	switch {
	case sb.Flash != "" && sb.FlashErr:
		left = lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).Render(" " + sb.Flash)
	case sb.Flash != "":
		left = lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render(" " + sb.Flash)
	default:
		left = base.Render(" ") + keyStyle.Render("[?]") + base.Render("help  ") +
			keyStyle.Render("[r]") + base.Render("efresh  ") +
			keyStyle.Render("[q]") + base.Render("uit")
	}

	right := sb.RateStatus
	if sb.Spinner != "" {
		right = sb.Spinner + " Fetching rates..."
	}
	if !sb.AutoRefresh {
		right += " (auto off)"
	}
	right = base.Render(right + " ")

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + base.Render(strings.Repeat(" ", gap)) + right
}
