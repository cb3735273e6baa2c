package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/billtracker/internal/config"
	"github.com/theirongolddev/billtracker/internal/tui/components"
	"github.com/theirongolddev/billtracker/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "enter", "e":
		return a, a.openForm(formSetup, nil), true
	case "t":
		names := theme.Names()
		next := names[0]
		for i, n := range names {
			if n == a.cfg.Appearance.Theme {
				next = names[(i+1)%len(names)]
			}
		}
		a.cfg.Appearance.Theme = next
		theme.SetActive(next)
		a.reportConfigSave()
		return a, nil, true
	}
	return a, nil, false
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	apiKeyDisplay := "(not set)"
	if key := config.GetAPIKey(a.cfg); key != "" {
		if len(key) > 12 {
			apiKeyDisplay = key[:4] + "..." + key[len(key)-4:]
		} else {
			apiKeyDisplay = "****"
		}
	}

	fields := []struct{ label, value string }{
		{"API key", apiKeyDisplay},
		{"Data file", a.tr.DataPath()},
		{"Refresh interval", a.refreshInterval.String()},
		{"Auto refresh", onOff(a.autoRefresh)},
		{"Rate history", onOff(a.cfg.Rates.History)},
		{"Theme", a.cfg.Appearance.Theme},
	}
	var form strings.Builder
	for _, f := range fields {
		form.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
		form.WriteString(valueStyle.Render(f.value))
		form.WriteString("\n")
	}
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("[Enter] edit  [t] next theme  [R] toggle auto refresh"))

	snap := a.tr.Rates.Snapshot()
	source := snap.Source
	if source == "" {
		source = "-"
	}
	var info strings.Builder
	info.WriteString(labelStyle.Render("Rates:           ") + valueStyle.Render(a.tr.Status()) + "\n")
	info.WriteString(labelStyle.Render("Rate source:     ") + valueStyle.Render(source) + "\n")
	info.WriteString(labelStyle.Render("Currencies:      ") + valueStyle.Render(fmt.Sprintf("%d with rates", len(snap.Table))) + "\n")
	info.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.ConfigPath()) + "\n")
	info.WriteString(labelStyle.Render("Rates cache:     ") + valueStyle.Render(config.RatesCachePath()))
	if !snap.FetchedAt.IsZero() {
		info.WriteString("\n")
		info.WriteString(labelStyle.Render("Last fetch:      ") + valueStyle.Render(snap.FetchedAt.Local().Format("2006-01-02 15:04")))
	}
	if snap.Base != "" {
		info.WriteString("\n")
		info.WriteString(labelStyle.Render("Feed base:       ") + valueStyle.Render(snap.Base))
	}

	return components.ContentCard("Settings", form.String(), cw) + "\n" +
		components.ContentCard("Rates", info.String(), cw)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
