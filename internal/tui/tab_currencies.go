package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/currency"
	"github.com/theirongolddev/billtracker/internal/tui/components"
	"github.com/theirongolddev/billtracker/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// historyPoints is how many snapshots the trend sparkline covers.
const historyPoints = 60

// currenciesState tracks the currencies tab: the live search filter, the
// cursor, and the last conversion result.
type currenciesState struct {
	search     textinput.Model
	searching  bool
	query      string
	cursor     int
	conversion string
}

func (a App) currencyMatches() []currency.Entry {
	return currency.Search(a.curState.query)
}

func (a App) selectedCurrency() (currency.Entry, bool) {
	list := a.currencyMatches()
	if a.curState.cursor < 0 || a.curState.cursor >= len(list) {
		return currency.Entry{}, false
	}
	return list[a.curState.cursor], true
}

func (a *App) startCurrencySearch() tea.Cmd {
	a.curState.searching = true
	a.curState.search.SetValue(a.curState.query)
	a.curState.search.CursorEnd()
	return a.curState.search.Focus()
}

// updateCurrencySearch handles keys while the search input has focus. The
// list filters as the query is typed.
func (a App) updateCurrencySearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.curState.searching = false
		a.curState.search.Blur()
		return a, nil
	case "esc":
		a.curState.searching = false
		a.curState.search.Blur()
		a.curState.search.SetValue("")
		a.curState.query = ""
		a.curState.cursor = 0
		return a, nil
	}

	var cmd tea.Cmd
	a.curState.search, cmd = a.curState.search.Update(msg)
	a.curState.query = strings.TrimSpace(a.curState.search.Value())
	a.curState.cursor = 0
	return a, cmd
}

func (a App) updateCurrenciesKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.currencyMatches())
	switch key {
	case "j", "down":
		a.curState.cursor = min(a.curState.cursor+1, max(n-1, 0))
	case "k", "up":
		a.curState.cursor = max(a.curState.cursor-1, 0)
	case "g":
		a.curState.cursor = 0
	case "G":
		a.curState.cursor = max(n-1, 0)
	case "esc":
		a.curState.query = ""
		a.curState.cursor = 0
	case "enter":
		return a, a.openForm(formConvert, nil), true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderCurrenciesTab(cw, h int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)
	display := a.tr.Ledger.SummaryCurrency

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	head := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	noRate := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)

	detail := a.renderCurrencyDetail(cw)
	listH := max(h-lipgloss.Height(detail)-7, 3)

	nameW := max(innerW-48, 8)
	line := func(marker, code, sym, name, rate, value string) string {
		return fmt.Sprintf("%s%-5s %-6s %-*s %14s %16s", marker, code, sym, nameW, truncStr(name, nameW), rate, value)
	}

	var b strings.Builder
	if a.curState.searching {
		b.WriteString(a.curState.search.View())
	} else if a.curState.query != "" {
		b.WriteString(muted.Render(fmt.Sprintf("Filter: %q  [/] edit  [esc] clear", a.curState.query)))
	} else {
		b.WriteString(muted.Render("[/] search  [enter] convert from selected  [v] convert"))
	}
	b.WriteString("\n")
	b.WriteString(head.Render(line("  ", "Code", "Symbol", "Name", "per 1 "+currency.Reference, "1 unit in "+display)))
	b.WriteString("\n")

	list := a.currencyMatches()
	if len(list) == 0 {
		b.WriteString(muted.Render("  No currency matches."))
	}
	offset := 0
	if a.curState.cursor >= listH {
		offset = a.curState.cursor - listH + 1
	}
	end := min(offset+listH, len(list))
	for i := offset; i < end; i++ {
		e := list[i]
		rate, value := "-", "-"
		style := noRate
		if r, ok := a.tr.Rates.Rate(e.Code); ok {
			rate = cli.FormatRate(r)
			style = rowStyle
			if v, err := a.tr.Convert(1, e.Code, display); err == nil {
				value = cli.FormatAmount(v, display)
			}
		}
		marker := "  "
		if i == a.curState.cursor {
			marker = "▸ "
			style = selStyle
		}
		b.WriteString(style.Width(innerW).Render(line(marker, e.Code, e.Symbol, e.Name, rate, value)))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	title := fmt.Sprintf("Currencies (%d)", len(list))
	return components.ContentCard(title, b.String(), cw) + "\n" + detail
}

func (a App) renderCurrencyDetail(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	e, ok := a.selectedCurrency()
	if !ok {
		return components.ContentCard("Rate", muted.Render("Nothing selected."), cw)
	}

	var b strings.Builder
	b.WriteString(value.Render(currency.Describe(e.Code)))
	b.WriteString("\n")
	if r, ok := a.tr.Rates.Rate(e.Code); ok {
		b.WriteString(muted.Render(fmt.Sprintf("1 %s = %s %s   1 %s = %s %s",
			currency.Reference, cli.FormatRate(r), e.Code,
			e.Code, cli.FormatRate(1/r), currency.Reference)))
	} else {
		b.WriteString(muted.Render("No rate for " + e.Code + " in the current feed."))
	}

	if a.history != nil && e.Code != currency.Reference {
		points, err := a.history.RateHistory(e.Code, historyPoints)
		switch {
		case err != nil:
			a.log.Warn().Err(err).Str("code", e.Code).Msg("reading rate history")
		case len(points) > 1:
			values := make([]float64, len(points))
			for i, p := range points {
				values[len(points)-1-i] = p.Rate // oldest first
			}
			oldest := points[len(points)-1].FetchedAt
			b.WriteString("\n")
			b.WriteString(components.Sparkline(values, t.Accent))
			b.WriteString(muted.Render(" "))
			b.WriteString(components.Trend(values))
			b.WriteString(muted.Render(fmt.Sprintf("  over %d fetches since %s", len(points), cli.FormatAgo(oldest))))
		}
	}

	if a.curState.conversion != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Render(a.curState.conversion))
	}
	return components.ContentCard("Rate", b.String(), cw)
}
