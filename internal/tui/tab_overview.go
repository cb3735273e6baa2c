package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/ledger"
	"github.com/theirongolddev/billtracker/internal/summary"
	"github.com/theirongolddev/billtracker/internal/tui/components"
	"github.com/theirongolddev/billtracker/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const upcomingLimit = 6

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	l := a.tr.Ledger
	s := a.tr.Summary()
	today := a.tr.Today()

	budgetVal := "n/a"
	if amt, ok := a.tr.BudgetDisplay(); ok {
		budgetVal = cli.FormatAmount(amt, l.BudgetCurrency)
	}
	totalVal, remainingVal := "n/a", "n/a"
	if s.Available {
		totalVal = cli.FormatAmount(s.TotalUnpaid, s.Currency)
		remainingVal = cli.FormatAmount(s.Remaining, s.Currency)
	}

	overdue := countOverdue(l.Unpaid, today)
	overdueColor := t.TextPrimary
	if overdue > 0 {
		overdueColor = t.Red
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Budget", Value: budgetVal, Note: l.BudgetCurrency},
		{Label: "Unpaid", Value: totalVal, Note: plural(len(l.Unpaid), "bill")},
		{Label: "Remaining", Value: remainingVal, Note: "in " + s.Currency, Color: components.BandColor(s.Status.Status)},
		{Label: "Overdue", Value: strconv.Itoa(overdue), Note: plural(len(l.Paid), "paid bill"), Color: overdueColor},
	}, cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Budget", a.renderBudgetBody(s, cw), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Coming up", a.renderUpcoming(l.Unpaid, s.Currency, today, components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) renderBudgetBody(s summary.Summary, cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	var b strings.Builder
	switch {
	case !s.Available:
		b.WriteString(warn.Render("No exchange rate for " + s.Currency + " yet. Press r to fetch rates."))
	case s.Status.Status == summary.Neutral:
		b.WriteString(muted.Render("No budget set. Press B to set one."))
	default:
		b.WriteString(components.BudgetBar(s.Status, components.CardInnerWidth(cw)))
		if s.Remaining < 0 {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).
				Render("Over budget by " + cli.FormatAmount(-s.Remaining, s.Currency)))
		}
	}
	if s.Skipped > 0 {
		b.WriteString("\n")
		b.WriteString(warn.Render(fmt.Sprintf("%s left out of the totals: no exchange rate.", plural(s.Skipped, "bill"))))
	}
	b.WriteString("\n")
	b.WriteString(muted.Render("[B] set budget  [u] change summary currency"))
	return b.String()
}

func (a App) renderUpcoming(unpaid []ledger.Bill, display string, today time.Time, innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	late := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	if len(unpaid) == 0 {
		return muted.Render("Nothing unpaid. Press a on the Bills tab to add a bill.")
	}

	nameW := max(innerW-48, 10)
	var b strings.Builder
	for i, bill := range upcoming(unpaid, upcomingLimit) {
		if i > 0 {
			b.WriteString("\n")
		}
		style := row
		if bill.Overdue(today) {
			style = late
		}
		converted := ""
		if bill.Currency != display {
			if v, err := a.tr.Convert(bill.Amount, bill.Currency, display); err == nil {
				converted = "≈ " + cli.FormatAmount(v, display)
			}
		}
		b.WriteString(style.Render(fmt.Sprintf("%-*s %14s %14s  %10s",
			nameW, truncStr(bill.Name, nameW),
			cli.FormatAmount(bill.Amount, bill.Currency),
			converted,
			cli.FormatDue(bill.DueDate))))
	}
	if extra := len(unpaid) - upcomingLimit; extra > 0 {
		b.WriteString("\n")
		b.WriteString(muted.Render(fmt.Sprintf("and %d more on the Bills tab", extra)))
	}
	return b.String()
}

// upcoming returns up to n unpaid bills, earliest due first. Bills without a
// due date come last in ledger order.
func upcoming(unpaid []ledger.Bill, n int) []ledger.Bill {
	out := make([]ledger.Bill, len(unpaid))
	copy(out, unpaid)
	sort.SliceStable(out, func(i, j int) bool {
		di, iok := out[i].Due()
		dj, jok := out[j].Due()
		if iok != jok {
			return iok
		}
		return di.Before(dj)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func countOverdue(unpaid []ledger.Bill, today time.Time) int {
	n := 0
	for _, b := range unpaid {
		if b.Overdue(today) {
			n++
		}
	}
	return n
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
