package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/ledger"
	"github.com/theirongolddev/billtracker/internal/tracker"
	"github.com/theirongolddev/billtracker/internal/tui/components"
	"github.com/theirongolddev/billtracker/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// billsState tracks the bills tab cursor. Rows are the unpaid bills followed
// by the paid ones.
type billsState struct {
	cursor int
}

func (s *billsState) move(delta, rows int) {
	s.cursor += delta
	s.clamp(rows)
}

func (s *billsState) clamp(rows int) {
	s.cursor = max(min(s.cursor, rows-1), 0)
}

func (a App) rowCount() int {
	return len(a.tr.Ledger.Unpaid) + len(a.tr.Ledger.Paid)
}

// selectedBill returns the bill under the cursor and whether it is paid.
func (a App) selectedBill() (ledger.Bill, bool, bool) {
	l := a.tr.Ledger
	c := a.bills.cursor
	switch {
	case c < 0:
		return ledger.Bill{}, false, false
	case c < len(l.Unpaid):
		return l.Unpaid[c], false, true
	case c < len(l.Unpaid)+len(l.Paid):
		return l.Paid[c-len(l.Unpaid)], true, true
	}
	return ledger.Bill{}, false, false
}

func (a App) updateBillsKey(key string) (tea.Model, tea.Cmd, bool) {
	rows := a.rowCount()
	switch key {
	case "j", "down":
		a.bills.move(1, rows)
	case "k", "up":
		a.bills.move(-1, rows)
	case "g":
		a.bills.cursor = 0
	case "G":
		a.bills.cursor = max(rows-1, 0)
	case "a":
		return a, a.openForm(formAddBill, nil), true
	case "e":
		b, paid, ok := a.selectedBill()
		if !ok {
			return a, nil, true
		}
		if paid {
			a.setFlash("Paid bills cannot be edited", true)
			return a, nil, true
		}
		return a, a.openForm(formEditBill, &b), true
	case "p", "enter":
		b, paid, ok := a.selectedBill()
		if !ok || paid {
			return a, nil, true
		}
		a.report(a.tr.PayBill(b), "Paid "+b.Name)
		a.bills.clamp(a.rowCount())
	case "d":
		b, _, ok := a.selectedBill()
		if !ok {
			return a, nil, true
		}
		return a, a.openForm(formDeleteBill, &b), true
	case "1":
		a.report(a.tr.Sort(tracker.SortName), "Sorted by name")
	case "2":
		a.report(a.tr.Sort(tracker.SortDue), "Sorted by due date")
	case "3":
		a.report(a.tr.Sort(tracker.SortAmount), "Sorted by amount")
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderBillsTab(cw, h int) string {
	t := theme.Active
	l := a.tr.Ledger
	display := l.SummaryCurrency
	today := a.tr.Today()
	innerW := components.CardInnerWidth(cw)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	head := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	section := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)

	amtW, convW, dueW := 14, 14, 10
	nameW := max(innerW-amtW-convW-dueW-14, 8)
	line := func(marker, name, amt, conv, due, status string) string {
		return fmt.Sprintf("%s%-*s %*s %*s %*s  %-7s", marker,
			nameW, truncStr(name, nameW), amtW, amt, convW, conv, dueW, due, status)
	}

	var rows []string
	rows = append(rows, section.Render(fmt.Sprintf("Unpaid (%d)", len(l.Unpaid))))
	cursorLine := 0
	idx := 0
	addRow := func(b ledger.Bill, paid bool) {
		selected := idx == a.bills.cursor
		marker := "  "
		if selected {
			marker = "▸ "
			cursorLine = len(rows)
		}

		conv := ""
		if b.Currency != display {
			if v, err := a.tr.Convert(b.Amount, b.Currency, display); err == nil {
				conv = "≈ " + cli.FormatAmount(v, display)
			}
		}
		status := ""
		style := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		switch {
		case paid:
			status = "paid"
			style = style.Foreground(t.TextMuted)
		case b.Overdue(today):
			status = "overdue"
			style = style.Foreground(t.Red).Bold(true)
		}
		if selected {
			style = style.Background(t.SurfaceBright)
		}
		text := line(marker, b.Name, cli.FormatAmount(b.Amount, b.Currency), conv, cli.FormatDue(b.DueDate), status)
		rows = append(rows, style.Width(innerW).Render(text))
		idx++
	}

	for _, b := range l.Unpaid {
		addRow(b, false)
	}
	if len(l.Unpaid) == 0 {
		rows = append(rows, muted.Render("  No unpaid bills. Press a to add one."))
	}
	rows = append(rows, "", section.Render(fmt.Sprintf("Paid (%d)", len(l.Paid))))
	for _, b := range l.Paid {
		addRow(b, true)
	}

	// Window the rows around the cursor. The card adds a title, a header,
	// the hint line and two border lines.
	visible := max(h-6, 3)
	offset := 0
	if cursorLine >= visible {
		offset = cursorLine - visible + 1
	}
	end := min(offset+visible, len(rows))

	var b strings.Builder
	b.WriteString(head.Render(line("  ", "Name", "Amount", "≈ "+display, "Due", "")))
	b.WriteString("\n")
	b.WriteString(strings.Join(rows[offset:end], "\n"))
	b.WriteString("\n")
	b.WriteString(muted.Render("[a]dd  [e]dit  [p]ay  [d]elete  sort: [1] name [2] due [3] amount"))

	return components.ContentCard("Bills", b.String(), cw)
}
