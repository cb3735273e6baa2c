package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/ledger"

	"github.com/charmbracelet/lipgloss"
)

var warnStyle = lipgloss.NewStyle().Foreground(cli.ColorOrange)

// stderr receives warnings. Tests swap it for a buffer.
var stderr io.Writer = os.Stderr

func warnf(format string, args ...any) {
	fmt.Fprint(stderr, warnStyle.Render("  "+fmt.Sprintf(format, args...)))
}

// parseAmount reads a money argument, allowing thousands separators.
func parseAmount(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ledger.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return v, nil
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}

// billRows renders bills for a table, with each amount also shown in display.
func billRows(s *session, bills []ledger.Bill, display string, paid bool) [][]string {
	today := s.tr.Today()
	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		converted := "n/a"
		if v, err := s.tr.Convert(b.Amount, b.Currency, display); err == nil {
			converted = cli.FormatAmount(v, display)
		}
		status := ""
		switch {
		case paid:
			status = "paid"
		case b.Overdue(today):
			status = lipgloss.NewStyle().Foreground(cli.ColorRed).Bold(true).Render("overdue")
		}
		rows = append(rows, []string{
			b.Name,
			cli.FormatAmount(b.Amount, b.Currency),
			converted,
			cli.FormatDue(b.DueDate),
			status,
		})
	}
	return rows
}
