// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/theirongolddev/billtracker/internal/currency"
	"github.com/theirongolddev/billtracker/internal/summary"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats a plain amount with thousands separators and two
// decimals, e.g. 1234.5 -> "1,234.50".
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return humanize.FormatFloat("#,###.##", v)
}

// FormatAmount prefixes FormatMoney with the currency symbol.
// e.g., (-12, "EUR") -> "-€12.00"
func FormatAmount(v float64, code string) string {
	sym := currency.SymbolFor(code)
	if v < 0 {
		return "-" + sym + FormatMoney(-v)
	}
	return sym + FormatMoney(v)
}

// FormatRate formats an exchange rate with enough precision for both weak
// and strong currencies.
func FormatRate(r float64) string {
	switch {
	case r >= 1000:
		return humanize.FormatFloat("#,###.##", r)
	case r >= 1:
		return fmt.Sprintf("%.4f", r)
	default:
		return fmt.Sprintf("%.6f", r)
	}
}

// FormatPercent formats a 0-1 float as a whole percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatPercentPrecise formats a 0-1 float as a percentage with one decimal.
func FormatPercentPrecise(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatAgo renders a timestamp relative to now, e.g. "3 minutes ago".
func FormatAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// FormatDue renders a due date, or "-" when there is none.
func FormatDue(due string) string {
	if due == "" {
		return "-"
	}
	return due
}

// StatusLabel names a budget band for display.
func StatusLabel(s summary.Status) string {
	switch s {
	case summary.Critical:
		return "Critical"
	case summary.Warning:
		return "Warning"
	case summary.Healthy:
		return "Healthy"
	default:
		return "No budget"
	}
}
