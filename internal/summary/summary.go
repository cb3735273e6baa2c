// Package summary derives the totals shown alongside the bill list.
package summary

import (
	"github.com/theirongolddev/billtracker/internal/ledger"
)

// Status is the budget health band.
type Status string

const (
	Neutral  Status = "neutral"
	Critical Status = "critical"
	Warning  Status = "warning"
	Healthy  Status = "healthy"
)

// Band cutoffs on the remaining fraction of the budget.
const (
	criticalBelow = 0.25
	warningBelow  = 0.50
)

// StatusResult is the budget band plus the fraction it was derived from.
type StatusResult struct {
	Status Status
	// Fraction is remaining/budget. It goes negative when over budget.
	Fraction float64
	// DisplayFraction is Fraction clamped at zero, for progress bars.
	DisplayFraction float64
}

// Summary bundles every derived figure for one display currency.
type Summary struct {
	Currency    string
	Available   bool // false when Currency has no rate
	TotalUnpaid float64
	Remaining   float64
	Status      StatusResult
	Skipped     int // unpaid bills left out for want of a rate
}

// totalRef sums unpaid bills in the reference currency, skipping bills whose
// currency has no rate.
func totalRef(unpaid []ledger.Bill, rs ledger.RateSource) (total float64, skipped int) {
	for _, b := range unpaid {
		r, ok := rs.Rate(b.Currency)
		if !ok || r <= 0 {
			skipped++
			continue
		}
		total += b.Amount / r
	}
	return total, skipped
}

// TotalUnpaid returns the unpaid total in display. It is unavailable when
// display has no rate.
func TotalUnpaid(unpaid []ledger.Bill, rs ledger.RateSource, display string) (float64, bool) {
	target, ok := rs.Rate(display)
	if !ok || target <= 0 {
		return 0, false
	}
	ref, _ := totalRef(unpaid, rs)
	return ref * target, true
}

// RemainingBudget returns what is left of budget after every unpaid bill,
// in display.
func RemainingBudget(unpaid []ledger.Bill, budget float64, rs ledger.RateSource, display string) (float64, bool) {
	target, ok := rs.Rate(display)
	if !ok || target <= 0 {
		return 0, false
	}
	ref, _ := totalRef(unpaid, rs)
	return (budget - ref) * target, true
}

// BudgetStatus classifies the remaining budget. It does not depend on the
// display currency.
func BudgetStatus(unpaid []ledger.Bill, budget float64, rs ledger.RateSource) StatusResult {
	if budget <= 0 {
		return StatusResult{Status: Neutral}
	}
	ref, _ := totalRef(unpaid, rs)
	return classify((budget - ref) / budget)
}

func classify(fraction float64) StatusResult {
	res := StatusResult{Fraction: fraction, DisplayFraction: max(0, fraction)}
	switch {
	case fraction < criticalBelow:
		res.Status = Critical
	case fraction < warningBelow:
		res.Status = Warning
	default:
		res.Status = Healthy
	}
	return res
}

// Compute derives the full summary for l in display.
func Compute(l *ledger.Ledger, rs ledger.RateSource, display string) Summary {
	s := Summary{Currency: display}
	ref, skipped := totalRef(l.Unpaid, rs)
	s.Skipped = skipped
	s.Status = BudgetStatus(l.Unpaid, l.Budget, rs)

	target, ok := rs.Rate(display)
	if !ok || target <= 0 {
		return s
	}
	s.Available = true
	s.TotalUnpaid = ref * target
	s.Remaining = (l.Budget - ref) * target
	return s
}
