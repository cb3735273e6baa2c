// Package ledger owns the bills and the budget. Amounts are kept in each
// bill's own currency; the budget is kept in the reference currency and only
// converted when it is set or displayed.
package ledger

import (
	"math"

	"github.com/theirongolddev/billtracker/internal/currency"
	"github.com/theirongolddev/billtracker/internal/rates"
)

// RateSource supplies the current rate of a currency against the reference.
// *rates.Cache implements it.
type RateSource interface {
	Rate(code string) (float64, bool)
}

// Ledger is the persisted state of the tracker. It is not safe for
// concurrent use; one goroutine owns it.
type Ledger struct {
	Budget          float64 // reference currency
	BudgetCurrency  string
	BillCurrency    string // last currency a bill was added in
	SummaryCurrency string
	Unpaid          []Bill
	Paid            []Bill
}

// New returns an empty ledger with every selection on the reference currency.
func New() *Ledger {
	return &Ledger{
		BudgetCurrency:  currency.Reference,
		BillCurrency:    currency.Reference,
		SummaryCurrency: currency.Reference,
		Unpaid:          []Bill{},
		Paid:            []Bill{},
	}
}

// AddBill validates and appends a new unpaid bill.
func (l *Ledger) AddBill(name string, amount float64, code, due string) (Bill, error) {
	b, err := NewBill(name, amount, code, due)
	if err != nil {
		return Bill{}, err
	}
	l.Unpaid = append(l.Unpaid, b)
	l.BillCurrency = b.Currency
	return b, nil
}

// PayBill moves b from unpaid to paid and debits the budget by its
// reference-currency value. Without a known rate the bill still moves but
// the budget is left alone.
func (l *Ledger) PayBill(b Bill, rs RateSource) error {
	i := indexOf(l.Unpaid, b)
	if i < 0 {
		return &NotFoundError{Bill: b}
	}
	if ref, ok := b.refAmount(rs); ok {
		l.Budget -= ref
	}
	l.Unpaid = removeAt(l.Unpaid, i)
	l.Paid = append(l.Paid, b)
	return nil
}

// DeleteBill removes b from whichever list holds it. Absent bills are ignored.
func (l *Ledger) DeleteBill(b Bill) {
	if i := indexOf(l.Unpaid, b); i >= 0 {
		l.Unpaid = removeAt(l.Unpaid, i)
		return
	}
	if i := indexOf(l.Paid, b); i >= 0 {
		l.Paid = removeAt(l.Paid, i)
	}
}

// EditBill replaces orig with updated in place. Only unpaid bills can be
// edited.
func (l *Ledger) EditBill(orig, updated Bill) (Bill, error) {
	i := indexOf(l.Unpaid, orig)
	if i < 0 {
		return Bill{}, &NotFoundError{Bill: orig}
	}
	b, err := NewBill(updated.Name, updated.Amount, updated.Currency, updated.DueDate)
	if err != nil {
		return Bill{}, err
	}
	l.Unpaid[i] = b
	return b, nil
}

// SetBudget sets the budget from an amount expressed in code.
func (l *Ledger) SetBudget(amount float64, code string, rs RateSource) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &ValidationError{Field: "budget", Reason: "must be a number"}
	}
	c, ok := currency.ParseLabel(code)
	if !ok {
		c = code
	}
	r, ok := rs.Rate(c)
	if !ok || r <= 0 {
		return &rates.NoRateError{Code: c}
	}
	l.Budget = amount / r
	l.BudgetCurrency = c
	return nil
}

// BudgetIn returns the budget expressed in code.
func (l *Ledger) BudgetIn(code string, rs RateSource) (float64, bool) {
	r, ok := rs.Rate(code)
	if !ok || r <= 0 {
		return 0, false
	}
	return l.Budget * r, true
}

// Clear drops every bill and zeroes the budget. Currency selections are kept.
func (l *Ledger) Clear() {
	l.Unpaid = []Bill{}
	l.Paid = []Bill{}
	l.Budget = 0
}

// Find returns the first unpaid bill with the given name, case-insensitively.
// CLI commands use it to address bills by name.
func (l *Ledger) Find(name string) (Bill, bool) {
	for _, b := range l.Unpaid {
		if equalFold(b.Name, name) {
			return b, true
		}
	}
	return Bill{}, false
}

// FindAny is Find over both lists, unpaid first.
func (l *Ledger) FindAny(name string) (Bill, bool) {
	if b, ok := l.Find(name); ok {
		return b, true
	}
	for _, b := range l.Paid {
		if equalFold(b.Name, name) {
			return b, true
		}
	}
	return Bill{}, false
}

func indexOf(list []Bill, b Bill) int {
	for i := range list {
		if list[i] == b {
			return i
		}
	}
	return -1
}

func removeAt(list []Bill, i int) []Bill {
	out := make([]Bill, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
