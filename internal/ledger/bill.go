package ledger

import (
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/billtracker/internal/currency"
)

// DateLayout is the due-date format used in the data file.
const DateLayout = "2006-01-02"

// farFuture stands in for bills with no usable due date when sorting.
var farFuture = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// Bill is one amount owed, in its own currency. Two bills with equal fields
// are the same bill.
type Bill struct {
	Name     string
	Amount   float64
	Currency string
	DueDate  string // DateLayout, or empty
}

// Due parses the due date.
func (b Bill) Due() (time.Time, bool) {
	if b.DueDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(b.DueDate))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Overdue reports whether the bill was due before today.
func (b Bill) Overdue(today time.Time) bool {
	due, ok := b.Due()
	if !ok {
		return false
	}
	y, m, d := today.Date()
	return due.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// NewBill validates its inputs and returns a Bill with the currency in
// canonical code form.
func NewBill(name string, amount float64, code, due string) (Bill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Bill{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return Bill{}, &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}

	if strings.TrimSpace(code) == "" {
		code = currency.Reference
	}
	c, ok := currency.ParseLabel(code)
	if !ok {
		return Bill{}, &ValidationError{Field: "currency", Reason: "unknown currency " + strings.TrimSpace(code)}
	}

	due = strings.TrimSpace(due)
	if due != "" {
		if _, err := time.Parse(DateLayout, due); err != nil {
			return Bill{}, &ValidationError{Field: "due_date", Reason: "must be YYYY-MM-DD"}
		}
	}

	return Bill{Name: name, Amount: amount, Currency: c, DueDate: due}, nil
}

// refAmount converts the bill to the reference currency.
func (b Bill) refAmount(rs RateSource) (float64, bool) {
	r, ok := rs.Rate(b.Currency)
	if !ok || r <= 0 {
		return 0, false
	}
	return b.Amount / r, true
}
