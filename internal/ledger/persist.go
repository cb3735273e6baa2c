package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/billtracker/internal/currency"
)

type fileBill struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	DueDate  *string `json:"due_date"`
}

type fileLedger struct {
	Budget          float64    `json:"budget"`
	BudgetCurrency  string     `json:"budgetCurrency"`
	UnpaidBills     []fileBill `json:"unpaidBills"`
	PaidBills       []fileBill `json:"paidBills"`
	BillCurrency    string     `json:"billCurrency"`
	SummaryCurrency string     `json:"summaryCurrency"`
}

// legacyLedger holds the snake_case keys some older data files used.
type legacyLedger struct {
	UnpaidBills     []fileBill `json:"unpaid_bills"`
	PaidBills       []fileBill `json:"paid_bills"`
	BudgetCurrency  string     `json:"budget_currency"`
	BillCurrency    string     `json:"bill_currency"`
	SummaryCurrency string     `json:"summary_currency"`
}

// Load reads a ledger file. A missing file is an empty ledger.
func Load(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}
	return Decode(data)
}

// Decode parses the contents of a ledger file.
func Decode(data []byte) (*Ledger, error) {
	var f fileLedger
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing data file: %w", err)
	}
	// Older files may use snake_case keys. Their decode error only matters
	// when the current keys do not supply the bill lists.
	var legacy legacyLedger
	if err := json.Unmarshal(data, &legacy); err != nil && (f.UnpaidBills == nil || f.PaidBills == nil) {
		return nil, fmt.Errorf("parsing data file: %w", err)
	}

	l := New()
	l.Budget = f.Budget
	l.BudgetCurrency = pickCode(f.BudgetCurrency, legacy.BudgetCurrency)
	l.BillCurrency = pickCode(f.BillCurrency, legacy.BillCurrency)
	l.SummaryCurrency = pickCode(f.SummaryCurrency, legacy.SummaryCurrency)

	unpaid, paid := f.UnpaidBills, f.PaidBills
	if unpaid == nil {
		unpaid = legacy.UnpaidBills
	}
	if paid == nil {
		paid = legacy.PaidBills
	}
	l.Unpaid = fromFile(unpaid)
	l.Paid = fromFile(paid)
	return l, nil
}

// Save writes the ledger to path through a temporary file and a rename, so a
// failed write leaves the previous file intact.
func (l *Ledger) Save(path string) error {
	data, err := l.Encode()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".billtracker-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}

// Encode renders the ledger file contents.
func (l *Ledger) Encode() ([]byte, error) {
	f := fileLedger{
		Budget:          l.Budget,
		BudgetCurrency:  l.BudgetCurrency,
		UnpaidBills:     toFile(l.Unpaid),
		PaidBills:       toFile(l.Paid),
		BillCurrency:    l.BillCurrency,
		SummaryCurrency: l.SummaryCurrency,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("encoding data file: %w", err)
	}
	return buf.Bytes(), nil
}

// pickCode returns the first value that names a catalog currency, accepting
// both "EUR" and "€ (EUR)". Anything else falls back to the reference.
func pickCode(vals ...string) string {
	for _, v := range vals {
		if c, ok := currency.ParseLabel(v); ok {
			return c
		}
	}
	return currency.Reference
}

func fromFile(in []fileBill) []Bill {
	out := make([]Bill, 0, len(in))
	for _, fb := range in {
		b := Bill{Name: fb.Name, Amount: fb.Amount, Currency: fb.Currency}
		if c, ok := currency.ParseLabel(fb.Currency); ok {
			b.Currency = c
		} else if fb.Currency == "" {
			b.Currency = currency.Reference
		}
		if fb.DueDate != nil {
			b.DueDate = *fb.DueDate
		}
		out = append(out, b)
	}
	return out
}

func toFile(in []Bill) []fileBill {
	out := make([]fileBill, 0, len(in))
	for _, b := range in {
		fb := fileBill{Name: b.Name, Amount: b.Amount, Currency: b.Currency}
		if b.DueDate != "" {
			d := b.DueDate
			fb.DueDate = &d
		}
		out = append(out, fb)
	}
	return out
}
