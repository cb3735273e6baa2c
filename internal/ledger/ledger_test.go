package ledger

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/billtracker/internal/rates"
)

type fixedRates map[string]float64

func (f fixedRates) Rate(code string) (float64, bool) {
	r, ok := f[code]
	return r, ok && r > 0
}

var usdOnly = fixedRates{"USD": 1}

func mustAdd(t *testing.T, l *Ledger, name string, amount float64, code, due string) Bill {
	t.Helper()
	b, err := l.AddBill(name, amount, code, due)
	if err != nil {
		t.Fatalf("AddBill(%q): %v", name, err)
	}
	return b
}

func names(list []Bill) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Name
	}
	return out
}

func equalNames(got []Bill, want ...string) bool {
	n := names(got)
	if len(n) != len(want) {
		return false
	}
	for i := range n {
		if n[i] != want[i] {
			return false
		}
	}
	return true
}

func TestAddBill_Validation(t *testing.T) {
	tests := []struct {
		name   string
		bill   string
		amount float64
		code   string
		due    string
		field  string
	}{
		{"empty name", "  ", 10, "USD", "", "name"},
		{"zero amount", "Rent", 0, "USD", "", "amount"},
		{"negative amount", "Rent", -5, "USD", "", "amount"},
		{"nan amount", "Rent", math.NaN(), "USD", "", "amount"},
		{"inf amount", "Rent", math.Inf(1), "USD", "", "amount"},
		{"unknown currency", "Rent", 10, "ZZZ", "", "currency"},
		{"bad date", "Rent", 10, "USD", "31/12/2026", "due_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			_, err := l.AddBill(tt.bill, tt.amount, tt.code, tt.due)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Fatalf("Field = %q, want %q", ve.Field, tt.field)
			}
			if len(l.Unpaid) != 0 {
				t.Fatal("invalid bill was appended")
			}
		})
	}
}

func TestAddBill_Normalizes(t *testing.T) {
	l := New()
	b := mustAdd(t, l, "  Rent ", 1200, "€ (EUR)", "2026-11-01")
	if b.Name != "Rent" || b.Currency != "EUR" {
		t.Fatalf("bill = %+v", b)
	}
	if l.BillCurrency != "EUR" {
		t.Fatalf("BillCurrency = %q, want EUR", l.BillCurrency)
	}

	b = mustAdd(t, l, "Gym", 30, "", "")
	if b.Currency != "USD" {
		t.Fatalf("empty currency = %q, want USD", b.Currency)
	}
	if !equalNames(l.Unpaid, "Rent", "Gym") {
		t.Fatalf("order = %v", names(l.Unpaid))
	}
}

func TestPayBill_DebitsAndMoves(t *testing.T) {
	l := New()
	l.Budget = 100
	rs := fixedRates{"USD": 1, "EUR": 0.5}
	b := mustAdd(t, l, "Power", 20, "EUR", "")

	if err := l.PayBill(b, rs); err != nil {
		t.Fatalf("PayBill: %v", err)
	}
	if math.Abs(l.Budget-60) > 1e-9 {
		t.Fatalf("Budget = %v, want 60", l.Budget)
	}
	if len(l.Unpaid) != 0 || !equalNames(l.Paid, "Power") {
		t.Fatalf("unpaid=%v paid=%v", names(l.Unpaid), names(l.Paid))
	}
}

func TestPayBill_TwiceIsNotFound(t *testing.T) {
	l := New()
	l.Budget = 100
	b := mustAdd(t, l, "Water", 25, "USD", "")

	if err := l.PayBill(b, usdOnly); err != nil {
		t.Fatalf("first PayBill: %v", err)
	}
	budget, paid := l.Budget, len(l.Paid)

	err := l.PayBill(b, usdOnly)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("second PayBill err = %v, want NotFoundError", err)
	}
	if l.Budget != budget || len(l.Paid) != paid {
		t.Fatalf("second PayBill mutated state: budget %v->%v paid %d->%d", budget, l.Budget, paid, len(l.Paid))
	}
}

func TestPayBill_UnknownRateSkipsDebit(t *testing.T) {
	l := New()
	l.Budget = 100
	b := mustAdd(t, l, "Ryokan", 5000, "JPY", "")

	if err := l.PayBill(b, usdOnly); err != nil {
		t.Fatalf("PayBill: %v", err)
	}
	if l.Budget != 100 {
		t.Fatalf("Budget = %v, want unchanged 100", l.Budget)
	}
	if !equalNames(l.Paid, "Ryokan") {
		t.Fatalf("paid = %v", names(l.Paid))
	}
}

func TestPayBill_FirstEqualMatch(t *testing.T) {
	l := New()
	a := mustAdd(t, l, "Sub", 10, "USD", "")
	mustAdd(t, l, "Other", 5, "USD", "")
	mustAdd(t, l, "Sub", 10, "USD", "")

	if err := l.PayBill(a, usdOnly); err != nil {
		t.Fatal(err)
	}
	if !equalNames(l.Unpaid, "Other", "Sub") {
		t.Fatalf("unpaid = %v", names(l.Unpaid))
	}
}

func TestDeleteBill(t *testing.T) {
	l := New()
	a := mustAdd(t, l, "A", 1, "USD", "")
	b := mustAdd(t, l, "B", 2, "USD", "")
	if err := l.PayBill(b, usdOnly); err != nil {
		t.Fatal(err)
	}

	l.DeleteBill(b)
	if len(l.Paid) != 0 {
		t.Fatalf("paid = %v, want empty", names(l.Paid))
	}
	l.DeleteBill(a)
	if len(l.Unpaid) != 0 {
		t.Fatalf("unpaid = %v, want empty", names(l.Unpaid))
	}

	// absent bill is a no-op
	l.DeleteBill(Bill{Name: "ghost", Amount: 1, Currency: "USD"})
}

func TestEditBill(t *testing.T) {
	l := New()
	mustAdd(t, l, "A", 1, "USD", "")
	b := mustAdd(t, l, "B", 2, "USD", "")
	mustAdd(t, l, "C", 3, "USD", "")

	updated, err := l.EditBill(b, Bill{Name: "B2", Amount: 20, Currency: "eur", DueDate: "2026-12-01"})
	if err != nil {
		t.Fatalf("EditBill: %v", err)
	}
	if updated.Currency != "EUR" {
		t.Fatalf("Currency = %q", updated.Currency)
	}
	if !equalNames(l.Unpaid, "A", "B2", "C") {
		t.Fatalf("order = %v", names(l.Unpaid))
	}

	var nf *NotFoundError
	if _, err := l.EditBill(b, updated); !errors.As(err, &nf) {
		t.Fatalf("stale edit err = %v, want NotFoundError", err)
	}

	var ve *ValidationError
	if _, err := l.EditBill(updated, Bill{Name: "", Amount: 1, Currency: "USD"}); !errors.As(err, &ve) {
		t.Fatalf("invalid edit err = %v, want ValidationError", err)
	}
	if l.Unpaid[1] != updated {
		t.Fatal("invalid edit changed the bill")
	}
}

func TestEditBill_PaidNotEditable(t *testing.T) {
	l := New()
	b := mustAdd(t, l, "A", 1, "USD", "")
	if err := l.PayBill(b, usdOnly); err != nil {
		t.Fatal(err)
	}
	var nf *NotFoundError
	if _, err := l.EditBill(b, b); !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestSetBudget_RoundTrip(t *testing.T) {
	rs := fixedRates{"USD": 1, "EUR": 0.92, "JPY": 151.3, "KWD": 0.307}
	for code := range rs {
		l := New()
		if err := l.SetBudget(1234.56, code, rs); err != nil {
			t.Fatalf("SetBudget(%s): %v", code, err)
		}
		got, ok := l.BudgetIn(code, rs)
		if !ok {
			t.Fatalf("BudgetIn(%s) unavailable", code)
		}
		if math.Abs(got-1234.56) > 1e-9 {
			t.Fatalf("BudgetIn(%s) = %v, want 1234.56", code, got)
		}
		if l.BudgetCurrency != code {
			t.Fatalf("BudgetCurrency = %q, want %q", l.BudgetCurrency, code)
		}
	}
}

func TestSetBudget_NoRate(t *testing.T) {
	l := New()
	l.Budget = 50
	err := l.SetBudget(100, "GBP", usdOnly)
	var nre *rates.NoRateError
	if !errors.As(err, &nre) || nre.Code != "GBP" {
		t.Fatalf("err = %v, want NoRateError for GBP", err)
	}
	if l.Budget != 50 || l.BudgetCurrency != "USD" {
		t.Fatal("failed SetBudget mutated the ledger")
	}
}

func TestSortByAmount(t *testing.T) {
	l := New()
	mustAdd(t, l, "A", 30, "USD", "")
	mustAdd(t, l, "B", 10, "USD", "")
	mustAdd(t, l, "C", 20, "USD", "")

	l.SortByAmount(usdOnly)
	if !equalNames(l.Unpaid, "A", "C", "B") {
		t.Fatalf("order = %v, want [A C B]", names(l.Unpaid))
	}
}

func TestSortByAmount_UnknownRateLastAndConverted(t *testing.T) {
	l := New()
	rs := fixedRates{"USD": 1, "EUR": 0.5}
	mustAdd(t, l, "Yen", 1, "JPY", "")
	mustAdd(t, l, "Dollars", 30, "USD", "")
	mustAdd(t, l, "Euros", 20, "EUR", "") // 40 USD
	mustAdd(t, l, "Pounds", 1, "GBP", "")

	l.SortByAmount(rs)
	if !equalNames(l.Unpaid, "Euros", "Dollars", "Yen", "Pounds") {
		t.Fatalf("order = %v", names(l.Unpaid))
	}
}

func TestSortByName(t *testing.T) {
	l := New()
	mustAdd(t, l, "banana", 1, "USD", "")
	mustAdd(t, l, "Apple", 1, "USD", "")
	mustAdd(t, l, "cherry", 1, "USD", "")
	mustAdd(t, l, "apple", 2, "USD", "")

	l.SortByName()
	if !equalNames(l.Unpaid, "Apple", "apple", "banana", "cherry") {
		t.Fatalf("order = %v", names(l.Unpaid))
	}
}

func TestSortByDueDate(t *testing.T) {
	l := New()
	mustAdd(t, l, "none", 1, "USD", "")
	mustAdd(t, l, "late", 1, "USD", "2026-12-01")
	mustAdd(t, l, "early", 1, "USD", "2026-01-15")
	l.Unpaid = append(l.Unpaid, Bill{Name: "garbled", Amount: 1, Currency: "USD", DueDate: "soon"})
	mustAdd(t, l, "mid", 1, "USD", "2026-06-30")

	l.SortByDueDate()
	if !equalNames(l.Unpaid, "early", "mid", "late", "none", "garbled") {
		t.Fatalf("order = %v", names(l.Unpaid))
	}
}

func TestSortLeavesPaidAlone(t *testing.T) {
	l := New()
	z := mustAdd(t, l, "Z", 1, "USD", "")
	a := mustAdd(t, l, "A", 2, "USD", "")
	for _, b := range []Bill{z, a} {
		if err := l.PayBill(b, usdOnly); err != nil {
			t.Fatal(err)
		}
	}
	l.SortByName()
	l.SortByAmount(usdOnly)
	if !equalNames(l.Paid, "Z", "A") {
		t.Fatalf("paid = %v", names(l.Paid))
	}
}

func TestClear(t *testing.T) {
	l := New()
	l.Budget = 10
	l.SummaryCurrency = "EUR"
	b := mustAdd(t, l, "A", 1, "USD", "")
	mustAdd(t, l, "B", 1, "USD", "")
	if err := l.PayBill(b, usdOnly); err != nil {
		t.Fatal(err)
	}

	l.Clear()
	if l.Budget != 0 || len(l.Unpaid) != 0 || len(l.Paid) != 0 {
		t.Fatalf("after Clear: %+v", l)
	}
	if l.SummaryCurrency != "EUR" {
		t.Fatal("Clear reset currency selections")
	}
}

func TestOverdue(t *testing.T) {
	today := time.Date(2026, 10, 14, 18, 30, 0, 0, time.Local)
	tests := []struct {
		due  string
		want bool
	}{
		{"2026-10-13", true},
		{"2026-10-14", false},
		{"2026-10-15", false},
		{"", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		b := Bill{Name: "x", Amount: 1, Currency: "USD", DueDate: tt.due}
		if got := b.Overdue(today); got != tt.want {
			t.Errorf("Overdue(%q) = %v, want %v", tt.due, got, tt.want)
		}
	}
}

func TestFind(t *testing.T) {
	l := New()
	mustAdd(t, l, "Rent", 1, "USD", "")
	p := mustAdd(t, l, "Phone", 1, "USD", "")
	if err := l.PayBill(p, usdOnly); err != nil {
		t.Fatal(err)
	}

	if _, ok := l.Find("rent"); !ok {
		t.Fatal("Find(rent) missed")
	}
	if _, ok := l.Find("phone"); ok {
		t.Fatal("Find should only search unpaid bills")
	}
	if b, ok := l.FindAny("PHONE"); !ok || b != p {
		t.Fatalf("FindAny(PHONE) = %+v, %v", b, ok)
	}
}
