package tui

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/billtracker/internal/config"
	"github.com/theirongolddev/billtracker/internal/ledger"
	"github.com/theirongolddev/billtracker/internal/rates"
	"github.com/theirongolddev/billtracker/internal/tracker"
	"github.com/theirongolddev/billtracker/internal/tui/components"
	"github.com/theirongolddev/billtracker/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type stubFetcher struct{}

func (stubFetcher) Fetch(context.Context) (rates.Snapshot, error) {
	return rates.Snapshot{}, errors.New("not used")
}

func newTestApp(t *testing.T) (App, *config.Config) {
	t.Helper()
	tr, err := tracker.Open(tracker.Options{
		DataPath: filepath.Join(t.TempDir(), "bill_data.json"),
		Fetcher:  stubFetcher{},
		Logger:   zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("tracker.Open: %v", err)
	}
	tr.Rates.Replace(rates.Snapshot{Table: rates.Table{"USD": 1, "EUR": 0.5, "GBP": 0.8}})

	saved := &config.Config{}
	a := NewApp(Options{
		Tracker: tr,
		Config:  config.DefaultConfig(),
		Logger:  zerolog.Nop(),
		SaveConfig: func(c config.Config) error {
			*saved = c
			return nil
		},
	})
	a.width, a.height = 120, 40
	return a, saved
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestRatesFetchedReplacesRates(t *testing.T) {
	a, _ := newTestApp(t)
	m, _ := a.Update(RatesFetchedMsg{Snapshot: rates.Snapshot{
		Table:  rates.Table{"USD": 1, "EUR": 0.9},
		Source: "test",
	}})
	a = m.(App)

	if r, _ := a.tr.Rates.Rate("EUR"); r != 0.9 {
		t.Fatalf("EUR = %v, want 0.9", r)
	}
	if _, ok := a.tr.Rates.Rate("GBP"); ok {
		t.Fatal("GBP should be gone after a wholesale replace")
	}
	if a.inflight != 0 {
		t.Fatalf("inflight = %d, want 0", a.inflight)
	}
	if !strings.HasPrefix(a.tr.Status(), "Rates updated") {
		t.Fatalf("status = %q", a.tr.Status())
	}
}

func TestNetworkNoticeShownOnce(t *testing.T) {
	a, _ := newTestApp(t)
	netErr := &rates.FetchError{Category: rates.CategoryNetwork, Err: errors.New("dial tcp: refused")}

	m, _ := a.Update(RatesFetchedMsg{Err: netErr})
	a = m.(App)
	if a.notice == "" {
		t.Fatal("first network failure should raise the notice")
	}
	if r, _ := a.tr.Rates.Rate("EUR"); r != 0.5 {
		t.Fatal("cached rates must survive a failed fetch")
	}

	a = press(t, a, "j")
	if a.notice != "" {
		t.Fatal("any key should dismiss the notice")
	}

	m, _ = a.Update(RatesFetchedMsg{Err: netErr})
	a = m.(App)
	if a.notice != "" {
		t.Fatal("second failure in the same outage should not raise the notice again")
	}
	if a.tr.Status() != netErr.Error() {
		t.Fatalf("status = %q, want %q", a.tr.Status(), netErr.Error())
	}
}

func TestPayKeyMovesBillAndDebitsBudget(t *testing.T) {
	a, _ := newTestApp(t)
	if err := a.tr.SetBudget(100, "USD"); err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if _, err := a.tr.AddBill("Rent", 20, "EUR", ""); err != nil {
		t.Fatalf("AddBill: %v", err)
	}

	a = press(t, a, "b", "p")

	l := a.tr.Ledger
	if len(l.Unpaid) != 0 || len(l.Paid) != 1 {
		t.Fatalf("unpaid=%d paid=%d, want 0/1", len(l.Unpaid), len(l.Paid))
	}
	if math.Abs(l.Budget-60) > 1e-9 {
		t.Fatalf("budget = %v, want 60", l.Budget)
	}
	if a.flash != "Paid Rent" || a.flashErr {
		t.Fatalf("flash = %q (err=%v)", a.flash, a.flashErr)
	}

	// The cursor now rests on the paid bill; paying it again is a no-op.
	a = press(t, a, "p")
	if len(a.tr.Ledger.Paid) != 1 {
		t.Fatal("paid bill paid twice")
	}
}

func TestSortKeys(t *testing.T) {
	a, _ := newTestApp(t)
	for _, b := range []struct {
		name string
		amt  float64
	}{{"A", 30}, {"B", 10}, {"C", 20}} {
		if _, err := a.tr.AddBill(b.name, b.amt, "USD", ""); err != nil {
			t.Fatalf("AddBill: %v", err)
		}
	}

	a = press(t, a, "b", "3")
	var got []string
	for _, b := range a.tr.Ledger.Unpaid {
		got = append(got, b.Name)
	}
	if strings.Join(got, "") != "ACB" {
		t.Fatalf("amount order = %v, want [A C B]", got)
	}

	a = press(t, a, "1")
	if a.tr.Ledger.Unpaid[0].Name != "A" || a.tr.Ledger.Unpaid[2].Name != "C" {
		t.Fatalf("name order = %+v", a.tr.Ledger.Unpaid)
	}
}

func TestStaleBillIsOnlyLogged(t *testing.T) {
	a, _ := newTestApp(t)
	a.report(&ledger.NotFoundError{Bill: ledger.Bill{Name: "gone"}}, "Paid gone")
	if a.flash != "" {
		t.Fatalf("flash = %q, want nothing for a stale bill", a.flash)
	}

	a.report(&rates.NoRateError{Code: "XYZ"}, "ignored")
	if !a.flashErr || !strings.Contains(a.flash, "XYZ") {
		t.Fatalf("flash = %q, want the rate error", a.flash)
	}
}

func TestAddBillFormSubmit(t *testing.T) {
	a, _ := newTestApp(t)
	a.openForm(formAddBill, nil)
	if a.formVals.currency != "USD" {
		t.Fatalf("add form currency = %q, want last used", a.formVals.currency)
	}
	a.formVals.name = "Internet"
	a.formVals.amount = "1,045.99"
	a.formVals.currency = "GBP"
	a.formVals.due = "2026-11-01"
	a.submitForm()

	if len(a.tr.Ledger.Unpaid) != 1 {
		t.Fatalf("unpaid = %d, want 1", len(a.tr.Ledger.Unpaid))
	}
	got := a.tr.Ledger.Unpaid[0]
	want := ledger.Bill{Name: "Internet", Amount: 1045.99, Currency: "GBP", DueDate: "2026-11-01"}
	if got != want {
		t.Fatalf("bill = %+v, want %+v", got, want)
	}
	if a.tr.Ledger.BillCurrency != "GBP" {
		t.Fatalf("BillCurrency = %q", a.tr.Ledger.BillCurrency)
	}
}

func TestEditFormKeepsExactAmount(t *testing.T) {
	for _, amount := range []float64{12.345, 0.004, 1045.99} {
		a, _ := newTestApp(t)
		if _, err := a.tr.AddBill("Water", amount, "EUR", ""); err != nil {
			t.Fatal(err)
		}
		a.openForm(formEditBill, &a.tr.Ledger.Unpaid[0])
		if err := validatePositive(a.formVals.amount); err != nil {
			t.Fatalf("amount %v: prefilled %q fails validation: %v", amount, a.formVals.amount, err)
		}
		a.formVals.name = "Water and sewer"
		a.submitForm()

		got := a.tr.Ledger.Unpaid[0]
		if got.Amount != amount || got.Name != "Water and sewer" {
			t.Fatalf("after name-only edit: %+v, want amount %v", got, amount)
		}
	}
}

func TestEditPaidBillRefused(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.tr.AddBill("Gym", 5, "USD", ""); err != nil {
		t.Fatal(err)
	}
	a = press(t, a, "b", "p", "e")
	if a.form != nil {
		t.Fatal("edit form opened for a paid bill")
	}
	if !a.flashErr {
		t.Fatal("expected an error flash")
	}
}

func TestConvertFromCurrenciesTab(t *testing.T) {
	a, _ := newTestApp(t)
	a.curState.query = "EUR"
	a.activeTab = tabCurrencies
	a.openForm(formConvert, nil)
	if a.formVals.currency != "EUR" {
		t.Fatalf("convert from = %q, want the selected currency", a.formVals.currency)
	}
	a.formVals.amount = "10"
	a.formVals.target = "GBP"
	a.submitForm()
	if a.curState.conversion != "€10.00 = £16.00" {
		t.Fatalf("conversion = %q", a.curState.conversion)
	}
}

func TestSetupFormSavesConfig(t *testing.T) {
	a, saved := newTestApp(t)
	t.Cleanup(func() { theme.SetActive("flexoki-dark") })
	a.openForm(formSetup, nil)
	a.formVals.apiKey = "  abc123  "
	a.formVals.interval = 900
	a.formVals.theme = "terminal"
	a.submitForm()

	if saved.APIKey != "abc123" || saved.Rates.RefreshIntervalSec != 900 || saved.Appearance.Theme != "terminal" {
		t.Fatalf("saved config = %+v", *saved)
	}
	if a.refreshInterval.Seconds() != 900 {
		t.Fatalf("refreshInterval = %v", a.refreshInterval)
	}
}

func TestAutoRefreshToggle(t *testing.T) {
	a, saved := newTestApp(t)
	a = press(t, a, "R")
	if a.autoRefresh || saved.Rates.AutoRefresh {
		t.Fatal("R should turn auto refresh off and persist it")
	}
	before := a.inflight
	m, _ := a.Update(refreshTickMsg{})
	if m.(App).inflight != before {
		t.Fatal("tick fetched with auto refresh off")
	}
	a = press(t, a, "r")
	if a.inflight != before+1 {
		t.Fatal("manual refresh should always fetch")
	}
}

func TestViewShowsSummary(t *testing.T) {
	a, _ := newTestApp(t)
	if err := a.tr.SetBudget(100, "USD"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.tr.AddBill("Rent", 80, "USD", "2000-01-01"); err != nil {
		t.Fatal(err)
	}

	out := a.View()
	for _, want := range []string{"Budget", "$100.00", "$80.00", "$20.00", "Critical", "Rent"} {
		if !strings.Contains(out, want) {
			t.Fatalf("overview missing %q", want)
		}
	}

	a.activeTab = tabBills
	if out := a.View(); !strings.Contains(out, "overdue") {
		t.Fatal("bills tab should flag the overdue bill")
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(pos + 50); got != -1 {
			t.Fatalf("past the last tab -> %d, want -1", got)
		}
	}
}
