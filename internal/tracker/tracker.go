// Package tracker ties the ledger, the rate cache and their files together.
// A Tracker is owned by one goroutine (the TUI update loop or a CLI command);
// only Fetch may run elsewhere.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/billtracker/internal/currency"
	"github.com/theirongolddev/billtracker/internal/ledger"
	"github.com/theirongolddev/billtracker/internal/rates"
	"github.com/theirongolddev/billtracker/internal/summary"

	"github.com/rs/zerolog"
)

// historyKeep bounds the rate history database.
const historyKeep = 500

// Fetcher retrieves a fresh rate snapshot. *rates.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context) (rates.Snapshot, error)
}

// HistoryStore records fetched snapshots. *store.History implements it.
type HistoryStore interface {
	SaveSnapshot(s rates.Snapshot) error
	Latest() (rates.Snapshot, bool, error)
	Prune(keep int) error
}

// Options configures a Tracker.
type Options struct {
	DataPath       string
	RatesCachePath string
	Fetcher        Fetcher
	History        HistoryStore // optional
	Logger         zerolog.Logger
	Now            func() time.Time
}

// Tracker is the application state: the ledger, the rates in effect and the
// rate status line.
type Tracker struct {
	Ledger *ledger.Ledger
	Rates  *rates.Cache

	dataPath   string
	cachePath  string
	fetcher    Fetcher
	history    HistoryStore
	log        zerolog.Logger
	now        func() time.Time
	status     string
	noticeSent bool
}

// SaveError means a mutation was applied in memory but the data file could
// not be written.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string { return "could not write data file: " + e.Err.Error() }
func (e *SaveError) Unwrap() error { return e.Err }

// Open loads the ledger and the last known rates. A missing data file is an
// empty ledger; an unreadable one is an error. Cached rates come from the
// cache file, or from the history database when the file is unusable.
func Open(opts Options) (*Tracker, error) {
	l, err := ledger.Load(opts.DataPath)
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		Ledger:    l,
		Rates:     rates.NewCache(),
		dataPath:  opts.DataPath,
		cachePath: opts.RatesCachePath,
		fetcher:   opts.Fetcher,
		history:   opts.History,
		log:       opts.Logger,
		now:       opts.Now,
	}
	if t.now == nil {
		t.now = time.Now
	}

	if snap, ok := t.loadCachedRates(); ok {
		t.Rates.Replace(snap)
		t.status = "Using cached rates from " + formatStamp(snap.FetchedAt)
		t.log.Debug().Str("source", snap.Source).Int("rates", len(snap.Table)).Msg("loaded cached rates")
	} else {
		t.status = "No exchange rates yet"
	}
	return t, nil
}

func (t *Tracker) loadCachedRates() (rates.Snapshot, bool) {
	if t.cachePath != "" {
		if snap, ok := rates.LoadCached(t.cachePath); ok {
			return snap, true
		}
	}
	if t.history != nil {
		snap, ok, err := t.history.Latest()
		if err != nil {
			t.log.Warn().Err(err).Msg("reading rate history")
			return rates.Snapshot{}, false
		}
		if ok {
			snap.Table = rates.Normalize(rates.Feed{Rates: snap.Table})
			return snap, true
		}
	}
	return rates.Snapshot{}, false
}

// DataPath is the ledger file in use.
func (t *Tracker) DataPath() string { return t.dataPath }

// Status is the rate status line.
func (t *Tracker) Status() string { return t.status }

// Save writes the ledger.
func (t *Tracker) Save() error {
	if err := t.Ledger.Save(t.dataPath); err != nil {
		t.log.Error().Err(err).Str("path", t.dataPath).Msg("saving data file")
		return &SaveError{Err: err}
	}
	return nil
}

// Fetch asks the provider for new rates. It touches no tracker state and is
// safe to call from any goroutine.
func (t *Tracker) Fetch(ctx context.Context) (rates.Snapshot, error) {
	if t.fetcher == nil {
		return rates.Snapshot{}, &rates.FetchError{Category: rates.CategoryAPI, Err: errors.New("no rate provider configured")}
	}
	return t.fetcher.Fetch(ctx)
}

// FetchOutcome describes what ApplyFetch did.
type FetchOutcome struct {
	Updated bool
	// Notice is set on the first network failure since the last success.
	// Callers show it once; later failures only change the status line.
	Notice bool
	Err    error
}

// ApplyFetch installs the result of a Fetch. Successful results replace the
// rates wholesale and are written to the cache file and history; failures
// leave the current rates alone.
func (t *Tracker) ApplyFetch(snap rates.Snapshot, err error) FetchOutcome {
	if err != nil {
		out := FetchOutcome{Err: err}
		t.status = err.Error()
		var fe *rates.FetchError
		if errors.As(err, &fe) && fe.Category == rates.CategoryNetwork && !t.noticeSent {
			t.noticeSent = true
			out.Notice = true
		}
		t.log.Warn().Err(err).Msg("rate fetch failed")
		return out
	}

	t.Rates.Replace(snap)
	t.noticeSent = false
	t.status = "Rates updated at " + formatStamp(t.now())
	t.log.Info().Str("source", snap.Source).Int("rates", len(snap.Table)).Msg("rates updated")

	if t.cachePath != "" {
		if err := rates.SaveCached(t.cachePath, snap); err != nil {
			t.log.Warn().Err(err).Msg("writing rates cache")
		}
	}
	if t.history != nil {
		if err := t.history.SaveSnapshot(snap); err != nil {
			t.log.Warn().Err(err).Msg("recording rate history")
		} else if err := t.history.Prune(historyKeep); err != nil {
			t.log.Warn().Err(err).Msg("pruning rate history")
		}
	}
	return FetchOutcome{Updated: true}
}

// Refresh fetches and applies in one step, for callers without a UI loop.
func (t *Tracker) Refresh(ctx context.Context) FetchOutcome {
	snap, err := t.Fetch(ctx)
	return t.ApplyFetch(snap, err)
}

// AddBill adds an unpaid bill and saves.
func (t *Tracker) AddBill(name string, amount float64, code, due string) (ledger.Bill, error) {
	b, err := t.Ledger.AddBill(name, amount, code, due)
	if err != nil {
		return ledger.Bill{}, err
	}
	return b, t.Save()
}

// PayBill marks b paid and saves.
func (t *Tracker) PayBill(b ledger.Bill) error {
	if err := t.Ledger.PayBill(b, t.Rates); err != nil {
		return err
	}
	return t.Save()
}

// DeleteBill removes b and saves.
func (t *Tracker) DeleteBill(b ledger.Bill) error {
	t.Ledger.DeleteBill(b)
	return t.Save()
}

// EditBill replaces orig with updated and saves.
func (t *Tracker) EditBill(orig, updated ledger.Bill) (ledger.Bill, error) {
	b, err := t.Ledger.EditBill(orig, updated)
	if err != nil {
		return ledger.Bill{}, err
	}
	return b, t.Save()
}

// SetBudget sets the budget from an amount in code and saves.
func (t *Tracker) SetBudget(amount float64, code string) error {
	if err := t.Ledger.SetBudget(amount, code, t.Rates); err != nil {
		return err
	}
	return t.Save()
}

// SortOrder names a bill ordering.
type SortOrder string

const (
	SortName   SortOrder = "name"
	SortDue    SortOrder = "due"
	SortAmount SortOrder = "amount"
)

// Sort reorders the unpaid bills and saves.
func (t *Tracker) Sort(order SortOrder) error {
	switch order {
	case SortName:
		t.Ledger.SortByName()
	case SortDue:
		t.Ledger.SortByDueDate()
	case SortAmount:
		t.Ledger.SortByAmount(t.Rates)
	default:
		return fmt.Errorf("unknown sort order %q (want name, due or amount)", order)
	}
	return t.Save()
}

// Clear drops all bills and the budget and saves.
func (t *Tracker) Clear() error {
	t.Ledger.Clear()
	return t.Save()
}

// SetSummaryCurrency changes the display currency and saves.
func (t *Tracker) SetSummaryCurrency(code string) error {
	c, ok := currency.ParseLabel(code)
	if !ok {
		return &ledger.ValidationError{Field: "currency", Reason: "unknown currency " + code}
	}
	t.Ledger.SummaryCurrency = c
	return t.Save()
}

// Summary computes totals in the summary currency.
func (t *Tracker) Summary() summary.Summary {
	return summary.Compute(t.Ledger, t.Rates, t.Ledger.SummaryCurrency)
}

// SummaryIn computes totals in code.
func (t *Tracker) SummaryIn(code string) summary.Summary {
	return summary.Compute(t.Ledger, t.Rates, code)
}

// BudgetDisplay returns the budget in the budget currency.
func (t *Tracker) BudgetDisplay() (float64, bool) {
	return t.Ledger.BudgetIn(t.Ledger.BudgetCurrency, t.Rates)
}

// Convert converts amount between two currencies at current rates.
func (t *Tracker) Convert(amount float64, from, to string) (float64, error) {
	return t.Rates.Convert(amount, from, to)
}

// Today is the tracker's notion of the current date.
func (t *Tracker) Today() time.Time { return t.now() }

func formatStamp(ts time.Time) string {
	if ts.IsZero() {
		return "an unknown time"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}
