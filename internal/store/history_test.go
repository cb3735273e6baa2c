package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/billtracker/internal/rates"
)

func openTemp(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func snap(eur float64, at time.Time) rates.Snapshot {
	return rates.Snapshot{
		Table:     rates.Table{"USD": 1, "EUR": eur},
		Base:      "USD",
		Timestamp: at.Add(-time.Hour),
		FetchedAt: at,
		Source:    "open.er-api.com",
	}
}

func TestHistory_LatestEmpty(t *testing.T) {
	h := openTemp(t)
	_, ok, err := h.Latest()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("Latest reported a snapshot in an empty db")
	}
}

func TestHistory_SaveAndLatest(t *testing.T) {
	h := openTemp(t)
	t0 := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	for i, eur := range []float64{0.91, 0.92, 0.93} {
		if err := h.SaveSnapshot(snap(eur, t0.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveSnapshot: %v", err)
		}
	}

	got, ok, err := h.Latest()
	if err != nil || !ok {
		t.Fatalf("Latest: %v %v", ok, err)
	}
	if got.Table["EUR"] != 0.93 || got.Table["USD"] != 1 || len(got.Table) != 2 {
		t.Fatalf("Table = %v", got.Table)
	}
	if !got.FetchedAt.Equal(t0.Add(2*time.Hour)) {
		t.Fatalf("FetchedAt = %v", got.FetchedAt)
	}
	if !got.Timestamp.Equal(t0.Add(time.Hour)) {
		t.Fatalf("Timestamp = %v", got.Timestamp)
	}
	if got.Source != "open.er-api.com" || got.Base != "USD" {
		t.Fatalf("Source/Base = %q/%q", got.Source, got.Base)
	}
}

func TestHistory_RateHistory(t *testing.T) {
	h := openTemp(t)
	t0 := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	for i, eur := range []float64{0.91, 0.92, 0.93, 0.94} {
		if err := h.SaveSnapshot(snap(eur, t0.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	pts, err := h.RateHistory("eur", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 3 {
		t.Fatalf("got %d points, want 3", len(pts))
	}
	want := []float64{0.94, 0.93, 0.92}
	for i, p := range pts {
		if p.Rate != want[i] {
			t.Fatalf("point %d rate = %v, want %v", i, p.Rate, want[i])
		}
	}

	pts, err = h.RateHistory("JPY", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 0 {
		t.Fatalf("JPY history = %v, want none", pts)
	}
}

func TestHistory_Prune(t *testing.T) {
	h := openTemp(t)
	t0 := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := h.SaveSnapshot(snap(0.9+float64(i)/100, t0.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}
	if err := h.Prune(2); err != nil {
		t.Fatal(err)
	}
	n, err := h.SnapshotCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("SnapshotCount = %d, want 2", n)
	}
	pts, err := h.RateHistory("EUR", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 2 {
		t.Fatalf("rates of pruned snapshots survived: %d points", len(pts))
	}
}

func TestHistory_RejectsEmpty(t *testing.T) {
	h := openTemp(t)
	if err := h.SaveSnapshot(rates.Snapshot{}); err == nil {
		t.Fatal("SaveSnapshot accepted an empty snapshot")
	}
}
