package rates

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_EmptyUntilReplaced(t *testing.T) {
	c := NewCache()
	if !c.Empty() {
		t.Fatal("new cache should be empty")
	}
	if _, ok := c.Rate("USD"); ok {
		t.Fatal("empty cache should not know USD")
	}

	c.Replace(Snapshot{Table: Table{"USD": 1, "EUR": 0.5}})
	if c.Empty() {
		t.Fatal("cache still empty after Replace")
	}
	if r, ok := c.Rate("eur"); !ok || r != 0.5 {
		t.Fatalf("Rate(eur) = %v, %v", r, ok)
	}
}

func TestCache_ReplaceIsWholesale(t *testing.T) {
	c := NewCache()
	c.Replace(Snapshot{Table: Table{"USD": 1, "EUR": 0.5, "GBP": 0.8}})
	c.Replace(Snapshot{Table: Table{"USD": 1, "EUR": 0.6}})

	if _, ok := c.Rate("GBP"); ok {
		t.Fatal("GBP survived a replace that did not include it")
	}
	if r, _ := c.Rate("EUR"); r != 0.6 {
		t.Fatalf("EUR = %v, want 0.6", r)
	}
}

func TestCache_TableIsCopy(t *testing.T) {
	src := Table{"USD": 1, "EUR": 0.5}
	c := NewCache()
	c.Replace(Snapshot{Table: src})

	src["EUR"] = 99
	tbl := c.Table()
	tbl["EUR"] = 42

	if r, _ := c.Rate("EUR"); r != 0.5 {
		t.Fatalf("EUR = %v, cache aliased a caller's map", r)
	}
}

func TestCache_Convert(t *testing.T) {
	c := NewCache()
	c.Replace(Snapshot{Table: Table{"USD": 1, "EUR": 0.5, "GBP": 0.8}})

	got, err := c.Convert(10, "EUR", "GBP")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if math.Abs(got-16) > 1e-9 {
		t.Fatalf("10 EUR -> GBP = %v, want 16", got)
	}

	_, err = c.Convert(10, "EUR", "JPY")
	var nre *NoRateError
	if !errors.As(err, &nre) || nre.Code != "JPY" {
		t.Fatalf("err = %v, want NoRateError for JPY", err)
	}
	if nre.Error() != "could not find exchange rate for JPY" {
		t.Fatalf("message = %q", nre.Error())
	}
}

func TestCacheFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "rates_cache.json")
	want := Snapshot{
		Table:     Table{"USD": 1, "EUR": 0.9, "JPY": 150.25},
		Base:      "USD",
		Timestamp: time.Unix(1700000000, 0).UTC(),
		FetchedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Source:    "open.er-api.com",
	}
	if err := SaveCached(path, want); err != nil {
		t.Fatalf("SaveCached: %v", err)
	}

	got, ok := LoadCached(path)
	if !ok {
		t.Fatal("LoadCached reported no cache")
	}
	if len(got.Table) != 3 || got.Table["JPY"] != 150.25 || got.Table["USD"] != 1 {
		t.Fatalf("Table = %v", got.Table)
	}
	if got.Base != "USD" || got.Source != "open.er-api.com" {
		t.Fatalf("Base/Source = %q/%q", got.Base, got.Source)
	}
	if !got.Timestamp.Equal(want.Timestamp) || !got.FetchedAt.Equal(want.FetchedAt) {
		t.Fatalf("times = %v %v", got.Timestamp, got.FetchedAt)
	}
}

func TestLoadCached_LegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates_cache.json")
	legacy := `{"conversion_rates": {"EUR": 0.9, "USD": 1.01, "ZZZ": 4}, "base_code": "USD", "timestamp": null}`
	if err := os.WriteFile(path, []byte(legacy), 0o600); err != nil {
		t.Fatal(err)
	}

	got, ok := LoadCached(path)
	if !ok {
		t.Fatal("legacy cache not loaded")
	}
	if got.Table["USD"] != 1.0 {
		t.Fatalf("USD = %v, want 1.0", got.Table["USD"])
	}
	if _, ok := got.Table["ZZZ"]; ok {
		t.Fatal("non-catalog code kept")
	}
	if got.Source != "cache" {
		t.Fatalf("Source = %q, want cache", got.Source)
	}
}

func TestLoadCached_Failures(t *testing.T) {
	dir := t.TempDir()
	if _, ok := LoadCached(filepath.Join(dir, "missing.json")); ok {
		t.Fatal("missing file loaded")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := LoadCached(bad); ok {
		t.Fatal("corrupt file loaded")
	}
}
