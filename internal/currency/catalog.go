// Package currency holds the fixed catalog of currencies billtracker can
// display and convert between.
package currency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Reference is the currency every stored amount is normalized to.
// Its exchange rate is always exactly 1.0.
const Reference = "USD"

// DefaultSymbol is shown for codes missing from the catalog.
const DefaultSymbol = "$"

// Entry is one catalog currency.
type Entry struct {
	Code   string
	Symbol string
	Name   string // empty when no human-readable name is known
}

// Label renders the entry the way selectors show it, e.g. "€ (EUR)".
func (e Entry) Label() string {
	return fmt.Sprintf("%s (%s)", e.Symbol, e.Code)
}

var byCode = indexEntries(entries)

func indexEntries(list []Entry) map[string]int {
	idx := make(map[string]int, len(list))
	for i, e := range list {
		idx[e.Code] = i
	}
	return idx
}

// List returns all currencies in canonical display order.
func List() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Codes returns every catalog code in display order.
func Codes() []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Code
	}
	return out
}

// Lookup returns the entry for code.
func Lookup(code string) (Entry, bool) {
	i, ok := byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Entry{}, false
	}
	return entries[i], true
}

// Known reports whether code is in the catalog.
func Known(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// SymbolFor returns the display symbol for code, or DefaultSymbol.
func SymbolFor(code string) string {
	if e, ok := Lookup(code); ok {
		return e.Symbol
	}
	return DefaultSymbol
}

// Label returns the selector label for code. Unknown codes are returned as-is.
func Label(code string) string {
	if e, ok := Lookup(code); ok {
		return e.Label()
	}
	return code
}

// Describe combines code, symbol and name for search results, e.g.
// "EUR — € — Euro". The name part is omitted when unknown.
func Describe(code string) string {
	e, ok := Lookup(code)
	if !ok {
		return code
	}
	if e.Name == "" {
		return e.Code + " — " + e.Symbol
	}
	return e.Code + " — " + e.Symbol + " — " + e.Name
}

// ParseLabel extracts a catalog code from either a bare code ("eur") or a
// selector label ("€ (EUR)"), which is how older data files stored it.
func ParseLabel(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if open := strings.LastIndex(s, "("); open >= 0 {
		s = strings.TrimSuffix(s[open+1:], ")")
	}
	e, ok := Lookup(s)
	if !ok {
		return "", false
	}
	return e.Code, true
}

// Search filters the catalog by a case-insensitive query matched against the
// code, symbol, label and name. When nothing matches literally, codes and name
// words within a small edit distance are returned instead, closest first.
func Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return List()
	}

	var out []Entry
	for _, e := range entries {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	if len(out) > 0 || len([]rune(q)) < 3 {
		return out
	}
	return fuzzySearch(q)
}

func matches(e Entry, q string) bool {
	return strings.Contains(strings.ToLower(e.Code), q) ||
		strings.Contains(strings.ToLower(e.Symbol), q) ||
		strings.Contains(strings.ToLower(e.Label()), q) ||
		(e.Name != "" && strings.Contains(strings.ToLower(e.Name), q))
}

func fuzzySearch(q string) []Entry {
	maxEdits := 1
	if len([]rune(q)) > 4 {
		maxEdits = 2
	}

	type scored struct {
		idx  int
		dist int
	}
	var hits []scored
	for i, e := range entries {
		best := levenshtein.ComputeDistance(q, strings.ToLower(e.Code))
		for _, word := range strings.Fields(strings.ToLower(e.Name)) {
			if d := levenshtein.ComputeDistance(q, word); d < best {
				best = d
			}
		}
		if best <= maxEdits {
			hits = append(hits, scored{idx: i, dist: best})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})

	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = entries[h.idx]
	}
	return out
}
