package ledger

import (
	"math"
	"sort"
	"strings"
)

// SortByName orders unpaid bills by name, ignoring case.
func (l *Ledger) SortByName() {
	sort.SliceStable(l.Unpaid, func(i, j int) bool {
		return strings.ToLower(l.Unpaid[i].Name) < strings.ToLower(l.Unpaid[j].Name)
	})
}

// SortByDueDate orders unpaid bills by due date, earliest first. Bills with
// no parseable date go last.
func (l *Ledger) SortByDueDate() {
	key := func(b Bill) int64 {
		if t, ok := b.Due(); ok {
			return t.Unix()
		}
		return farFuture.Unix()
	}
	sort.SliceStable(l.Unpaid, func(i, j int) bool {
		return key(l.Unpaid[i]) < key(l.Unpaid[j])
	})
}

// SortByAmount orders unpaid bills by reference-currency value, largest
// first. Bills with no known rate go last.
func (l *Ledger) SortByAmount(rs RateSource) {
	key := func(b Bill) float64 {
		if ref, ok := b.refAmount(rs); ok {
			return ref
		}
		return math.Inf(1)
	}
	sort.SliceStable(l.Unpaid, func(i, j int) bool {
		ki, kj := key(l.Unpaid[i]), key(l.Unpaid[j])
		if math.IsInf(ki, 1) || math.IsInf(kj, 1) {
			return !math.IsInf(ki, 1) && math.IsInf(kj, 1)
		}
		return ki > kj
	})
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
