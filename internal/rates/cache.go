package rates

import (
	"strings"
	"time"
)

// Snapshot is one normalized rate table plus where and when it came from.
type Snapshot struct {
	Table     Table
	Base      string
	Timestamp time.Time // provider's own update time, zero if unreported
	FetchedAt time.Time
	Source    string
}

// Cache holds the rates currently in effect. It is owned by a single
// goroutine and never partially updated.
type Cache struct {
	snap Snapshot
}

// NewCache returns an empty cache. Nothing converts until Replace is called.
func NewCache() *Cache {
	return &Cache{}
}

// Replace swaps in a new snapshot wholesale.
func (c *Cache) Replace(s Snapshot) {
	s.Table = s.Table.Clone()
	c.snap = s
}

// Rate returns the positive rate for code.
func (c *Cache) Rate(code string) (float64, bool) {
	r, ok := c.snap.Table[strings.ToUpper(strings.TrimSpace(code))]
	if !ok || r <= 0 {
		return 0, false
	}
	return r, true
}

// Table returns a copy of the current table.
func (c *Cache) Table() Table {
	return c.snap.Table.Clone()
}

// Snapshot returns the current snapshot. The table is a copy.
func (c *Cache) Snapshot() Snapshot {
	s := c.snap
	s.Table = s.Table.Clone()
	return s
}

// Empty reports whether no rates have been loaded yet.
func (c *Cache) Empty() bool {
	return len(c.snap.Table) == 0
}

// Convert routes amount from one currency to another through the reference
// currency.
func (c *Cache) Convert(amount float64, from, to string) (float64, error) {
	fr, ok := c.Rate(from)
	if !ok {
		return 0, &NoRateError{Code: from}
	}
	tr, ok := c.Rate(to)
	if !ok {
		return 0, &NoRateError{Code: to}
	}
	return amount / fr * tr, nil
}
