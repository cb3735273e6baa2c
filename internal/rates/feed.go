// Package rates fetches, normalizes and caches exchange rates against the
// reference currency.
package rates

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/billtracker/internal/currency"
)

// Table maps a catalog code to how many units of it one reference unit buys.
type Table map[string]float64

// Clone returns an independent copy of t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Feed is a decoded upstream payload, whichever provider produced it.
type Feed struct {
	Rates     map[string]float64
	Base      string
	Timestamp time.Time
}

// rawFeed covers the three payload shapes the providers return:
//
//	exchangerate.host      {rates, base, timestamp}
//	open.er-api.com        {rates, base_code, time_last_update_unix}
//	exchangerate-api.com   {result, conversion_rates, base_code, time_last_update_unix}
type rawFeed struct {
	Result             string         `json:"result"`
	Rates              map[string]any `json:"rates"`
	ConversionRates    map[string]any `json:"conversion_rates"`
	Base               string         `json:"base"`
	BaseCode           string         `json:"base_code"`
	Timestamp          any            `json:"timestamp"`
	TimeLastUpdateUnix any            `json:"time_last_update_unix"`
}

var errNoRates = errors.New("rates: payload has no rates")

// DecodeFeed parses a provider response body.
func DecodeFeed(body []byte) (Feed, error) {
	var raw rawFeed
	if err := json.Unmarshal(body, &raw); err != nil {
		return Feed{}, fmt.Errorf("rates: parsing feed: %w", err)
	}
	if raw.Result != "" && raw.Result != "success" {
		return Feed{}, fmt.Errorf("rates: provider returned result %q", raw.Result)
	}

	src := raw.Rates
	if len(src) == 0 {
		src = raw.ConversionRates
	}
	f := Feed{Rates: make(map[string]float64, len(src))}
	for code, v := range src {
		if n, ok := v.(float64); ok {
			f.Rates[code] = n
		}
	}
	if len(f.Rates) == 0 {
		return Feed{}, errNoRates
	}

	f.Base = raw.Base
	if f.Base == "" {
		f.Base = raw.BaseCode
	}
	if f.Base == "" {
		f.Base = currency.Reference
	}

	if ts, ok := unixTime(raw.Timestamp); ok {
		f.Timestamp = ts
	} else if ts, ok := unixTime(raw.TimeLastUpdateUnix); ok {
		f.Timestamp = ts
	}
	return f, nil
}

// unixTime reads a provider timestamp given as a number or a numeric string,
// truncated to whole seconds. Anything else is treated as unreported.
func unixTime(v any) (time.Time, bool) {
	var sec float64
	switch n := v.(type) {
	case float64:
		sec = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return time.Time{}, false
		}
		sec = parsed
	default:
		return time.Time{}, false
	}
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec <= 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(sec), 0).UTC(), true
}

// Normalize projects a feed onto the currency catalog. Codes outside the
// catalog and rates that are not finite and positive are dropped. The
// reference currency is always present at exactly 1.0.
func Normalize(f Feed) Table {
	t := make(Table, len(f.Rates)+1)
	for code, r := range f.Rates {
		if !currency.Known(code) || !usable(r) {
			continue
		}
		e, _ := currency.Lookup(code)
		t[e.Code] = r
	}
	t[currency.Reference] = 1.0
	return t
}

func usable(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}
