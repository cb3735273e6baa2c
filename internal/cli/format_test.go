package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/theirongolddev/billtracker/internal/summary"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		v    float64
		code string
		want string
	}{
		{0, "USD", "$0.00"},
		{1234.5, "USD", "$1,234.50"},
		{1234567.891, "EUR", "€1,234,567.89"},
		{-12, "EUR", "-€12.00"},
		{9.999, "GBP", "£10.00"},
		{5, "ZZZ", "$5.00"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.v, tt.code); got != tt.want {
			t.Errorf("FormatAmount(%v, %s) = %q, want %q", tt.v, tt.code, got, tt.want)
		}
	}
}

func TestFormatMoney_NonFinite(t *testing.T) {
	if got := FormatMoney(math.NaN()); got != "n/a" {
		t.Fatalf("FormatMoney(NaN) = %q", got)
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(0.92); got != "0.920000" {
		t.Errorf("FormatRate(0.92) = %q", got)
	}
	if got := FormatRate(151.3); got != "151.3000" {
		t.Errorf("FormatRate(151.3) = %q", got)
	}
	if got := FormatRate(16250); got != "16,250.00" {
		t.Errorf("FormatRate(16250) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.245); got != "24%" && got != "25%" {
		t.Errorf("FormatPercent(0.245) = %q", got)
	}
	if got := FormatPercent(1); got != "100%" {
		t.Errorf("FormatPercent(1) = %q", got)
	}
	if got := FormatPercentPrecise(0.0125); got != "1.2%" && got != "1.3%" {
		t.Errorf("FormatPercentPrecise(0.0125) = %q", got)
	}
}

func TestRenderTable_AlignsWideSymbols(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Name", "Amount"},
		Rows: [][]string{
			{"Rent", "€900.00"},
			{"Internet", "$45.99"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
	w := len([]rune(stripANSI(lines[0])))
	for i, l := range lines {
		if got := len([]rune(stripANSI(l))); got != w {
			t.Fatalf("line %d width %d, want %d:\n%s", i, got, w, out)
		}
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{1, 2, 3}); got != "▁▄█" {
		t.Fatalf("RenderSparkline = %q", got)
	}
	if got := RenderSparkline([]float64{5, 5}); got != "▁▁" {
		t.Fatalf("flat series = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Fatal("empty series should render nothing")
	}
}

func TestRenderBudgetBar(t *testing.T) {
	out := stripANSI(RenderBudgetBar(summary.StatusResult{Status: summary.Warning, Fraction: 0.4, DisplayFraction: 0.4}, 10))
	if !strings.Contains(out, "████░░░░░░") || !strings.Contains(out, "40%") || !strings.Contains(out, "Warning") {
		t.Fatalf("bar = %q", out)
	}
}

// stripANSI drops terminal escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	in := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			in = true
		case in && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			in = false
		case !in:
			b.WriteRune(r)
		}
	}
	return b.String()
}
