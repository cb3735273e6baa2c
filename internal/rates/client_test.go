package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func serve(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// deadURL returns the address of a server that has already shut down.
func deadURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}

func TestFetch_PrimarySucceeds(t *testing.T) {
	var primaryHits, fallbackHits int32
	primary := serve(t, 200, `{"base":"USD","timestamp":1700000000,"rates":{"EUR":0.5,"USD":1.02}}`, &primaryHits)
	fallback := serve(t, 200, `{"base_code":"USD","rates":{"EUR":0.7}}`, &fallbackHits)

	c := NewClient(Options{PrimaryURL: primary.URL, FallbackURL: fallback.URL})
	snap, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if snap.Table["EUR"] != 0.5 {
		t.Fatalf("EUR = %v, want primary's 0.5", snap.Table["EUR"])
	}
	if snap.Table["USD"] != 1.0 {
		t.Fatalf("USD = %v, want 1.0", snap.Table["USD"])
	}
	if snap.Source != "primary" {
		t.Fatalf("Source = %q, want primary", snap.Source)
	}
	if snap.FetchedAt.IsZero() {
		t.Fatal("FetchedAt not set")
	}
	if p, f := atomic.LoadInt32(&primaryHits), atomic.LoadInt32(&fallbackHits); p != 1 || f != 0 {
		t.Fatalf("hits primary=%d fallback=%d, want 1/0", p, f)
	}
}

func TestFetch_FallsBack(t *testing.T) {
	tests := []struct {
		name       string
		primaryURL func(t *testing.T) string
	}{
		{"unreachable", deadURL},
		{"server error", func(t *testing.T) string { return serve(t, 500, `oops`, nil).URL }},
		{"no rates", func(t *testing.T) string {
			return serve(t, 200, `{"success":false,"error":{"type":"missing_access_key"}}`, nil).URL
		}},
		{"malformed", func(t *testing.T) string { return serve(t, 200, `<html>`, nil).URL }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			fallback := serve(t, 200, `{"result":"success","base_code":"USD","rates":{"EUR":0.7}}`, &hits)

			c := NewClient(Options{PrimaryURL: tt.primaryURL(t), FallbackURL: fallback.URL})
			snap, err := c.Fetch(context.Background())
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if snap.Table["EUR"] != 0.7 {
				t.Fatalf("EUR = %v, want fallback's 0.7", snap.Table["EUR"])
			}
			if snap.Source != "fallback" {
				t.Fatalf("Source = %q, want fallback", snap.Source)
			}
			if n := atomic.LoadInt32(&hits); n != 1 {
				t.Fatalf("fallback hits = %d, want 1", n)
			}
		})
	}
}

func TestFetch_NoRetryOfSameEndpoint(t *testing.T) {
	var primaryHits, fallbackHits int32
	primary := serve(t, 503, ``, &primaryHits)
	fallback := serve(t, 503, ``, &fallbackHits)

	c := NewClient(Options{PrimaryURL: primary.URL, FallbackURL: fallback.URL})
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch succeeded, want error")
	}
	if p, f := atomic.LoadInt32(&primaryHits), atomic.LoadInt32(&fallbackHits); p != 1 || f != 1 {
		t.Fatalf("hits primary=%d fallback=%d, want 1/1", p, f)
	}
}

func TestFetch_ErrorCategories(t *testing.T) {
	t.Run("network", func(t *testing.T) {
		c := NewClient(Options{PrimaryURL: deadURL(t), FallbackURL: deadURL(t)})
		_, err := c.Fetch(context.Background())
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("err = %v, want *FetchError", err)
		}
		if fe.Category != CategoryNetwork {
			t.Fatalf("Category = %q, want network", fe.Category)
		}
	})

	t.Run("api", func(t *testing.T) {
		primary := serve(t, 200, `{}`, nil)
		fallback := serve(t, 401, `{"result":"error"}`, nil)
		c := NewClient(Options{PrimaryURL: primary.URL, FallbackURL: fallback.URL})
		_, err := c.Fetch(context.Background())
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("err = %v, want *FetchError", err)
		}
		if fe.Category != CategoryAPI {
			t.Fatalf("Category = %q, want api", fe.Category)
		}
	})
}

func TestNewClient_KeyedPrimary(t *testing.T) {
	c := NewClient(Options{APIKey: " abc123 "})
	if got := c.endpoints[0].url; got != "https://v6.exchangerate-api.com/v6/abc123/latest/USD" {
		t.Fatalf("primary url = %q", got)
	}
	if got := c.endpoints[1].url; got != DefaultFallbackURL {
		t.Fatalf("fallback url = %q", got)
	}

	c = NewClient(Options{})
	if got := c.endpoints[0].url; got != DefaultPrimaryURL {
		t.Fatalf("keyless primary url = %q", got)
	}
}

func TestFetch_ErrorHidesAPIKey(t *testing.T) {
	dead := deadURL(t)
	c := NewClient(Options{PrimaryURL: dead})
	c.endpoints[1].url = dead + "/v6/secret-key/latest/USD"

	_, err := c.Fetch(context.Background())
	if err == nil {
		t.Fatal("Fetch succeeded, want error")
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		if strings.Contains(e.Error(), "secret-key") {
			t.Fatalf("error chain leaks key: %v", e)
		}
	}
}
