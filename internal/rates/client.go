package rates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultPrimaryURL needs no API key.
	DefaultPrimaryURL = "https://api.exchangerate.host/latest?base=USD"
	// DefaultFallbackURL is tried when the primary provider fails.
	DefaultFallbackURL = "https://open.er-api.com/v6/latest/USD"
	// keyedURLFormat is used instead of the primary when an API key is set.
	keyedURLFormat = "https://v6.exchangerate-api.com/v6/%s/latest/USD"

	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// Options configures a Client. Zero values select the public providers.
type Options struct {
	APIKey      string
	PrimaryURL  string
	FallbackURL string
	HTTPClient  *http.Client
	Logger      zerolog.Logger
}

type endpoint struct {
	name string
	url  string
}

// Client fetches rates from a primary provider with one fallback.
type Client struct {
	endpoints []endpoint
	http      *http.Client
	log       zerolog.Logger
}

// NewClient builds a client from opts.
func NewClient(opts Options) *Client {
	primary := endpoint{name: "exchangerate.host", url: DefaultPrimaryURL}
	if key := strings.TrimSpace(opts.APIKey); key != "" {
		primary = endpoint{name: "exchangerate-api.com", url: fmt.Sprintf(keyedURLFormat, key)}
	}
	if opts.PrimaryURL != "" {
		primary = endpoint{name: "primary", url: opts.PrimaryURL}
	}

	fallback := endpoint{name: "open.er-api.com", url: DefaultFallbackURL}
	if opts.FallbackURL != "" {
		fallback = endpoint{name: "fallback", url: opts.FallbackURL}
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		endpoints: []endpoint{primary, fallback},
		http:      hc,
		log:       opts.Logger,
	}
}

// transportError marks a failure to reach a provider at all.
type transportError struct{ err error }

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// Fetch tries each provider once, in order, and returns the first usable
// snapshot. When all fail the error is a *FetchError whose category reflects
// how the last provider failed.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	var lastErr error
	for _, ep := range c.endpoints {
		feed, err := c.fetchOne(ctx, ep)
		if err == nil {
			return Snapshot{
				Table:     Normalize(feed),
				Base:      feed.Base,
				Timestamp: feed.Timestamp,
				FetchedAt: time.Now(),
				Source:    ep.name,
			}, nil
		}
		c.log.Debug().Err(err).Str("provider", ep.name).Msg("rate fetch failed")
		lastErr = err
	}

	cat := CategoryAPI
	var te *transportError
	if errors.As(lastErr, &te) {
		cat = CategoryNetwork
	}
	return Snapshot{}, &FetchError{Category: cat, Err: lastErr}
}

func (c *Client) fetchOne(ctx context.Context, ep endpoint) (Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.url, nil)
	if err != nil {
		return Feed{}, fmt.Errorf("rates: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "billtracker/1.0")

	//nolint:gosec // URL comes from config or package constants
	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error repeats the URL, which may carry the API key.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return Feed{}, &transportError{err: fmt.Errorf("rates: %s: request failed: %w", ep.name, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Feed{}, fmt.Errorf("rates: %s: unexpected status %d", ep.name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Feed{}, &transportError{err: fmt.Errorf("rates: %s: reading response: %w", ep.name, err)}
	}
	return DecodeFeed(body)
}
