package rates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// cacheFile is the on-disk form of the last good snapshot. The key names
// match what earlier releases wrote, so old cache files still load.
type cacheFile struct {
	ConversionRates map[string]float64 `json:"conversion_rates"`
	BaseCode        string             `json:"base_code"`
	Timestamp       *int64             `json:"timestamp"`
	FetchedAt       string             `json:"fetched_at,omitempty"`
	Source          string             `json:"source,omitempty"`
}

// LoadCached reads a snapshot written by SaveCached. Any failure, including a
// missing file, reports false.
func LoadCached(path string) (Snapshot, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, false
	}
	var cf cacheFile
	if err := json.Unmarshal(data, &cf); err != nil || len(cf.ConversionRates) == 0 {
		return Snapshot{}, false
	}

	s := Snapshot{
		Table:  Normalize(Feed{Rates: cf.ConversionRates}),
		Base:   cf.BaseCode,
		Source: cf.Source,
	}
	if cf.Timestamp != nil {
		s.Timestamp = time.Unix(*cf.Timestamp, 0).UTC()
	}
	if t, err := time.Parse(time.RFC3339, cf.FetchedAt); err == nil {
		s.FetchedAt = t
	}
	if s.Source == "" {
		s.Source = "cache"
	}
	return s, true
}

// SaveCached writes s to path, creating the parent directory.
func SaveCached(path string, s Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	cf := cacheFile{
		ConversionRates: s.Table,
		BaseCode:        s.Base,
		Source:          s.Source,
	}
	if !s.Timestamp.IsZero() {
		ts := s.Timestamp.Unix()
		cf.Timestamp = &ts
	}
	if !s.FetchedAt.IsZero() {
		cf.FetchedAt = s.FetchedAt.UTC().Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding rates cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing rates cache: %w", err)
	}
	return nil
}
