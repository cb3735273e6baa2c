package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const appName = "billtracker"

// Env var overrides.
const (
	EnvAPIKey   = "BILLTRACKER_API_KEY"
	EnvDataFile = "BILLTRACKER_DATA_FILE"
)

// Config holds all billtracker configuration.
type Config struct {
	DataFilePath string           `toml:"data_file_path,omitempty"`
	APIKey       string           `toml:"api_key,omitempty"`
	Rates        RatesConfig      `toml:"rates"`
	Appearance   AppearanceConfig `toml:"appearance"`
}

// RatesConfig controls exchange-rate fetching.
type RatesConfig struct {
	RefreshIntervalSec int    `toml:"refresh_interval_sec"`
	PrimaryURL         string `toml:"primary_url,omitempty"`
	FallbackURL        string `toml:"fallback_url,omitempty"`
	AutoRefresh        bool   `toml:"auto_refresh"`
	History            bool   `toml:"history"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Rates: RatesConfig{
			RefreshIntervalSec: 3600,
			AutoRefresh:        true,
			History:            true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// CacheDir returns the XDG-compliant cache directory, home of the rate cache,
// rate history and log file.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", appName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

func legacyPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// RatesCachePath is where the last good rate snapshot is kept.
func RatesCachePath() string {
	return filepath.Join(CacheDir(), "rates_cache.json")
}

// HistoryPath is the rate history database.
func HistoryPath() string {
	return filepath.Join(CacheDir(), "history.db")
}

// Load reads the config file, returning defaults if it doesn't exist. A
// config.json from older releases is read when there is no TOML file. A .env
// file in the config dir is loaded first; it never overrides variables that
// are already set.
func Load() (Config, error) {
	_ = godotenv.Load(filepath.Join(ConfigDir(), ".env"))

	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err := loadLegacy(&cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if cfg.Rates.RefreshIntervalSec <= 0 {
		cfg.Rates.RefreshIntervalSec = DefaultConfig().Rates.RefreshIntervalSec
	}
	return cfg, nil
}

// legacyConfig is the JSON file earlier releases wrote.
type legacyConfig struct {
	DataFilePath string `json:"data_file_path"`
	APIKey       string `json:"api_key"`
}

func loadLegacy(cfg *Config) error {
	data, err := os.ReadFile(legacyPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading legacy config: %w", err)
	}
	var lc legacyConfig
	if err := json.Unmarshal(data, &lc); err != nil {
		return fmt.Errorf("parsing legacy config: %w", err)
	}
	cfg.DataFilePath = lc.DataFilePath
	cfg.APIKey = lc.APIKey
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// GetAPIKey returns the API key from env var or config, in that order.
func GetAPIKey(cfg Config) string {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key
	}
	return strings.TrimSpace(cfg.APIKey)
}

// DataFile returns the ledger path: env var, then config, then the default
// next to the config file.
func DataFile(cfg Config) string {
	if p := strings.TrimSpace(os.Getenv(EnvDataFile)); p != "" {
		return expandHome(p)
	}
	if p := strings.TrimSpace(cfg.DataFilePath); p != "" {
		return expandHome(p)
	}
	return filepath.Join(ConfigDir(), "bill_data.json")
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Exists returns true if a config file exists on disk, in either format.
func Exists() bool {
	if _, err := os.Stat(ConfigPath()); err == nil {
		return true
	}
	_, err := os.Stat(legacyPath())
	return err == nil
}
