package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/billtracker/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	dataFile := config.DataFile(cfg)
	if flagDataFile != "" {
		dataFile = flagDataFile
	}
	fmt.Printf("    Data file: %s\n", dataFile)
	if os.Getenv(config.EnvDataFile) != "" {
		fmt.Printf("               (from %s)\n", config.EnvDataFile)
	}
	apiKey := config.GetAPIKey(cfg)
	if apiKey != "" {
		fmt.Printf("    API key:   %s\n", maskAPIKey(apiKey))
	} else {
		fmt.Println("    API key:   not configured (free providers only)")
	}
	fmt.Println()

	fmt.Println("  [Rates]")
	fmt.Printf("    Refresh interval: %ds\n", cfg.Rates.RefreshIntervalSec)
	fmt.Printf("    Auto refresh:     %v\n", cfg.Rates.AutoRefresh)
	fmt.Printf("    History:          %v\n", cfg.Rates.History)
	if cfg.Rates.PrimaryURL != "" {
		fmt.Printf("    Primary URL:      %s\n", cfg.Rates.PrimaryURL)
	}
	if cfg.Rates.FallbackURL != "" {
		fmt.Printf("    Fallback URL:     %s\n", cfg.Rates.FallbackURL)
	}
	fmt.Printf("    Cache file:       %s\n", config.RatesCachePath())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `billtracker setup` to reconfigure.")
	return nil
}
