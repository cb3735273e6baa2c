package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/currency"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show, refresh and chart exchange rates",
	RunE:  runRatesShow,
}

var ratesShowCmd = &cobra.Command{
	Use:   "show [CODE...]",
	Short: "Show cached rates against " + currency.Reference,
	RunE:  runRatesShow,
}

var ratesRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch rates now and update the cache",
	Args:  cobra.NoArgs,
	RunE:  runRatesRefresh,
}

var ratesHistoryCmd = &cobra.Command{
	Use:   "history CODE",
	Short: "Show recorded rates for one currency",
	Args:  cobra.ExactArgs(1),
	RunE:  runRatesHistory,
}

func init() {
	ratesHistoryCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of snapshots")
	ratesCmd.AddCommand(ratesShowCmd, ratesRefreshCmd, ratesHistoryCmd)
	rootCmd.AddCommand(ratesCmd)
}

func runRatesShow(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	s.ensureRates()

	codes := args
	if len(codes) == 0 {
		codes = currency.Codes()
	}

	var rows [][]string
	for _, arg := range codes {
		code, ok := currency.ParseLabel(arg)
		if !ok {
			return fmt.Errorf("unknown currency %q", arg)
		}
		r, ok := s.tr.Rates.Rate(code)
		if !ok {
			if len(args) > 0 {
				rows = append(rows, []string{code, currency.SymbolFor(code), "-", "-"})
			}
			continue
		}
		rows = append(rows, []string{code, currency.SymbolFor(code), cli.FormatRate(r), cli.FormatRate(1 / r)})
	}

	fmt.Println()
	if len(rows) == 0 {
		fmt.Println("  No exchange rates yet. Run `billtracker rates refresh`.")
		fmt.Println()
		return nil
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      s.tr.Status(),
		Headers:    []string{"Code", "Symbol", "Per 1 " + currency.Reference, "In " + currency.Reference},
		Rows:       rows,
		RightAlign: []bool{false, false, true, true},
	}))
	snap := s.tr.Rates.Snapshot()
	if snap.Source != "" {
		fmt.Printf("  Source: %s, fetched %s\n", snap.Source, cli.FormatAgo(snap.FetchedAt))
	}
	fmt.Println()
	return nil
}

func runRatesRefresh(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out := s.tr.Refresh(ctx)
	if out.Err != nil {
		return out.Err
	}
	snap := s.tr.Rates.Snapshot()
	fmt.Printf("  %s (%d currencies from %s)\n", s.tr.Status(), len(snap.Table), snap.Source)
	return nil
}

func runRatesHistory(_ *cobra.Command, args []string) error {
	code, ok := currency.ParseLabel(args[0])
	if !ok {
		return fmt.Errorf("unknown currency %q", args[0])
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if s.history == nil {
		return errors.New("rate history is disabled; set history = true under [rates] in config.toml")
	}
	points, err := s.history.RateHistory(code, flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Println()
	if len(points) == 0 {
		fmt.Printf("  No history for %s yet.\n\n", code)
		return nil
	}

	values := make([]float64, len(points))
	rows := make([][]string, 0, len(points))
	for i, p := range points {
		values[len(points)-1-i] = p.Rate
		rows = append(rows, []string{
			p.FetchedAt.Local().Format("2006-01-02 15:04"),
			cli.FormatRate(p.Rate),
			p.Source,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:      currency.Describe(code) + " per 1 " + currency.Reference,
		Headers:    []string{"Fetched", "Rate", "Source"},
		Rows:       rows,
		RightAlign: []bool{false, true, false},
	}))
	fmt.Printf("  Trend: %s\n", cli.RenderSparkline(values))
	if n, err := s.history.SnapshotCount(); err == nil {
		fmt.Printf("  %d snapshots stored\n", n)
	}
	fmt.Println()
	return nil
}
