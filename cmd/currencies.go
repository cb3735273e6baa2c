package cmd

import (
	"fmt"

	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/currency"

	"github.com/spf13/cobra"
)

var currenciesCmd = &cobra.Command{
	Use:     "currencies [QUERY]",
	Aliases: []string{"cur"},
	Short:   "Search the currency catalog",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runCurrencies,
}

func init() {
	rootCmd.AddCommand(currenciesCmd)
}

func runCurrencies(_ *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	entries := currency.Search(query)

	fmt.Println()
	if len(entries) == 0 {
		fmt.Printf("  No currency matches %q.\n\n", query)
		return nil
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rate := "-"
		if r, ok := s.tr.Rates.Rate(e.Code); ok {
			rate = cli.FormatRate(r)
		}
		rows = append(rows, []string{e.Code, e.Symbol, e.Name, rate})
	}

	title := fmt.Sprintf("%d currencies", len(rows))
	if query != "" {
		title = fmt.Sprintf("%d matching %q", len(rows), query)
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      title,
		Headers:    []string{"Code", "Symbol", "Name", "Per 1 " + currency.Reference},
		Rows:       rows,
		RightAlign: []bool{false, false, false, true},
	}))
	fmt.Println()
	return nil
}
