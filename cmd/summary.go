package cmd

import (
	"fmt"

	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/currency"
	"github.com/theirongolddev/billtracker/internal/summary"

	"github.com/spf13/cobra"
)

var (
	flagSummaryCurrency string
	flagSummarySave     bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Unpaid total, remaining budget and budget status",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVarP(&flagSummaryCurrency, "currency", "c", "", "Display currency (default: the saved summary currency)")
	summaryCmd.Flags().BoolVar(&flagSummarySave, "save", false, "Remember --currency as the summary currency")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	s.ensureRates()

	display := s.tr.Ledger.SummaryCurrency
	if flagSummaryCurrency != "" {
		code, ok := currency.ParseLabel(flagSummaryCurrency)
		if !ok {
			return fmt.Errorf("unknown currency %q", flagSummaryCurrency)
		}
		display = code
		if flagSummarySave {
			if err := s.tr.SetSummaryCurrency(code); err != nil {
				return err
			}
		}
	}

	sum := s.tr.SummaryIn(display)
	l := s.tr.Ledger

	fmt.Println()
	fmt.Println(cli.RenderTitle("BILLS  " + currency.Describe(display)))
	fmt.Println()

	if !sum.Available {
		warnf("%s\n", fmt.Sprintf("could not find exchange rate for %s", display))
		fmt.Println()
		return nil
	}

	budget := "n/a"
	if amt, ok := s.tr.BudgetDisplay(); ok {
		budget = cli.FormatAmount(amt, l.BudgetCurrency)
	}
	overdue := 0
	for _, b := range l.Unpaid {
		if b.Overdue(s.tr.Today()) {
			overdue++
		}
	}

	rows := [][]string{
		{"Budget", budget},
		{"Unpaid bills", fmt.Sprintf("%d (%d overdue)", len(l.Unpaid), overdue)},
		{"Paid bills", fmt.Sprintf("%d", len(l.Paid))},
		{"---"},
		{"Total unpaid", cli.FormatAmount(sum.TotalUnpaid, display)},
		{"Remaining", cli.FormatAmount(sum.Remaining, display)},
	}
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))
	fmt.Println()

	if sum.Status.Status != summary.Neutral {
		fmt.Println("  " + cli.RenderBudgetBar(sum.Status, 30))
		fmt.Println()
	}
	if sum.Skipped > 0 {
		warnf("%d bill(s) left out: no exchange rate for their currency\n\n", sum.Skipped)
	}
	fmt.Printf("  %s\n\n", s.tr.Status())
	return nil
}
