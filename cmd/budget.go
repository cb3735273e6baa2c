package cmd

import (
	"fmt"

	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/currency"

	"github.com/spf13/cobra"
)

var flagBudgetCurrency string

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show or set the budget",
	RunE:  runBudgetShow,
}

var budgetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the budget in its currency",
	Args:  cobra.NoArgs,
	RunE:  runBudgetShow,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set AMOUNT",
	Short: "Set the budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSet,
}

func init() {
	budgetSetCmd.Flags().StringVarP(&flagBudgetCurrency, "currency", "c", "", "Currency of AMOUNT (default: the budget's current currency)")
	budgetCmd.AddCommand(budgetShowCmd, budgetSetCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetShow(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	s.ensureRates()

	l := s.tr.Ledger
	amt, ok := s.tr.BudgetDisplay()
	if !ok {
		fmt.Printf("  Budget: %s (no rate for %s)\n", cli.FormatAmount(l.Budget, currency.Reference), l.BudgetCurrency)
		return nil
	}
	fmt.Printf("  Budget: %s\n", cli.FormatAmount(amt, l.BudgetCurrency))
	return nil
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	amount, err := parseAmount("budget", args[0])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	s.ensureRates()

	code := flagBudgetCurrency
	if code == "" {
		code = s.tr.Ledger.BudgetCurrency
	}
	if err := s.tr.SetBudget(amount, code); err != nil {
		return err
	}
	amt, _ := s.tr.BudgetDisplay()
	fmt.Printf("  Budget set to %s\n", cli.FormatAmount(amt, s.tr.Ledger.BudgetCurrency))
	return nil
}
