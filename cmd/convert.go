package cmd

import (
	"fmt"

	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/currency"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:     "convert AMOUNT FROM TO",
	Short:   "Convert an amount between two currencies",
	Example: "  billtracker convert 25 EUR GBP",
	Args:    cobra.ExactArgs(3),
	RunE:    runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	amount, err := parseAmount("amount", args[0])
	if err != nil {
		return err
	}
	from, ok := currency.ParseLabel(args[1])
	if !ok {
		return fmt.Errorf("unknown currency %q", args[1])
	}
	to, ok := currency.ParseLabel(args[2])
	if !ok {
		return fmt.Errorf("unknown currency %q", args[2])
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	s.ensureRates()

	v, err := s.tr.Convert(amount, from, to)
	if err != nil {
		return err
	}
	fmt.Printf("  %s = %s\n", cli.FormatAmount(amount, from), cli.FormatAmount(v, to))
	return nil
}
