package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagClearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every bill and reset the budget",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&flagClearYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	l := s.tr.Ledger
	if !flagClearYes {
		confirm := false
		err := huh.NewConfirm().
			Title("Clear all data?").
			Description(fmt.Sprintf("%d unpaid and %d paid bills will be deleted and the budget reset.", len(l.Unpaid), len(l.Paid))).
			Affirmative("Clear").
			Negative("Keep").
			Value(&confirm).
			Run()
		if errors.Is(err, huh.ErrUserAborted) || (err == nil && !confirm) {
			fmt.Println("  Nothing cleared.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	if err := s.tr.Clear(); err != nil {
		return err
	}
	fmt.Println("  All bills deleted and budget reset.")
	return nil
}
