package cmd

import (
	"fmt"

	"github.com/theirongolddev/billtracker/internal/cli"
	"github.com/theirongolddev/billtracker/internal/ledger"
	"github.com/theirongolddev/billtracker/internal/tracker"

	"github.com/spf13/cobra"
)

var (
	flagBillCurrency string
	flagBillDue      string
	flagBillName     string
	flagBillAmount   string
	flagShowPaid     bool
)

var billsCmd = &cobra.Command{
	Use:     "bills",
	Aliases: []string{"bill"},
	Short:   "List and manage bills",
	RunE:    runBillsList,
}

var billsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List unpaid bills (and paid ones with --paid)",
	Args:    cobra.NoArgs,
	RunE:    runBillsList,
}

var billsAddCmd = &cobra.Command{
	Use:   "add NAME AMOUNT",
	Short: "Add an unpaid bill",
	Args:  cobra.ExactArgs(2),
	RunE:  runBillsAdd,
}

var billsPayCmd = &cobra.Command{
	Use:   "pay NAME",
	Short: "Mark a bill paid and debit the budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsPay,
}

var billsDeleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a bill, paid or unpaid",
	Args:    cobra.ExactArgs(1),
	RunE:    runBillsDelete,
}

var billsEditCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Change an unpaid bill",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsEdit,
}

var billsSortCmd = &cobra.Command{
	Use:       "sort name|due|amount",
	Short:     "Reorder the unpaid bills",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(tracker.SortName), string(tracker.SortDue), string(tracker.SortAmount)},
	RunE:      runBillsSort,
}

func init() {
	billsCmd.PersistentFlags().BoolVar(&flagShowPaid, "paid", false, "Include paid bills")

	billsAddCmd.Flags().StringVarP(&flagBillCurrency, "currency", "c", "", "Currency code (default: last used)")
	billsAddCmd.Flags().StringVarP(&flagBillDue, "due", "d", "", "Due date, YYYY-MM-DD")

	billsEditCmd.Flags().StringVar(&flagBillName, "name", "", "New name")
	billsEditCmd.Flags().StringVar(&flagBillAmount, "amount", "", "New amount")
	billsEditCmd.Flags().StringVarP(&flagBillCurrency, "currency", "c", "", "New currency code")
	billsEditCmd.Flags().StringVarP(&flagBillDue, "due", "d", "", `New due date ("" clears it)`)

	billsCmd.AddCommand(billsListCmd, billsAddCmd, billsPayCmd, billsDeleteCmd, billsEditCmd, billsSortCmd)
	rootCmd.AddCommand(billsCmd)
}

func runBillsList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	s.ensureRates()

	l := s.tr.Ledger
	display := l.SummaryCurrency
	headers := []string{"Name", "Amount", "In " + display, "Due", ""}

	fmt.Println()
	if len(l.Unpaid) == 0 {
		fmt.Println("  No unpaid bills. Add one with `billtracker bills add NAME AMOUNT`.")
	} else {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:      fmt.Sprintf("Unpaid (%d)", len(l.Unpaid)),
			Headers:    headers,
			Rows:       billRows(s, l.Unpaid, display, false),
			RightAlign: []bool{false, true, true, true, false},
		}))
	}

	if flagShowPaid && len(l.Paid) > 0 {
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:      fmt.Sprintf("Paid (%d)", len(l.Paid)),
			Headers:    headers,
			Rows:       billRows(s, l.Paid, display, true),
			RightAlign: []bool{false, true, true, true, false},
		}))
	}
	fmt.Println()
	return nil
}

func runBillsAdd(_ *cobra.Command, args []string) error {
	amount, err := parseAmount("amount", args[1])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	code := flagBillCurrency
	if code == "" {
		code = s.tr.Ledger.BillCurrency
	}
	b, err := s.tr.AddBill(args[0], amount, code, flagBillDue)
	if err != nil {
		return err
	}
	fmt.Printf("  Added %s: %s\n", b.Name, cli.FormatAmount(b.Amount, b.Currency))
	return nil
}

func runBillsPay(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	s.ensureRates()

	b, ok := s.tr.Ledger.Find(args[0])
	if !ok {
		return &ledger.NotFoundError{Bill: ledger.Bill{Name: args[0]}}
	}
	if _, rateOK := s.tr.Rates.Rate(b.Currency); !rateOK {
		warnf("no exchange rate for %s; the budget is not debited\n", b.Currency)
	}
	if err := s.tr.PayBill(b); err != nil {
		return err
	}

	fmt.Printf("  Paid %s (%s)\n", b.Name, cli.FormatAmount(b.Amount, b.Currency))
	if amt, ok := s.tr.BudgetDisplay(); ok {
		fmt.Printf("  Budget now %s\n", cli.FormatAmount(amt, s.tr.Ledger.BudgetCurrency))
	}
	return nil
}

func runBillsDelete(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	b, ok := s.tr.Ledger.FindAny(args[0])
	if !ok {
		return &ledger.NotFoundError{Bill: ledger.Bill{Name: args[0]}}
	}
	if err := s.tr.DeleteBill(b); err != nil {
		return err
	}
	fmt.Printf("  Deleted %s\n", b.Name)
	return nil
}

func runBillsEdit(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	orig, ok := s.tr.Ledger.Find(args[0])
	if !ok {
		return &ledger.NotFoundError{Bill: ledger.Bill{Name: args[0]}}
	}

	updated := orig
	flags := cmd.Flags()
	if flags.Changed("name") {
		updated.Name = flagBillName
	}
	if flags.Changed("amount") {
		if updated.Amount, err = parseAmount("amount", flagBillAmount); err != nil {
			return err
		}
	}
	if flags.Changed("currency") {
		updated.Currency = flagBillCurrency
	}
	if flags.Changed("due") {
		updated.DueDate = flagBillDue
	}
	if updated == orig {
		fmt.Println("  Nothing to change. Pass --name, --amount, --currency or --due.")
		return nil
	}

	b, err := s.tr.EditBill(orig, updated)
	if err != nil {
		return err
	}
	fmt.Printf("  Updated %s: %s, due %s\n", b.Name, cli.FormatAmount(b.Amount, b.Currency), cli.FormatDue(b.DueDate))
	return nil
}

func runBillsSort(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	order := tracker.SortOrder(args[0])
	if order == tracker.SortAmount {
		s.ensureRates()
	}
	if err := s.tr.Sort(order); err != nil {
		return err
	}
	fmt.Printf("  Sorted %d bills by %s\n", len(s.tr.Ledger.Unpaid), order)
	return nil
}
