// Package transaction holds the commands that read and change the ledger.
package transaction

import (
	"fmt"
	"os"

	"fintrack/cmd/common"
	"fintrack/cmd/root"
	"fintrack/internal/export"
	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/storage"

	"github.com/spf13/cobra"
)

// NewCommand builds the transaction command and its subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Record, edit, list and export transactions",
	}
	cmd.AddCommand(
		newAddCommand(),
		newEditCommand(),
		newDeleteCommand(),
		newListCommand(),
		newSummaryCommand(),
		newExportCommand(),
		newImportLegacyCommand(),
	)
	return cmd
}

func newAddCommand() *cobra.Command {
	var description, amount, category, recipient, method, status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction dated now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			tx, err := c.GetLedger().Add(description, amount, category, recipient, method, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added transaction %s\n", tx.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount, e.g. 12.50")
	cmd.Flags().StringVarP(&category, "category", "c", string(models.CategoryExpense), "Deposit, Invoice, Expense or Transfer")
	cmd.Flags().StringVarP(&recipient, "recipient", "r", "", "Recipient")
	cmd.Flags().StringVarP(&method, "method", "m", "", "Payment method")
	cmd.Flags().StringVarP(&status, "status", "s", string(models.StatusCompleted), "Pending, Completed, Failed or Planned")
	return cmd
}

func newEditCommand() *cobra.Command {
	var index int
	var description, amount, category, recipient, method, status, date string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a transaction by id, or by position with --index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}

			var patch ledger.Patch
			set := func(name string, value *string, target **string) {
				if cmd.Flags().Changed(name) {
					*target = value
				}
			}
			set("description", &description, &patch.Description)
			set("amount", &amount, &patch.Amount)
			set("category", &category, &patch.Category)
			set("recipient", &recipient, &patch.Recipient)
			set("method", &method, &patch.PaymentMethod)
			set("status", &status, &patch.Status)
			set("date", &date, &patch.Date)

			var tx models.Transaction
			switch {
			case len(args) == 1:
				tx, err = c.GetLedger().Edit(args[0], patch)
			case cmd.Flags().Changed("index"):
				tx, err = c.GetLedger().EditAt(index, patch)
			default:
				return fmt.Errorf("either an id or --index is required")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated transaction %s\n", tx.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "Ledger position (0-based)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "New amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringVarP(&recipient, "recipient", "r", "", "New recipient")
	cmd.Flags().StringVarP(&method, "method", "m", "", "New payment method")
	cmd.Flags().StringVarP(&status, "status", "s", "", "New status")
	cmd.Flags().StringVar(&date, "date", "", "New date, YYYY-MM-DD or YYYY-MM-DD HH:MM:SS")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a transaction by id, or by position with --index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			var tx models.Transaction
			switch {
			case len(args) == 1:
				tx, err = c.GetLedger().Delete(args[0])
			case cmd.Flags().Changed("index"):
				tx, err = c.GetLedger().DeleteAt(index)
			default:
				return fmt.Errorf("either an id or --index is required")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %s (%s)\n", tx.ID, tx.Description)
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "Ledger position (0-based)")
	return cmd
}

func filterFlags(cmd *cobra.Command, f *ledger.Filter) {
	cmd.Flags().StringVarP(&f.Category, "category", "c", models.FilterAll, "Category, or All")
	cmd.Flags().StringVarP(&f.TransactionType, "type", "t", string(models.TypeAll), "Income, Expense, Transfer or All Transactions")
	cmd.Flags().StringVar(&f.StartDate, "start-date", "", "First day, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&f.EndDate, "end-date", "", "Last day, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVarP(&f.Recipient, "recipient", "r", "", "Recipient substring, case-insensitive")
}

func newListCommand() *cobra.Command {
	var filter ledger.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			txs, err := c.GetLedger().Query(filter)
			if err != nil {
				return err
			}
			return common.PrintTransactions(cmd.OutOrStdout(), txs)
		},
	}
	filterFlags(cmd, &filter)
	return cmd
}

func newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show income, expenses and net",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			sum := c.GetLedger().Summary()
			fmt.Fprintf(cmd.OutOrStdout(), "Income: %s\nExpenses: %s\nNet: %s\n",
				models.FormatAmount(sum.Income), models.FormatAmount(sum.Expenses), models.FormatAmount(sum.Net))
			return nil
		},
	}
}

func newExportCommand() *cobra.Command {
	var output, delimiter string
	var filter ledger.Filter

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			txs, err := c.GetLedger().Query(filter)
			if err != nil {
				return err
			}

			delim := c.GetConfig().DelimiterRune()
			if delimiter != "" {
				r := []rune(delimiter)
				if len(r) != 1 {
					return fmt.Errorf("delimiter must be a single character, got: %s", delimiter)
				}
				delim = r[0]
			}

			if output == "" {
				return export.WriteTransactionsCSV(cmd.OutOrStdout(), txs, delim)
			}
			if err := export.WriteTransactionsCSVFile(output, txs, delim, c.GetLogger()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(txs), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "CSV delimiter (default from config)")
	filterFlags(cmd, &filter)
	return cmd
}

func newImportLegacyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import-legacy <file>",
		Short: "Import a legacy 'Description: ..., Amount: ...' text ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0]) // #nosec G304 -- path supplied by the user
			if err != nil {
				return fmt.Errorf("error opening legacy ledger: %w", err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil {
					c.GetLogger().WithError(cerr).Warn("Failed to close file")
				}
			}()

			records, err := storage.ReadLegacy(f, c.GetLogger())
			if err != nil {
				return err
			}
			n, err := c.GetLedger().ImportLegacy(records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d records\n", n, len(records))
			return nil
		},
	}
}
