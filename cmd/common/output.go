// Package common provides output helpers shared by the commands.
package common

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fintrack/internal/models"
)

// NewTable returns a tab-aligned writer over w. Call Flush when done.
func NewTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// PrintTransactions writes one aligned line per transaction.
func PrintTransactions(w io.Writer, transactions []models.Transaction) error {
	if len(transactions) == 0 {
		_, err := fmt.Fprintln(w, "No transactions.")
		return err
	}
	tw := NewTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tAMOUNT\tCATEGORY\tRECIPIENT\tMETHOD\tSTATUS")
	for _, tx := range transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.DateString(), tx.Description, models.FormatAmount(tx.Amount),
			tx.Category, tx.Recipient, tx.PaymentMethod, tx.Status)
	}
	return tw.Flush()
}
