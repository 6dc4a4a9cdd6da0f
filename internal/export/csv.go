// Package export writes ledger transactions to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fintrack/internal/ledgererror"
	"fintrack/internal/logging"
	"fintrack/internal/models"

	"github.com/gocarina/gocsv"
)

// Row is the CSV shape of a transaction.
type Row struct {
	ID            string `csv:"ID"`
	Date          string `csv:"Date"`
	Description   string `csv:"Description"`
	Amount        string `csv:"Amount"`
	Category      string `csv:"Category"`
	Recipient     string `csv:"Recipient"`
	PaymentMethod string `csv:"PaymentMethod"`
	Status        string `csv:"Status"`
}

// ToRows converts transactions to CSV rows; amounts carry two decimals.
func ToRows(transactions []models.Transaction) []Row {
	rows := make([]Row, len(transactions))
	for i, tx := range transactions {
		rows[i] = Row{
			ID:            tx.ID,
			Date:          tx.DateString(),
			Description:   tx.Description,
			Amount:        tx.Amount.StringFixed(2),
			Category:      string(tx.Category),
			Recipient:     tx.Recipient,
			PaymentMethod: tx.PaymentMethod,
			Status:        string(tx.Status),
		}
	}
	return rows
}

// WriteTransactionsCSV writes a header and one row per transaction to w.
func WriteTransactionsCSV(w io.Writer, transactions []models.Transaction, delimiter rune) error {
	rows := ToRows(transactions)

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error marshaling transactions to CSV: %w", err)
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("error flushing CSV writer: %w", err)
	}
	return nil
}

// WriteTransactionsCSVFile writes the CSV export to path, creating parent
// directories as needed.
func WriteTransactionsCSVFile(path string, transactions []models.Transaction, delimiter rune, logger logging.Logger) (err error) {
	logger = logging.OrNop(logger)

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return &ledgererror.PersistenceError{Op: "create directory for", Path: path, Err: err}
	}
	file, err := os.Create(path) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return &ledgererror.PersistenceError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &ledgererror.PersistenceError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if err := WriteTransactionsCSV(file, transactions, delimiter); err != nil {
		return &ledgererror.PersistenceError{Op: "write", Path: path, Err: err}
	}
	logger.Info("Exported transactions",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(transactions)))
	return nil
}
