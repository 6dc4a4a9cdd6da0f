// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"fintrack/internal/dateutils"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger record. ID is assigned at creation and never
// changes; Date has second precision.
type Transaction struct {
	ID            string
	Description   string
	Amount        decimal.Decimal
	Category      Category
	Recipient     string
	Date          time.Time
	PaymentMethod string
	Status        Status
}

// DateString returns the persisted "YYYY-MM-DD HH:MM:SS" form of the date.
func (t Transaction) DateString() string {
	return dateutils.FormatTimestamp(t.Date)
}

// Equal compares two transactions field by field, using decimal equality for
// the amount and instant equality for the date.
func (t Transaction) Equal(other Transaction) bool {
	return t.ID == other.ID &&
		t.Description == other.Description &&
		t.Amount.Equal(other.Amount) &&
		t.Category == other.Category &&
		t.Recipient == other.Recipient &&
		t.Date.Equal(other.Date) &&
		t.PaymentMethod == other.PaymentMethod &&
		t.Status == other.Status
}
