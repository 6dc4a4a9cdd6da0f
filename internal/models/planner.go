package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlannedPayment is a future payment the user intends to make. It is never
// turned into a Transaction automatically.
type PlannedPayment struct {
	Amount        decimal.Decimal
	Date          time.Time
	Recipient     string
	PaymentMethod string
}

// Appointment is a dated calendar entry unrelated to transactions.
type Appointment struct {
	Title string
	Date  time.Time
	Time  string
}
