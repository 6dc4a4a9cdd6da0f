package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_DateString(t *testing.T) {
	tx := Transaction{Date: time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)}
	assert.Equal(t, "2024-01-02 03:04:05", tx.DateString())
}

func TestTransaction_Equal(t *testing.T) {
	base := Transaction{
		ID:            "a",
		Description:   "Rent",
		Amount:        decimal.RequireFromString("400.00"),
		Category:      CategoryExpense,
		Recipient:     "Landlord",
		Date:          time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local),
		PaymentMethod: "Bank Transfer",
		Status:        StatusCompleted,
	}

	same := base
	same.Amount = decimal.RequireFromString("400")
	assert.True(t, base.Equal(same))

	changed := base
	changed.PaymentMethod = "Cash"
	assert.False(t, base.Equal(changed))
}

func TestCard_Masked(t *testing.T) {
	assert.Equal(t, "3456", Card{Number: "1234 5678 9012 3456"}.Masked())
	assert.Equal(t, "12", Card{Number: "12"}.Masked())
}
