package models

import (
	"strings"

	"fintrack/internal/ledgererror"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a user-supplied amount. Surrounding whitespace and a
// leading "$" are tolerated; negative values and non-numbers are rejected.
func ParseAmount(value string) (decimal.Decimal, error) {
	s := strings.TrimSpace(value)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ledgererror.Invalid("amount", value, "must be a non-negative number")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ledgererror.Invalid("amount", value, "must be a non-negative number")
	}
	if amount.IsNegative() {
		return decimal.Zero, ledgererror.Invalid("amount", value, "must be a non-negative number")
	}
	return amount, nil
}

// FormatAmount renders an amount the way the dashboard shows it, e.g. "$12.50".
func FormatAmount(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
