package models

import (
	"strings"

	"fintrack/internal/ledgererror"
)

var allCategories = []Category{CategoryDeposit, CategoryInvoice, CategoryExpense, CategoryTransfer}

var allStatuses = []Status{StatusPending, StatusCompleted, StatusFailed, StatusPlanned}

// Categories returns every known category in display order.
func Categories() []Category {
	return append([]Category(nil), allCategories...)
}

// Statuses returns every known status in display order.
func Statuses() []Status {
	return append([]Status(nil), allStatuses...)
}

// TransactionTypes returns the filter groupings in display order.
func TransactionTypes() []TransactionType {
	return []TransactionType{TypeAll, TypeIncome, TypeExpense, TypeTransfer}
}

// ParseCategory matches value case-insensitively against the known categories.
func ParseCategory(value string) (Category, error) {
	v := strings.TrimSpace(value)
	for _, c := range allCategories {
		if strings.EqualFold(v, string(c)) {
			return c, nil
		}
	}
	return "", ledgererror.Invalid("category", value, "must be one of "+joinCategories())
}

// ParseStatus matches value case-insensitively against the known statuses.
func ParseStatus(value string) (Status, error) {
	v := strings.TrimSpace(value)
	for _, s := range allStatuses {
		if strings.EqualFold(v, string(s)) {
			return s, nil
		}
	}
	names := make([]string, len(allStatuses))
	for i, s := range allStatuses {
		names[i] = string(s)
	}
	return "", ledgererror.Invalid("status", value, "must be one of "+strings.Join(names, ", "))
}

// ParseTransactionType accepts the filter groupings; "", "All" and
// "All Transactions" all mean no filter.
func ParseTransactionType(value string) (TransactionType, error) {
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, FilterAll) {
		return TypeAll, nil
	}
	for _, tt := range TransactionTypes() {
		if strings.EqualFold(v, string(tt)) {
			return tt, nil
		}
	}
	return "", ledgererror.Invalid("transaction_type", value, "must be one of All Transactions, Income, Expense, Transfer")
}

// IsIncome reports whether the category counts as income in summaries.
func (c Category) IsIncome() bool {
	return c == CategoryDeposit
}

// IsSpending reports whether the category counts as spending in summaries
// and spending analytics. Transfer is deliberately neither.
func (c Category) IsSpending() bool {
	return c == CategoryExpense || c == CategoryInvoice
}

// Matches reports whether a transaction of category c belongs to the grouping.
func (t TransactionType) Matches(c Category) bool {
	switch t {
	case TypeAll:
		return true
	case TypeIncome:
		return c.IsIncome()
	case TypeExpense:
		return c.IsSpending()
	case TypeTransfer:
		return c == CategoryTransfer
	}
	return false
}

func joinCategories() string {
	names := make([]string, len(allCategories))
	for i, c := range allCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
