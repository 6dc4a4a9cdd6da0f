package models

// Category classifies a transaction. The set is closed; values are parsed
// once at the store boundary with ParseCategory.
type Category string

// Categories
const (
	CategoryDeposit  Category = "Deposit"
	CategoryInvoice  Category = "Invoice"
	CategoryExpense  Category = "Expense"
	CategoryTransfer Category = "Transfer"
)

// Status is the settlement state of a transaction.
type Status string

// Transaction statuses
const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
	StatusPlanned   Status = "Planned"
)

// TransactionType is a coarser grouping of categories used by ledger filters.
type TransactionType string

// Transaction types
const (
	TypeAll      TransactionType = "All Transactions"
	TypeIncome   TransactionType = "Income"
	TypeExpense  TransactionType = "Expense"
	TypeTransfer TransactionType = "Transfer"
)

// FilterAll is the category filter value meaning "no filter".
const FilterAll = "All"

// File permissions
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
)

// DefaultPaymentMethods seeds the registry when no file exists yet
var DefaultPaymentMethods = []string{"Credit Card", "Debit Card", "Bank Transfer"}
