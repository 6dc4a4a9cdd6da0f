package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/ledgererror"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type methodSet []string

func (m methodSet) Contains(label string) bool {
	for _, l := range m {
		if l == label {
			return true
		}
	}
	return false
}

func (m methodSet) First() (string, bool) {
	if len(m) == 0 {
		return "", false
	}
	return m[0], true
}

var testNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local)

func newTestStore(t *testing.T, logger logging.Logger) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.json")
	seq := 0
	s := NewStore(storage.NewFile(path, logger), methodSet{"Bank Transfer", "Cash", "Card"}, logger,
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("tx-%d", seq)
		}))
	require.NoError(t, s.Load())
	return s, path
}

func mustAdd(t *testing.T, s *Store, description, amount, category, recipient, method string) models.Transaction {
	t.Helper()
	tx, err := s.Add(description, amount, category, recipient, method, "Completed")
	require.NoError(t, err)
	return tx
}

func mustSetDate(t *testing.T, s *Store, id, date string) {
	t.Helper()
	_, err := s.Edit(id, Patch{Date: &date})
	require.NoError(t, err)
}

func all(t *testing.T, s *Store) []models.Transaction {
	t.Helper()
	txs, err := s.Query(Filter{})
	require.NoError(t, err)
	return txs
}

func TestStore_AddAppendsToEnd(t *testing.T) {
	s, _ := newTestStore(t, nil)
	mustAdd(t, s, "Coffee", "3.50", "Expense", "Cafe", "Cash")

	tx, err := s.Add("Paycheck", "$1000", "deposit", "Employer", "Bank Transfer", "completed")
	require.NoError(t, err)

	assert.Equal(t, "tx-2", tx.ID)
	assert.Equal(t, models.CategoryDeposit, tx.Category)
	assert.Equal(t, models.StatusCompleted, tx.Status)
	assert.True(t, decimal.NewFromInt(1000).Equal(tx.Amount))
	assert.Equal(t, "2024-01-15 10:30:00", tx.DateString())

	txs := all(t, s)
	require.Len(t, txs, 2)
	assert.True(t, txs[len(txs)-1].Equal(tx))
}

func TestStore_AddValidation(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amount      string
		category    string
		method      string
		status      string
		field       string
	}{
		{"empty description", "  ", "10", "Expense", "Cash", "Completed", "description"},
		{"negative amount", "Lunch", "-1", "Expense", "Cash", "Completed", "amount"},
		{"amount not a number", "Lunch", "ten", "Expense", "Cash", "Completed", "amount"},
		{"unknown category", "Lunch", "10", "Payment", "Cash", "Completed", "category"},
		{"unknown payment method", "Lunch", "10", "Expense", "Cheque", "Completed", "payment_method"},
		{"unknown status", "Lunch", "10", "Expense", "Cash", "Done", "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, path := newTestStore(t, nil)
			_, err := s.Add(tt.description, tt.amount, tt.category, "Diner", tt.method, tt.status)

			var verr *ledgererror.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 0, s.Len())
			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr), "nothing should be persisted")
		})
	}
}

func TestStore_SummaryScenario(t *testing.T) {
	s, _ := newTestStore(t, nil)
	mustAdd(t, s, "Paycheck", "1000", "Deposit", "Employer", "Bank Transfer")
	mustAdd(t, s, "Rent", "400", "Expense", "Landlord", "Bank Transfer")

	sum := s.Summary()
	assert.True(t, decimal.NewFromInt(1000).Equal(sum.Income))
	assert.True(t, decimal.NewFromInt(400).Equal(sum.Expenses))
	assert.True(t, decimal.NewFromInt(600).Equal(sum.Net))
}

func TestSummarize_TransfersCountTowardNeither(t *testing.T) {
	txs := []models.Transaction{
		{Category: models.CategoryDeposit, Amount: decimal.RequireFromString("250.25")},
		{Category: models.CategoryInvoice, Amount: decimal.RequireFromString("100")},
		{Category: models.CategoryExpense, Amount: decimal.RequireFromString("50.25")},
		{Category: models.CategoryTransfer, Amount: decimal.RequireFromString("9999")},
	}

	sum := Summarize(txs)
	assert.True(t, decimal.RequireFromString("250.25").Equal(sum.Income))
	assert.True(t, decimal.RequireFromString("150.25").Equal(sum.Expenses))
	assert.True(t, sum.Net.Equal(sum.Income.Sub(sum.Expenses)))

	empty := Summarize(nil)
	assert.True(t, empty.Net.IsZero())
}

func TestStore_DeleteKeepsRelativeOrder(t *testing.T) {
	s, _ := newTestStore(t, nil)
	a := mustAdd(t, s, "A", "1", "Expense", "x", "Cash")
	b := mustAdd(t, s, "B", "2", "Expense", "x", "Cash")
	c := mustAdd(t, s, "C", "3", "Expense", "x", "Cash")

	removed, err := s.DeleteAt(1)
	require.NoError(t, err)
	assert.Equal(t, b.ID, removed.ID)

	txs := all(t, s)
	require.Len(t, txs, 2)
	assert.Equal(t, a.ID, txs[0].ID)
	assert.Equal(t, c.ID, txs[1].ID)

	_, err = s.Get(b.ID)
	var nf *ledgererror.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestStore_DeleteByIDSurvivesEarlierDeletes(t *testing.T) {
	s, _ := newTestStore(t, nil)
	a := mustAdd(t, s, "A", "1", "Expense", "x", "Cash")
	b := mustAdd(t, s, "B", "2", "Expense", "x", "Cash")

	_, err := s.Delete(a.ID)
	require.NoError(t, err)

	removed, err := s.Delete(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", removed.Description)
	assert.Equal(t, 0, s.Len())
}

func TestStore_OutOfBoundsAndUnknownID(t *testing.T) {
	s, _ := newTestStore(t, nil)
	mustAdd(t, s, "A", "1", "Expense", "x", "Cash")

	var nf *ledgererror.NotFoundError
	_, err := s.DeleteAt(1)
	assert.True(t, errors.As(err, &nf))
	_, err = s.DeleteAt(-1)
	assert.True(t, errors.As(err, &nf))
	_, err = s.EditAt(5, Patch{})
	assert.True(t, errors.As(err, &nf))
	_, err = s.Edit("nope", Patch{})
	assert.True(t, errors.As(err, &nf))
	_, err = s.Delete("nope")
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, 1, s.Len())
}

func TestStore_EditPreservesDate(t *testing.T) {
	s, _ := newTestStore(t, nil)
	tx := mustAdd(t, s, "Groceries", "40", "Expense", "Market", "Cash")

	amount := "42.10"
	method := "Card"
	updated, err := s.EditAt(0, Patch{Amount: &amount, PaymentMethod: &method})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("42.10").Equal(updated.Amount))
	assert.Equal(t, "Card", updated.PaymentMethod)
	assert.True(t, tx.Date.Equal(updated.Date))
	assert.Equal(t, tx.ID, updated.ID)

	date := "2023-12-24"
	updated, err = s.Edit(tx.ID, Patch{Date: &date})
	require.NoError(t, err)
	assert.Equal(t, "2023-12-24 00:00:00", updated.DateString())
}

func TestStore_EditValidatesBeforeMutating(t *testing.T) {
	s, _ := newTestStore(t, nil)
	tx := mustAdd(t, s, "Groceries", "40", "Expense", "Market", "Cash")

	description := "Changed"
	category := "Payment"
	_, err := s.Edit(tx.ID, Patch{Description: &description, Category: &category})

	var verr *ledgererror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "category", verr.Field)

	got, err := s.Get(tx.ID)
	require.NoError(t, err)
	assert.True(t, tx.Equal(got))
}

func TestStore_QueryDateRangeInclusive(t *testing.T) {
	s, _ := newTestStore(t, nil)
	dates := []string{
		"2023-12-31 23:59:59",
		"2024-01-01 00:00:00",
		"2024-01-15 12:00:00",
		"2024-01-31 23:59:59",
		"2024-02-01 00:00:00",
	}
	for i, d := range dates {
		tx := mustAdd(t, s, fmt.Sprintf("t%d", i), "10", "Expense", "Shop", "Cash")
		mustSetDate(t, s, tx.ID, d)
	}

	txs, err := s.Query(Filter{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "t1", txs[0].Description)
	assert.Equal(t, "t2", txs[1].Description)
	assert.Equal(t, "t3", txs[2].Description)

	txs, err = s.Query(Filter{StartDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestStore_QueryMalformedBounds(t *testing.T) {
	s, _ := newTestStore(t, nil)
	mustAdd(t, s, "A", "1", "Expense", "x", "Cash")

	tests := []struct {
		filter Filter
		field  string
	}{
		{Filter{StartDate: "01/01/2024"}, "start_date"},
		{Filter{StartDate: "2024-01-01", EndDate: "2024-13-01"}, "end_date"},
		{Filter{StartDate: "2024-02-01", EndDate: "2024-01-01"}, "end_date"},
		{Filter{Category: "Payment"}, "category"},
		{Filter{TransactionType: "Refund"}, "transaction_type"},
	}
	for _, tt := range tests {
		_, err := s.Query(tt.filter)
		var verr *ledgererror.ValidationError
		require.True(t, errors.As(err, &verr), "%+v", tt.filter)
		assert.Equal(t, tt.field, verr.Field)
	}
}

func TestStore_QueryComposesFilters(t *testing.T) {
	s, _ := newTestStore(t, nil)
	mustAdd(t, s, "Salary", "1000", "Deposit", "ACME Corp", "Bank Transfer")
	mustAdd(t, s, "Phone bill", "30", "Invoice", "Telco", "Card")
	mustAdd(t, s, "Snacks", "5", "Expense", "Corner Shop", "Cash")
	mustAdd(t, s, "Savings", "200", "Transfer", "Acme Savings", "Bank Transfer")

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{"no filter", Filter{}, []string{"Salary", "Phone bill", "Snacks", "Savings"}},
		{"category all", Filter{Category: "All"}, []string{"Salary", "Phone bill", "Snacks", "Savings"}},
		{"category exact", Filter{Category: "Invoice"}, []string{"Phone bill"}},
		{"type income", Filter{TransactionType: "Income"}, []string{"Salary"}},
		{"type expense", Filter{TransactionType: "Expense"}, []string{"Phone bill", "Snacks"}},
		{"type all transactions", Filter{TransactionType: "All Transactions"}, []string{"Salary", "Phone bill", "Snacks", "Savings"}},
		{"recipient case-insensitive", Filter{Recipient: "acme"}, []string{"Salary", "Savings"}},
		{"recipient and type", Filter{Recipient: "ACME", TransactionType: "Income"}, []string{"Salary"}},
		{"category and type disagree", Filter{Category: "Deposit", TransactionType: "Expense"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := s.Query(tt.filter)
			require.NoError(t, err)
			var got []string
			for _, tx := range txs {
				got = append(got, tx.Description)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
	assert.Equal(t, 4, s.Len())
}

func TestStore_QueryReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t, nil)
	mustAdd(t, s, "A", "1", "Expense", "x", "Cash")

	txs := all(t, s)
	txs[0].Description = "mutated"

	got, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Description)
}

func TestStore_PersistRoundTrip(t *testing.T) {
	s, path := newTestStore(t, nil)
	mustAdd(t, s, "Paycheck", "1000.50", "Deposit", "Employer", "Bank Transfer")
	tx := mustAdd(t, s, "Rent", "400", "Expense", "Landlord", "Cash")
	mustSetDate(t, s, tx.ID, "2023-06-30 08:15:45")
	_, err := s.Add("Gift", "0", "Transfer", "", "Card", "Planned")
	require.NoError(t, err)

	reloaded := NewStore(storage.NewFile(path, nil), methodSet{"Bank Transfer", "Cash", "Card"}, nil)
	require.NoError(t, reloaded.Load())

	before := s.Transactions()
	after := reloaded.Transactions()
	require.Len(t, after, len(before))
	for i := range before {
		assert.True(t, before[i].Equal(after[i]), "record %d: %+v != %+v", i, before[i], after[i])
	}
}

func TestStore_LoadMissingOrEmpty(t *testing.T) {
	dir := t.TempDir()

	s := NewStore(storage.NewFile(filepath.Join(dir, "none.json"), nil), methodSet{"Cash"}, nil)
	require.NoError(t, s.Load())
	assert.Equal(t, 0, s.Len())

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0600))
	s = NewStore(storage.NewFile(empty, nil), methodSet{"Cash"}, nil)
	require.NoError(t, s.Load())
	assert.Equal(t, 0, s.Len())
}

func TestStore_LoadSkipsMalformedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	content := `[
    {"id": "a", "description": "Rent", "amount": 400, "category": "Expense", "recipient": "Landlord", "date": "2024-01-01 09:00:00", "payment_method": "Cash", "status": "Completed"},
    {"id": "b", "description": "Broken", "amount": -5, "category": "Expense", "recipient": "", "date": "2024-01-02 09:00:00", "payment_method": "Cash", "status": "Completed"},
    {"id": "c", "description": "Bad date", "amount": 5, "category": "Expense", "recipient": "", "date": "02.01.2024", "payment_method": "Cash", "status": "Completed"},
    "not an object",
    {"description": "Legacy", "amount": 12.5, "category": "Invoice", "recipient": "Telco", "date": "2024-01-03 10:00:00", "payment_method": "Cash"}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	mock := logging.NewMockLogger()
	s := NewStore(storage.NewFile(path, mock), methodSet{"Cash"}, mock, WithIDGenerator(func() string { return "generated" }))
	require.NoError(t, s.Load())

	txs := s.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, "a", txs[0].ID)
	assert.Equal(t, "generated", txs[1].ID)
	assert.Equal(t, models.StatusCompleted, txs[1].Status)
	assert.Len(t, mock.GetEntriesByLevel("WARN"), 3)
}

func TestStore_LoadRejectsNonArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"transactions": []}`), 0600))

	s := NewStore(storage.NewFile(path, nil), methodSet{"Cash"}, nil)
	err := s.Load()
	var perr *ledgererror.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "decode", perr.Op)
}

func TestStore_WriteFailureLeavesStateUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transactions.json")
	require.NoError(t, os.Mkdir(path, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(path, "blocker"), []byte("x"), 0600))

	s := NewStore(storage.NewFile(path, nil), methodSet{"Cash"}, nil)
	_, err := s.Add("Rent", "400", "Expense", "Landlord", "Cash", "Completed")

	var perr *ledgererror.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 0, s.Len())
}

func TestStore_ReassignPaymentMethodIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t, nil)
	mustAdd(t, s, "A", "1", "Expense", "x", "Cash")
	mustAdd(t, s, "B", "2", "Expense", "x", "Card")
	mustAdd(t, s, "C", "3", "Expense", "x", "Cash")

	n, err := s.ReassignPaymentMethod("Cash", "Card")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	once := s.Transactions()

	n, err = s.ReassignPaymentMethod("Cash", "Card")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, once, s.Transactions())
	assert.Equal(t, 0, s.CountPaymentMethod("Cash"))
	assert.Equal(t, 3, s.CountPaymentMethod("Card"))
}

func TestStore_ImportLegacy(t *testing.T) {
	mock := logging.NewMockLogger()
	s, _ := newTestStore(t, mock)

	records := []storage.LegacyRecord{
		{Line: 1, Description: "Rent", Amount: "400.0", Category: "Expense", Date: "2024-01-01 09:00:00"},
		{Line: 2, Description: "Refund", Amount: "20", Category: "Payment", Date: "2024-01-02 09:00:00"},
		{Line: 3, Description: "Coffee", Amount: "3.5", Date: "2024-01-03 08:00:00"},
		{Line: 4, Description: "Broken", Amount: "abc", Category: "Expense", Date: "2024-01-04 08:00:00"},
		{Line: 5, Description: "No date", Amount: "1", Category: "Expense", Date: "sometime"},
	}

	n, err := s.ImportLegacy(records)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	txs := s.Transactions()
	require.Len(t, txs, 3)
	assert.Equal(t, "2024-01-01 09:00:00", txs[0].DateString())
	assert.Equal(t, models.CategoryExpense, txs[1].Category)
	assert.Equal(t, models.CategoryExpense, txs[2].Category)
	for _, tx := range txs {
		assert.Equal(t, "Bank Transfer", tx.PaymentMethod)
		assert.Equal(t, models.StatusCompleted, tx.Status)
	}
	assert.True(t, mock.HasEntry("WARN", "Unknown legacy category, importing as Expense"))
	assert.Len(t, mock.GetEntriesByLevel("WARN"), 4)
}
