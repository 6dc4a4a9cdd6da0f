package ledger

import (
	"strings"
	"time"

	"fintrack/internal/dateutils"
	"fintrack/internal/ledgererror"
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Filter narrows Query. Empty fields do not filter; the supplied ones are
// combined with AND.
type Filter struct {
	Category        string
	TransactionType string
	StartDate       string
	EndDate         string
	Recipient       string
}

type compiledFilter struct {
	category  models.Category
	txType    models.TransactionType
	start     *time.Time
	end       *time.Time
	recipient string
}

func (f Filter) compile() (compiledFilter, error) {
	var c compiledFilter

	if v := strings.TrimSpace(f.Category); v != "" && !strings.EqualFold(v, models.FilterAll) {
		cat, err := models.ParseCategory(v)
		if err != nil {
			return c, err
		}
		c.category = cat
	}

	txType, err := models.ParseTransactionType(f.TransactionType)
	if err != nil {
		return c, err
	}
	c.txType = txType

	if c.start, err = parseBound("start_date", f.StartDate); err != nil {
		return c, err
	}
	if c.end, err = parseBound("end_date", f.EndDate); err != nil {
		return c, err
	}
	if c.start != nil && c.end != nil && c.end.Before(*c.start) {
		return c, ledgererror.Invalid("end_date", f.EndDate, "must not be before start_date")
	}

	c.recipient = strings.ToLower(strings.TrimSpace(f.Recipient))
	return c, nil
}

func parseBound(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := dateutils.ParseISODate(value)
	if err != nil {
		return nil, ledgererror.Invalid(field, value, "must be in YYYY-MM-DD format")
	}
	day := dateutils.Day(t)
	return &day, nil
}

func (c compiledFilter) match(tx models.Transaction) bool {
	if c.category != "" && tx.Category != c.category {
		return false
	}
	if !c.txType.Matches(tx.Category) {
		return false
	}
	day := dateutils.Day(tx.Date)
	if c.start != nil && day.Before(*c.start) {
		return false
	}
	if c.end != nil && day.After(*c.end) {
		return false
	}
	if c.recipient != "" && !strings.Contains(strings.ToLower(tx.Recipient), c.recipient) {
		return false
	}
	return true
}

// Query returns the transactions matching filter, in ledger order. The
// ledger itself is never modified.
func (s *Store) Query(filter Filter) ([]models.Transaction, error) {
	c, err := filter.compile()
	if err != nil {
		return nil, err
	}
	result := make([]models.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if c.match(tx) {
			result = append(result, tx)
		}
	}
	return result, nil
}

// Summary is the income/expense overview. Transfers count toward neither.
type Summary struct {
	Income   decimal.Decimal `json:"income" yaml:"income"`
	Expenses decimal.Decimal `json:"expenses" yaml:"expenses"`
	Net      decimal.Decimal `json:"net" yaml:"net"`
}

// Summarize computes a Summary over txs.
func Summarize(txs []models.Transaction) Summary {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, tx := range txs {
		switch {
		case tx.Category.IsIncome():
			income = income.Add(tx.Amount)
		case tx.Category.IsSpending():
			expenses = expenses.Add(tx.Amount)
		}
	}
	return Summary{Income: income, Expenses: expenses, Net: income.Sub(expenses)}
}

// Summary computes the overview of the whole ledger.
func (s *Store) Summary() Summary {
	return Summarize(s.transactions)
}
