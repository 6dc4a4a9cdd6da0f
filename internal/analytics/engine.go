// Package analytics derives chart-ready series from a snapshot of the
// ledger. Nothing here mutates the snapshot; every function can be re-run
// at will.
package analytics

import (
	"sort"
	"strings"

	"fintrack/internal/dateutils"
	"fintrack/internal/ledgererror"
	"fintrack/internal/logging"
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Granularity selects the bucket width of TimeBucketedSpending.
type Granularity string

// Supported granularities
const (
	Month Granularity = "month"
	Day   Granularity = "day"
)

// ParseGranularity accepts "month" or "day", case-insensitively.
func ParseGranularity(value string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(value))) {
	case Month:
		return Month, nil
	case Day:
		return Day, nil
	}
	return "", ledgererror.Invalid("granularity", value, "must be month or day")
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category models.Category `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
}

// Bucket is the spending of one month or day.
type Bucket struct {
	Key    string          `json:"key" yaml:"key"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// RecipientShare is one recipient's share of all transaction amounts.
type RecipientShare struct {
	Recipient string  `json:"recipient" yaml:"recipient"`
	Percent   float64 `json:"percent" yaml:"percent"`
}

// Engine computes statistics over a transaction snapshot.
type Engine struct {
	transactions []models.Transaction
	logger       logging.Logger
}

// NewEngine creates an engine over a copy of transactions.
func NewEngine(transactions []models.Transaction, logger logging.Logger) *Engine {
	e := &Engine{logger: logging.OrNop(logger)}
	e.UpdateTransactions(transactions)
	return e
}

// UpdateTransactions re-points the engine at a new snapshot.
func (e *Engine) UpdateTransactions(transactions []models.Transaction) {
	e.transactions = append([]models.Transaction(nil), transactions...)
	e.logger.Debug("Updated analytics snapshot", logging.F(logging.FieldCount, len(transactions)))
}

// CategoryTotals sums amounts per category over every transaction, in the
// order categories first appear.
func (e *Engine) CategoryTotals() ([]CategoryTotal, error) {
	if len(e.transactions) == 0 {
		return nil, &ledgererror.EmptyDataError{Operation: "category totals"}
	}
	index := make(map[models.Category]int)
	var totals []CategoryTotal
	for _, tx := range e.transactions {
		i, ok := index[tx.Category]
		if !ok {
			i = len(totals)
			index[tx.Category] = i
			totals = append(totals, CategoryTotal{Category: tx.Category, Amount: decimal.Zero})
		}
		totals[i].Amount = totals[i].Amount.Add(tx.Amount)
	}
	return totals, nil
}

// TimeBucketedSpending sums Expense and Invoice amounts per month
// ("YYYY-MM") or day ("YYYY-MM-DD"). Buckets are returned in the order they
// are first seen while walking the ledger, which is insertion order and not
// necessarily chronological.
func (e *Engine) TimeBucketedSpending(granularity Granularity) ([]Bucket, error) {
	var layout string
	switch granularity {
	case Month:
		layout = dateutils.DateLayoutMonth
	case Day:
		layout = dateutils.DateLayoutISO
	default:
		return nil, ledgererror.Invalid("granularity", string(granularity), "must be month or day")
	}

	index := make(map[string]int)
	var buckets []Bucket
	for _, tx := range e.transactions {
		if !tx.Category.IsSpending() {
			continue
		}
		key := tx.Date.Format(layout)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key, Amount: decimal.Zero})
		}
		buckets[i].Amount = buckets[i].Amount.Add(tx.Amount)
	}
	if len(buckets) == 0 {
		return nil, &ledgererror.EmptyDataError{Operation: "spending by " + string(granularity)}
	}
	return buckets, nil
}

// CumulativeSpending returns daily Expense and Invoice totals sorted by
// date, each bucket holding the running total up to and including that day.
func (e *Engine) CumulativeSpending() ([]Bucket, error) {
	daily, err := e.TimeBucketedSpending(Day)
	if err != nil {
		return nil, &ledgererror.EmptyDataError{Operation: "cumulative spending"}
	}
	// ISO day keys sort chronologically as strings.
	sort.SliceStable(daily, func(i, j int) bool { return daily[i].Key < daily[j].Key })

	running := decimal.Zero
	for i := range daily {
		running = running.Add(daily[i].Amount)
		daily[i].Amount = running
	}
	return daily, nil
}

// SpendingPoints returns (unix seconds, amount) for every Expense and
// Invoice transaction in ledger order.
func (e *Engine) SpendingPoints() []Point {
	var points []Point
	for _, tx := range e.transactions {
		if !tx.Category.IsSpending() {
			continue
		}
		points = append(points, Point{X: float64(tx.Date.Unix()), Y: tx.Amount.InexactFloat64()})
	}
	return points
}

// SpendingTrend fits a line through SpendingPoints.
func (e *Engine) SpendingTrend() (Trend, error) {
	return LinearTrend(e.SpendingPoints())
}

// RecipientPercentages gives each recipient's share of the sum of all
// amounts, in the order recipients first appear. It is empty, not an
// error, when that sum is zero.
func (e *Engine) RecipientPercentages() []RecipientShare {
	total := decimal.Zero
	for _, tx := range e.transactions {
		total = total.Add(tx.Amount)
	}
	if total.IsZero() {
		return []RecipientShare{}
	}

	index := make(map[string]int)
	var sums []decimal.Decimal
	var names []string
	for _, tx := range e.transactions {
		i, ok := index[tx.Recipient]
		if !ok {
			i = len(names)
			index[tx.Recipient] = i
			names = append(names, tx.Recipient)
			sums = append(sums, decimal.Zero)
		}
		sums[i] = sums[i].Add(tx.Amount)
	}

	shares := make([]RecipientShare, len(names))
	hundred := decimal.NewFromInt(100)
	for i, name := range names {
		shares[i] = RecipientShare{
			Recipient: name,
			Percent:   sums[i].Mul(hundred).Div(total).InexactFloat64(),
		}
	}
	return shares
}

// YearlySpending sums the amounts of every transaction whose formatted date
// starts with year. The match is a plain string prefix.
func (e *Engine) YearlySpending(year string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range e.transactions {
		if strings.HasPrefix(tx.DateString(), year) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
