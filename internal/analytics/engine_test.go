package analytics

import (
	"errors"
	"math"
	"testing"
	"time"

	"fintrack/internal/ledgererror"
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(category models.Category, amount, recipient, date string) models.Transaction {
	d, err := time.ParseInLocation("2006-01-02 15:04:05", date, time.Local)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		Description: "t",
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Recipient:   recipient,
		Date:        d,
	}
}

func sample() []models.Transaction {
	return []models.Transaction{
		tx(models.CategoryExpense, "30", "Market", "2024-03-05 10:00:00"),
		tx(models.CategoryDeposit, "1000", "Employer", "2024-01-31 09:00:00"),
		tx(models.CategoryInvoice, "70", "Telco", "2024-01-10 12:00:00"),
		tx(models.CategoryExpense, "20", "Market", "2024-03-05 18:30:00"),
		tx(models.CategoryTransfer, "80", "Savings", "2023-12-31 23:59:59"),
		tx(models.CategoryExpense, "5", "Cafe", "2024-02-14 08:00:00"),
	}
}

func TestEngine_CategoryTotals(t *testing.T) {
	e := NewEngine(sample(), nil)
	totals, err := e.CategoryTotals()
	require.NoError(t, err)

	expected := []CategoryTotal{
		{models.CategoryExpense, decimal.RequireFromString("55")},
		{models.CategoryDeposit, decimal.RequireFromString("1000")},
		{models.CategoryInvoice, decimal.RequireFromString("70")},
		{models.CategoryTransfer, decimal.RequireFromString("80")},
	}
	require.Len(t, totals, len(expected))
	for i := range expected {
		assert.Equal(t, expected[i].Category, totals[i].Category)
		assert.True(t, expected[i].Amount.Equal(totals[i].Amount), "%s: %s", totals[i].Category, totals[i].Amount)
	}
}

func TestEngine_CategoryTotalsEmpty(t *testing.T) {
	_, err := NewEngine(nil, nil).CategoryTotals()
	var empty *ledgererror.EmptyDataError
	assert.True(t, errors.As(err, &empty))
}

func TestEngine_MonthlyBucketsKeepFirstAppearanceOrder(t *testing.T) {
	e := NewEngine(sample(), nil)
	buckets, err := e.TimeBucketedSpending(Month)
	require.NoError(t, err)

	var keys []string
	for _, b := range buckets {
		keys = append(keys, b.Key)
	}
	// not sorted: March is seen before January in the ledger
	assert.Equal(t, []string{"2024-03", "2024-01", "2024-02"}, keys)
	assert.True(t, decimal.RequireFromString("50").Equal(buckets[0].Amount))
	assert.True(t, decimal.RequireFromString("70").Equal(buckets[1].Amount))
	assert.True(t, decimal.RequireFromString("5").Equal(buckets[2].Amount))
}

func TestEngine_DailyBuckets(t *testing.T) {
	e := NewEngine(sample(), nil)
	buckets, err := e.TimeBucketedSpending(Day)
	require.NoError(t, err)
	require.Len(t, buckets, 3)
	assert.Equal(t, "2024-03-05", buckets[0].Key)
	assert.True(t, decimal.RequireFromString("50").Equal(buckets[0].Amount))
}

func TestEngine_TimeBucketedSpendingErrors(t *testing.T) {
	e := NewEngine([]models.Transaction{
		tx(models.CategoryDeposit, "10", "x", "2024-01-01 00:00:00"),
	}, nil)

	_, err := e.TimeBucketedSpending(Month)
	var empty *ledgererror.EmptyDataError
	assert.True(t, errors.As(err, &empty))

	_, err = e.TimeBucketedSpending("week")
	var verr *ledgererror.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity(" Month ")
	require.NoError(t, err)
	assert.Equal(t, Month, g)
	g, err = ParseGranularity("day")
	require.NoError(t, err)
	assert.Equal(t, Day, g)
	_, err = ParseGranularity("year")
	assert.Error(t, err)
}

func TestEngine_CumulativeSpending(t *testing.T) {
	e := NewEngine(sample(), nil)
	series, err := e.CumulativeSpending()
	require.NoError(t, err)

	require.Len(t, series, 3)
	assert.Equal(t, "2024-01-10", series[0].Key)
	assert.Equal(t, "2024-02-14", series[1].Key)
	assert.Equal(t, "2024-03-05", series[2].Key)
	assert.True(t, decimal.RequireFromString("70").Equal(series[0].Amount))
	assert.True(t, decimal.RequireFromString("75").Equal(series[1].Amount))
	assert.True(t, decimal.RequireFromString("125").Equal(series[2].Amount))
}

func TestEngine_RecipientPercentages(t *testing.T) {
	e := NewEngine(sample(), nil)
	shares := e.RecipientPercentages()

	require.Len(t, shares, 6-1)
	assert.Equal(t, "Market", shares[0].Recipient)
	assert.InDelta(t, 50.0/1205.0*100, shares[0].Percent, 1e-9)

	sum := 0.0
	for _, s := range shares {
		sum += s.Percent
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestEngine_RecipientPercentagesZeroTotal(t *testing.T) {
	e := NewEngine([]models.Transaction{
		tx(models.CategoryExpense, "0", "Nobody", "2024-01-01 00:00:00"),
	}, nil)
	assert.Empty(t, e.RecipientPercentages())
	assert.Empty(t, NewEngine(nil, nil).RecipientPercentages())
}

func TestEngine_YearlySpending(t *testing.T) {
	e := NewEngine(sample(), nil)
	assert.True(t, decimal.RequireFromString("1125").Equal(e.YearlySpending("2024")))
	assert.True(t, decimal.RequireFromString("80").Equal(e.YearlySpending("2023")))
	assert.True(t, e.YearlySpending("1999").IsZero())
	// prefix match: "202" covers both years
	assert.True(t, decimal.RequireFromString("1205").Equal(e.YearlySpending("202")))
}

func TestEngine_UpdateTransactions(t *testing.T) {
	snapshot := sample()
	e := NewEngine(snapshot, nil)
	snapshot[0].Amount = decimal.NewFromInt(999)

	assert.True(t, decimal.RequireFromString("1125").Equal(e.YearlySpending("2024")))

	e.UpdateTransactions(nil)
	_, err := e.CategoryTotals()
	assert.Error(t, err)
}

func TestLinearTrend(t *testing.T) {
	trend, err := LinearTrend([]Point{{0, 1}, {1, 3}, {2, 5}, {3, 7}})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, trend.Slope, 1e-12)
	assert.InDelta(t, 1.0, trend.Intercept, 1e-12)
	assert.InDelta(t, 11.0, trend.At(5), 1e-12)
}

func TestLinearTrend_Degenerate(t *testing.T) {
	_, err := LinearTrend(nil)
	var empty *ledgererror.EmptyDataError
	assert.True(t, errors.As(err, &empty))

	trend, err := LinearTrend([]Point{{1700000000, 42}})
	require.NoError(t, err)
	assert.Equal(t, Trend{Slope: 0, Intercept: 42}, trend)

	trend, err = LinearTrend([]Point{{5, 10}, {5, 20}})
	require.NoError(t, err)
	assert.Equal(t, Trend{Slope: 0, Intercept: 15}, trend)
}

func TestEngine_SpendingTrend(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	var txs []models.Transaction
	for i := 0; i < 4; i++ {
		txs = append(txs, models.Transaction{
			Category: models.CategoryExpense,
			Amount:   decimal.NewFromInt(int64(10 + 5*i)),
			Date:     base.AddDate(0, 0, i),
		})
	}
	txs = append(txs, models.Transaction{Category: models.CategoryDeposit, Amount: decimal.NewFromInt(5000), Date: base})

	e := NewEngine(txs, nil)
	points := e.SpendingPoints()
	require.Len(t, points, 4)

	trend, err := e.SpendingTrend()
	require.NoError(t, err)
	perDay := trend.Slope * 86400
	assert.InDelta(t, 5.0, perDay, 1e-6)
	assert.False(t, math.IsNaN(trend.Intercept))
	assert.InDelta(t, 10.0, trend.At(points[0].X), 1e-4)
}
