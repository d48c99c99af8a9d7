package models

import (
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/triz-financeiro/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TrendDirection is the direction of a category's spend relative to the
// previous period.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
)

// significantTrendPercentage is the noise filter for the trends list. Only
// changes larger than this are surfaced.
const significantTrendPercentage = 5

// CategorySpend is the spend aggregate for a single category over a
// reporting window.
type CategorySpend struct {
	CategoryID       uint64          `json:"categoryId"`
	Name             string          `json:"name"`
	Value            decimal.Decimal `json:"value"`            // Total expense amount in the window
	Budget           decimal.Decimal `json:"budget"`           // The category threshold, 0 when unset
	TransactionCount int             `json:"transactionCount"` // Number of matching expense transactions
	Trend            TrendDirection  `json:"trend"`
	Percentage       float64         `json:"percentage"` // Absolute change against the previous window
	Comparison       string          `json:"comparison"` // Label of the window compared against
}

// SeriesPoint is one bucket of the income vs. expenses series.
type SeriesPoint struct {
	Period   string          `json:"period"` // Display label: day of month, or abbreviated month name
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// TopExpense is one of the largest expense transactions in the window.
type TopExpense struct {
	ID         uint64          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	CategoryID *uint64         `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"` // Short display date, DD/MM
}

// TrendEntry is a significant spend change for a category.
type TrendEntry struct {
	CategoryID uint64         `json:"categoryId"`
	Name       string         `json:"name"`
	Trend      TrendDirection `json:"trend"`
	Percentage float64        `json:"percentage"`
	Comparison string         `json:"comparison"`
}

// Summary aggregates the whole reporting window.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	Savings          decimal.Decimal `json:"savings"`
	BudgetUsed       int64           `json:"budgetUsed"` // Percentage of the summed thresholds spent, rounded
	TransactionCount int             `json:"transactionCount"`
}

// Analytics is the full aggregate payload for a reporting period.
//
// All five aggregates are computed in the same request. A failure in any of
// them fails the whole computation, partial results are never returned.
type Analytics struct {
	CategorySpending []CategorySpend `json:"categorySpending"`
	IncomeVsExpenses []SeriesPoint   `json:"incomeVsExpenses"`
	TopExpenses      []TopExpense    `json:"topExpenses"`
	Trends           []TrendEntry    `json:"trends"`
	Summary          Summary         `json:"summary"`
}

// GetAnalytics computes the aggregate payload for the period, anchored at
// now.
func GetAnalytics(db *gorm.DB, period types.Period, now time.Time) (Analytics, error) {
	window := period.Window(now)

	spending, err := CategorySpending(db, period, now)
	if err != nil {
		return Analytics{}, err
	}

	series, err := IncomeExpenseSeries(db, period, window)
	if err != nil {
		return Analytics{}, err
	}

	top, err := TopExpenses(db, window)
	if err != nil {
		return Analytics{}, err
	}

	summary, err := Summarize(db, window, spending)
	if err != nil {
		return Analytics{}, err
	}

	return Analytics{
		CategorySpending: spending,
		IncomeVsExpenses: series,
		TopExpenses:      top,
		Trends:           Trends(spending),
		Summary:          summary,
	}, nil
}

// categoryTotal is the scan target for the grouped category expense query.
type categoryTotal struct {
	CategoryID uint64
	Name       string
	Threshold  decimal.NullDecimal
	Total      decimal.Decimal
	Count      int
}

// categoryTotals sums expense amounts per category over the window. The
// left join keeps categories without any matching transaction in the
// result with a zero total.
func categoryTotals(db *gorm.DB, w types.Window) ([]categoryTotal, error) {
	var totals []categoryTotal

	err := db.Table("categories").
		Select("categories.id AS category_id, categories.name, categories.threshold, "+
			"COALESCE(SUM(transactions.amount), 0) AS total, "+
			"COUNT(transactions.id) AS count").
		Joins("LEFT JOIN transactions ON transactions.category_id = categories.id "+
			"AND transactions.type = ? "+
			"AND datetime(transactions.date) >= datetime(?) "+
			"AND datetime(transactions.date) < datetime(?)", Expense, w.Start, w.End).
		Group("categories.id, categories.name, categories.threshold").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	return totals, nil
}

// CategorySpending aggregates expense totals per category for the period
// and annotates each with its trend against the previous period.
func CategorySpending(db *gorm.DB, period types.Period, now time.Time) ([]CategorySpend, error) {
	window := period.Window(now)

	current, err := categoryTotals(db, window)
	if err != nil {
		return nil, err
	}

	previous, err := categoryTotals(db, period.Previous(window))
	if err != nil {
		return nil, err
	}

	previousTotals := make(map[uint64]decimal.Decimal, len(previous))
	for _, t := range previous {
		previousTotals[t.CategoryID] = t.Total
	}

	spending := make([]CategorySpend, 0, len(current))
	for _, t := range current {
		trendPercentage := trendPercentage(t.Total, previousTotals[t.CategoryID])

		trend := TrendUp
		if trendPercentage < 0 {
			trend = TrendDown
		}

		budget := decimal.Zero
		if t.Threshold.Valid {
			budget = t.Threshold.Decimal
		}

		spending = append(spending, CategorySpend{
			CategoryID:       t.CategoryID,
			Name:             t.Name,
			Value:            t.Total,
			Budget:           budget,
			TransactionCount: t.Count,
			Trend:            trend,
			Percentage:       math.Abs(trendPercentage),
			Comparison:       period.Comparison(),
		})
	}

	return spending, nil
}

// trendPercentage computes the percentage change from previous to current.
// A spend appearing out of nothing counts as a full 100% increase, two
// empty windows as no change.
func trendPercentage(current, previous decimal.Decimal) float64 {
	if previous.IsPositive() {
		change, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
		return change
	}

	if current.IsPositive() {
		return 100
	}

	return 0
}

// seriesRow is the scan target for the bucketed income vs. expenses query.
type seriesRow struct {
	Bucket   string
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// IncomeExpenseSeries sums income and expense amounts per time bucket over
// the window. Weekly and monthly periods bucket by calendar day, yearly
// buckets by calendar month.
func IncomeExpenseSeries(db *gorm.DB, period types.Period, w types.Window) ([]SeriesPoint, error) {
	bucket := "strftime('%Y-%m-%d', transactions.date)"
	if period == types.PeriodYearly {
		bucket = "strftime('%Y-%m', transactions.date)"
	}

	var rows []seriesRow
	err := db.Table("transactions").
		Select(bucket+" AS bucket, "+
			"COALESCE(SUM(CASE WHEN transactions.type = 'income' THEN transactions.amount ELSE 0 END), 0) AS income, "+
			"COALESCE(SUM(CASE WHEN transactions.type = 'expense' THEN transactions.amount ELSE 0 END), 0) AS expenses").
		Where("datetime(transactions.date) >= datetime(?)", w.Start).
		Where("datetime(transactions.date) < datetime(?)", w.End).
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	series := make([]SeriesPoint, 0, len(rows))
	for _, row := range rows {
		series = append(series, SeriesPoint{
			Period:   bucketLabel(period, row.Bucket),
			Income:   row.Income,
			Expenses: row.Expenses,
		})
	}

	return series, nil
}

// bucketLabel re-labels a raw bucket key for display. Daily buckets become
// the day of month, monthly buckets the abbreviated month name.
func bucketLabel(period types.Period, bucket string) string {
	if period == types.PeriodYearly {
		t, err := time.Parse("2006-01", bucket)
		if err != nil {
			return bucket
		}

		return t.Month().String()[:3]
	}

	t, err := time.Parse("2006-01-02", bucket)
	if err != nil {
		return bucket
	}

	return strconv.Itoa(t.Day())
}

// topExpenseCount caps the top expenses list.
const topExpenseCount = 5

// uncategorizedLabel is the display fallback for expenses without a
// category.
const uncategorizedLabel = "Other"

// topExpenseRow is the scan target for the top expenses query.
type topExpenseRow struct {
	ID           uint64
	Description  string
	Amount       decimal.Decimal
	Date         time.Time
	CategoryID   *uint64
	CategoryName *string
}

// TopExpenses returns the largest expense transactions in the window,
// strictly descending by amount.
func TopExpenses(db *gorm.DB, w types.Window) ([]TopExpense, error) {
	var rows []topExpenseRow

	err := db.Table("transactions").
		Select("transactions.id, transactions.description, transactions.amount, "+
			"transactions.date, transactions.category_id, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.type = ?", Expense).
		Where("datetime(transactions.date) >= datetime(?)", w.Start).
		Where("datetime(transactions.date) < datetime(?)", w.End).
		Order("transactions.amount DESC").
		Limit(topExpenseCount).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	top := make([]TopExpense, 0, len(rows))
	for _, row := range rows {
		category := uncategorizedLabel
		if row.CategoryName != nil {
			category = *row.CategoryName
		}

		top = append(top, TopExpense{
			ID:         row.ID,
			Name:       row.Description,
			Category:   category,
			CategoryID: row.CategoryID,
			Amount:     row.Amount,
			Date:       row.Date.In(time.UTC).Format("02/01"),
		})
	}

	return top, nil
}

// Trends filters the category spending for significant changes against the
// previous period.
func Trends(spending []CategorySpend) []TrendEntry {
	trends := make([]TrendEntry, 0)
	for _, s := range spending {
		if s.Percentage <= significantTrendPercentage {
			continue
		}

		trends = append(trends, TrendEntry{
			CategoryID: s.CategoryID,
			Name:       s.Name,
			Trend:      s.Trend,
			Percentage: s.Percentage,
			Comparison: s.Comparison,
		})
	}

	// Largest changes first
	slices.SortStableFunc(trends, func(a, b TrendEntry) int {
		switch {
		case a.Percentage > b.Percentage:
			return -1
		case a.Percentage < b.Percentage:
			return 1
		default:
			return 0
		}
	})

	return trends
}

// summaryRow is the scan target for the window totals query.
type summaryRow struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	TransactionCount int
}

// Summarize computes the window totals and the budget utilization across
// all categories.
func Summarize(db *gorm.DB, w types.Window, spending []CategorySpend) (Summary, error) {
	var row summaryRow

	err := db.Table("transactions").
		Select("COALESCE(SUM(CASE WHEN transactions.type = 'income' THEN transactions.amount ELSE 0 END), 0) AS total_income, "+
			"COALESCE(SUM(CASE WHEN transactions.type = 'expense' THEN transactions.amount ELSE 0 END), 0) AS total_expenses, "+
			"COUNT(*) AS transaction_count").
		Where("datetime(transactions.date) >= datetime(?)", w.Start).
		Where("datetime(transactions.date) < datetime(?)", w.End).
		Scan(&row).Error
	if err != nil {
		return Summary{}, err
	}

	totalBudget := decimal.Zero
	totalSpend := decimal.Zero
	for _, s := range spending {
		totalBudget = totalBudget.Add(s.Budget)
		totalSpend = totalSpend.Add(s.Value)
	}

	// Guard the division so that a setup without thresholds reports zero
	// utilization instead of an error or an infinite value
	var budgetUsed int64
	if totalBudget.IsPositive() {
		budgetUsed = totalSpend.Div(totalBudget).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	}

	return Summary{
		TotalIncome:      row.TotalIncome,
		TotalExpenses:    row.TotalExpenses,
		Savings:          row.TotalIncome.Sub(row.TotalExpenses),
		BudgetUsed:       budgetUsed,
		TransactionCount: row.TransactionCount,
	}, nil
}
