package v1_test

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/triz-financeiro/backend/internal/controllers/v1"
	"github.com/triz-financeiro/backend/internal/models"
	"github.com/triz-financeiro/backend/test"
)

// TestAnalyticsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestAnalyticsOptions() {
	r := test.Request(suite.router, suite.T(), http.MethodOptions, "http://example.com/v1/analytics", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestAnalyticsInvalidPeriod() {
	r := test.Request(suite.router, suite.T(), http.MethodGet, "http://example.com/v1/analytics?period=daily", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestAnalyticsMonthly verifies the full aggregate payload for a small,
// fully known data set.
func (suite *TestSuiteStandard) TestAnalyticsMonthly() {
	food := suite.createTestCategory(v1.CategoryEditable{
		Name:      "Food",
		Threshold: decimalPtr(decimal.NewFromInt(800)),
	})
	_ = suite.createTestCategory(v1.CategoryEditable{Name: "Rent"})

	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type:        models.Expense,
		Description: "Groceries",
		Amount:      decimal.NewFromInt(300),
		CategoryID:  &food.ID,
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type:        models.Expense,
		Description: "Restaurant week",
		Amount:      decimal.NewFromInt(600),
		CategoryID:  &food.ID,
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type:        models.Expense,
		Description: "Parking",
		Amount:      decimal.NewFromInt(50),
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type:        models.Income,
		Description: "Paycheck",
		Amount:      decimal.NewFromInt(2500),
	})

	r := test.Request(suite.router, suite.T(), http.MethodGet, "http://example.com/v1/analytics?period=monthly", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var analytics models.Analytics
	test.DecodeResponse(suite.T(), &r, &analytics)

	// Category spending: Food with two transactions, Rent empty via the
	// left join
	spending := make(map[string]models.CategorySpend, len(analytics.CategorySpending))
	for _, s := range analytics.CategorySpending {
		spending[s.Name] = s
	}

	if assert.Contains(suite.T(), spending, "Food") {
		assert.True(suite.T(), spending["Food"].Value.Equal(decimal.NewFromInt(900)))
		assert.Equal(suite.T(), 2, spending["Food"].TransactionCount)
		assert.Equal(suite.T(), models.TrendUp, spending["Food"].Trend)
		assert.Equal(suite.T(), float64(100), spending["Food"].Percentage)
		assert.Equal(suite.T(), "previous month", spending["Food"].Comparison)
	}

	if assert.Contains(suite.T(), spending, "Rent") {
		assert.True(suite.T(), spending["Rent"].Value.IsZero())
		assert.Equal(suite.T(), 0, spending["Rent"].TransactionCount)
	}

	// Top expenses: descending by amount, fallback label for the
	// uncategorized one
	if assert.Len(suite.T(), analytics.TopExpenses, 3) {
		assert.Equal(suite.T(), "Restaurant week", analytics.TopExpenses[0].Name)
		assert.Equal(suite.T(), "Groceries", analytics.TopExpenses[1].Name)
		assert.Equal(suite.T(), "Parking", analytics.TopExpenses[2].Name)
		assert.Equal(suite.T(), "Food", analytics.TopExpenses[0].Category)
		assert.Equal(suite.T(), "Other", analytics.TopExpenses[2].Category)
	}

	// Trends: Food went from nothing to 900, Rent stayed at zero
	if assert.Len(suite.T(), analytics.Trends, 1) {
		assert.Equal(suite.T(), "Food", analytics.Trends[0].Name)
		assert.Equal(suite.T(), models.TrendUp, analytics.Trends[0].Trend)
	}

	// Summary: 900 of the 800 threshold is spent, 112.5% rounds to 113
	assert.True(suite.T(), analytics.Summary.TotalIncome.Equal(decimal.NewFromInt(2500)))
	assert.True(suite.T(), analytics.Summary.TotalExpenses.Equal(decimal.NewFromInt(950)))
	assert.True(suite.T(), analytics.Summary.Savings.Equal(decimal.NewFromInt(1550)))
	assert.Equal(suite.T(), int64(113), analytics.Summary.BudgetUsed)
	assert.Equal(suite.T(), 4, analytics.Summary.TransactionCount)
}

// TestAnalyticsNoThresholds verifies the division guard: without any
// thresholds the budget utilization is zero.
func (suite *TestSuiteStandard) TestAnalyticsNoThresholds() {
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Rent"})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type:       models.Expense,
		Amount:     decimal.NewFromInt(1200),
		CategoryID: &category.ID,
	})

	r := test.Request(suite.router, suite.T(), http.MethodGet, "http://example.com/v1/analytics?period=monthly", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var analytics models.Analytics
	test.DecodeResponse(suite.T(), &r, &analytics)

	assert.Equal(suite.T(), int64(0), analytics.Summary.BudgetUsed)
}

// TestAnalyticsTopExpensesCap verifies that the top expenses list is capped
// at five entries and sorted strictly descending.
func (suite *TestSuiteStandard) TestAnalyticsTopExpensesCap() {
	for i := 1; i <= 7; i++ {
		_ = suite.createTestTransaction(v1.TransactionEditable{
			Type:   models.Expense,
			Amount: decimal.NewFromInt(int64(i * 10)),
		})
	}

	r := test.Request(suite.router, suite.T(), http.MethodGet, "http://example.com/v1/analytics?period=monthly", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var analytics models.Analytics
	test.DecodeResponse(suite.T(), &r, &analytics)

	if assert.Len(suite.T(), analytics.TopExpenses, 5) {
		for i := 1; i < len(analytics.TopExpenses); i++ {
			assert.True(suite.T(), analytics.TopExpenses[i].Amount.LessThan(analytics.TopExpenses[i-1].Amount))
		}

		assert.True(suite.T(), analytics.TopExpenses[0].Amount.Equal(decimal.NewFromInt(70)))
	}
}

// TestAnalyticsYearlySeries verifies that yearly reports bucket by month
// with abbreviated month names as labels.
func (suite *TestSuiteStandard) TestAnalyticsYearlySeries() {
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type:   models.Expense,
		Amount: decimal.NewFromInt(42),
	})

	r := test.Request(suite.router, suite.T(), http.MethodGet, "http://example.com/v1/analytics?period=yearly", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var analytics models.Analytics
	test.DecodeResponse(suite.T(), &r, &analytics)

	if assert.Len(suite.T(), analytics.IncomeVsExpenses, 1) {
		expected := time.Now().UTC().Month().String()[:3]
		assert.Equal(suite.T(), expected, analytics.IncomeVsExpenses[0].Period)
		assert.True(suite.T(), analytics.IncomeVsExpenses[0].Expenses.Equal(decimal.NewFromInt(42)))
	}
}
