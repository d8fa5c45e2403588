package model

import "time"

// CategoryBreakdown is the expense total for one category in a window.
// Recomputed on demand, never persisted.
type CategoryBreakdown struct {
	Category Category
	Amount   float64
}

// SpendingTrend aggregates one calendar month.
type SpendingTrend struct {
	Period        time.Time // first of month, UTC
	TotalExpenses float64
	TotalIncome   float64
	// ChangePercentage is nil unless a prior month with nonzero expenses
	// exists.
	ChangePercentage  *float64
	CategoryBreakdown []CategoryBreakdown
}

// AlertType grades a budget alert.
type AlertType string

const (
	AlertWarning  AlertType = "warning"
	AlertExceeded AlertType = "exceeded"
)

// BudgetAlert reports a category at or past 80% of its configured limit.
type BudgetAlert struct {
	Category    Category
	SpentAmount float64
	BudgetLimit float64
	Percentage  float64
	AlertType   AlertType
}

// InsightType enumerates generated and reserved insight kinds.
type InsightType string

const (
	InsightLargestExpense   InsightType = "largest_expense"
	InsightSavingsRate      InsightType = "savings_rate"
	InsightOverspending     InsightType = "overspending"
	InsightTopCategory      InsightType = "top_spending_category"
	InsightBudgetWarning    InsightType = "budget_warning"
	InsightFrequentSpending InsightType = "frequent_spending"
	InsightSpendingIncrease InsightType = "spending_increase"
	InsightSpendingDecrease InsightType = "spending_decrease"
)

// FinancialInsight is one derived observation about the current month.
type FinancialInsight struct {
	Type     InsightType
	Title    string
	Message  string
	Value    float64
	Category *Category
}

// MonthlySummary totals one month's movements.
type MonthlySummary struct {
	Income   float64
	Expenses float64
	Savings  float64
}

// ImportResult reports a batch import. Errors holds one entry per
// failed or duplicate message, in input order, untruncated.
type ImportResult struct {
	ImportedCount int
	FailedCount   int
	Errors        []string
}
