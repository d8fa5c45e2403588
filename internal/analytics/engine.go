// Package analytics derives monthly trends, budget alerts, and insights
// from a transaction snapshot. Every method is pure: same input, same
// output, no retained state. Callers own caching and publication.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jask/smsledger/internal/model"
)

// DefaultLimits is the stock per-category monthly budget. Salary,
// Transfer, and Cash carry no limit and therefore never alert.
func DefaultLimits() map[model.Category]float64 {
	return map[model.Category]float64{
		model.Food:           20000,
		model.Transportation: 10000,
		model.Shopping:       15000,
		model.Entertainment:  8000,
		model.Bills:          25000,
		model.Other:          5000,
	}
}

// Engine computes analytics over transaction snapshots. Budget limits and
// the clock are injected so tests and configuration control both.
type Engine struct {
	limits map[model.Category]float64
	now    func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an engine with the given limits; nil means DefaultLimits.
func New(limits map[model.Category]float64, opts ...Option) *Engine {
	if limits == nil {
		limits = DefaultLimits()
	}
	e := &Engine{limits: limits, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Trends groups transactions by calendar month (UTC) and reports each
// month's totals in chronological order. ChangePercentage compares a
// month's expenses against the previous reported month and is set only
// when that previous month had expenses above zero.
func (e *Engine) Trends(transactions []model.Transaction) []model.SpendingTrend {
	byMonth := make(map[time.Time][]model.Transaction)
	for _, tx := range transactions {
		month := model.MonthOf(tx.Date)
		byMonth[month] = append(byMonth[month], tx)
	}

	months := make([]time.Time, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	trends := make([]model.SpendingTrend, 0, len(months))
	for i, month := range months {
		expenses := sumByType(byMonth[month], model.Expense)
		income := sumByType(byMonth[month], model.Income)

		var change *float64
		if i > 0 {
			prev := sumByType(byMonth[months[i-1]], model.Expense)
			if prev > 0 {
				pct := safeFloat((expenses - prev) / prev * 100)
				change = &pct
			}
		}

		trends = append(trends, model.SpendingTrend{
			Period:            month,
			TotalExpenses:     expenses,
			TotalIncome:       income,
			ChangePercentage:  change,
			CategoryBreakdown: breakdown(byMonth[month]),
		})
	}
	return trends
}

// BudgetAlerts reports categories whose current-month expenses reach 80%
// of their configured limit, Exceeded at 100%. Categories without a limit
// never alert. Output is sorted by percentage, highest first.
func (e *Engine) BudgetAlerts(transactions []model.Transaction) []model.BudgetAlert {
	current := model.MonthOf(e.now())

	spent := make(map[model.Category]float64)
	for _, tx := range transactions {
		if tx.Type == model.Expense && model.MonthOf(tx.Date).Equal(current) {
			spent[tx.Category] += tx.Amount
		}
	}

	var alerts []model.BudgetAlert
	for category, total := range spent {
		limit, ok := e.limits[category]
		if !ok {
			continue
		}
		pct := safeFloat(total / limit * 100)
		if pct < 80 {
			continue
		}
		kind := model.AlertWarning
		if pct >= 100 {
			kind = model.AlertExceeded
		}
		alerts = append(alerts, model.BudgetAlert{
			Category:    category,
			SpentAmount: total,
			BudgetLimit: limit,
			Percentage:  pct,
			AlertType:   kind,
		})
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].Percentage > alerts[j].Percentage })
	return alerts
}

// Insights reports on the current month. An empty current month yields no
// insights at all, including the income-only ones.
func (e *Engine) Insights(transactions []model.Transaction) []model.FinancialInsight {
	current := model.MonthOf(e.now())

	var month []model.Transaction
	for _, tx := range transactions {
		if model.MonthOf(tx.Date).Equal(current) {
			month = append(month, tx)
		}
	}
	if len(month) == 0 {
		return nil
	}

	var insights []model.FinancialInsight

	if largest, ok := largestExpense(month); ok {
		category := largest.Category
		insights = append(insights, model.FinancialInsight{
			Type:     model.InsightLargestExpense,
			Title:    "Largest expense",
			Message:  fmt.Sprintf("%.2f BYN - %s", largest.Amount, largest.Description),
			Value:    largest.Amount,
			Category: &category,
		})
	}

	income := sumByType(month, model.Income)
	expenses := sumByType(month, model.Expense)

	if income > 0 {
		rate := safeFloat((income - expenses) / income * 100)
		insight := model.FinancialInsight{
			Type:    model.InsightSavingsRate,
			Title:   "Savings rate",
			Message: fmt.Sprintf("You are keeping %d%% of your income", roundInt(rate)),
			Value:   rate,
		}
		if rate < 0 {
			insight.Type = model.InsightOverspending
			insight.Title = "Overspending"
			insight.Message = fmt.Sprintf("Spending exceeds income by %d%%", roundInt(math.Abs(rate)))
		}
		insights = append(insights, insight)
	}

	if top, ok := topCategory(breakdown(month)); ok {
		pct := 0.0
		if expenses > 0 {
			pct = safeFloat(top.Amount / expenses * 100)
		}
		category := top.Category
		insights = append(insights, model.FinancialInsight{
			Type:     model.InsightTopCategory,
			Title:    "Top spending category",
			Message:  fmt.Sprintf("%d%% of spending on %s", roundInt(pct), top.Category),
			Value:    top.Amount,
			Category: &category,
		})
	}

	return insights
}

// Summary totals the given calendar month.
func (e *Engine) Summary(transactions []model.Transaction, month time.Time) model.MonthlySummary {
	target := model.MonthOf(month)
	var s model.MonthlySummary
	for _, tx := range transactions {
		if !model.MonthOf(tx.Date).Equal(target) {
			continue
		}
		switch tx.Type {
		case model.Income:
			s.Income += tx.Amount
		case model.Expense:
			s.Expenses += tx.Amount
		}
	}
	s.Savings = s.Income - s.Expenses
	return s
}

// breakdown sums expenses per category in canonical category order,
// omitting categories with nothing spent.
func breakdown(transactions []model.Transaction) []model.CategoryBreakdown {
	totals := make(map[model.Category]float64)
	for _, tx := range transactions {
		if tx.Type == model.Expense {
			totals[tx.Category] += tx.Amount
		}
	}
	var out []model.CategoryBreakdown
	for _, category := range model.Categories() {
		if amount, ok := totals[category]; ok {
			out = append(out, model.CategoryBreakdown{Category: category, Amount: amount})
		}
	}
	return out
}

func largestExpense(transactions []model.Transaction) (model.Transaction, bool) {
	var best model.Transaction
	found := false
	for _, tx := range transactions {
		if tx.Type != model.Expense {
			continue
		}
		if !found || tx.Amount > best.Amount {
			best = tx
			found = true
		}
	}
	return best, found
}

// topCategory picks the largest breakdown entry. The breakdown is in
// canonical order, so ties resolve to the category listed first.
func topCategory(entries []model.CategoryBreakdown) (model.CategoryBreakdown, bool) {
	if len(entries) == 0 {
		return model.CategoryBreakdown{}, false
	}
	top := entries[0]
	for _, entry := range entries[1:] {
		if entry.Amount > top.Amount {
			top = entry
		}
	}
	return top, true
}

func sumByType(transactions []model.Transaction, typ model.TransactionType) float64 {
	var total float64
	for _, tx := range transactions {
		if tx.Type == typ {
			total += tx.Amount
		}
	}
	return total
}

// safeFloat normalizes NaN and infinities to 0. Degenerate divisions are
// not errors here, they just read as "no signal".
func safeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func roundInt(v float64) int {
	return int(math.Round(safeFloat(v)))
}
