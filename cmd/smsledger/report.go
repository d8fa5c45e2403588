package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/smsledger/internal/analytics"
	"github.com/jask/smsledger/internal/model"
	"github.com/jask/smsledger/internal/service"
)

// Catppuccin Mocha subset.
const (
	colorRed    lipgloss.Color = "#f38ba8"
	colorPeach  lipgloss.Color = "#fab387"
	colorYellow lipgloss.Color = "#f9e2af"
	colorGreen  lipgloss.Color = "#a6e3a1"
	colorBlue   lipgloss.Color = "#89b4fa"
	colorText   lipgloss.Color = "#cdd6f4"
	colorMuted  lipgloss.Color = "#6c7086"
)

var (
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	styleGood    = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn    = lipgloss.NewStyle().Foreground(colorYellow)
	styleBad     = lipgloss.NewStyle().Foreground(colorRed)
	styleAccent  = lipgloss.NewStyle().Foreground(colorPeach)
	styleDefault = lipgloss.NewStyle().Foreground(colorText)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
)

func renderImport(result model.ImportResult) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Import") + "\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n",
		styleGood.Render(fmt.Sprintf("imported %d", result.ImportedCount)),
		styleBad.Render(fmt.Sprintf("failed %d", result.FailedCount))))
	for _, msg := range result.Errors {
		b.WriteString("  " + styleMuted.Render(msg) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderReport(engine *analytics.Engine, transactions []model.Transaction) string {
	var b strings.Builder

	now := time.Now()
	summary := engine.Summary(transactions, now)
	b.WriteString(styleHeader.Render("This month") + "\n")
	b.WriteString(fmt.Sprintf("  income %s  expenses %s  savings %s\n\n",
		styleGood.Render(fmt.Sprintf("%.2f", summary.Income)),
		styleBad.Render(fmt.Sprintf("%.2f", summary.Expenses)),
		styleDefault.Render(fmt.Sprintf("%.2f", summary.Savings))))

	trends := engine.Trends(transactions)
	if len(trends) > 0 {
		b.WriteString(styleHeader.Render("Trends") + "\n")
		for _, trend := range trends {
			line := fmt.Sprintf("  %s  out %.2f  in %.2f",
				trend.Period.Format("2006-01"), trend.TotalExpenses, trend.TotalIncome)
			if trend.ChangePercentage != nil {
				line += "  " + styleAccent.Render(fmt.Sprintf("%+.1f%%", *trend.ChangePercentage))
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	alerts := engine.BudgetAlerts(transactions)
	if len(alerts) > 0 {
		b.WriteString(styleHeader.Render("Budget alerts") + "\n")
		for _, alert := range alerts {
			style := styleWarn
			if alert.AlertType == model.AlertExceeded {
				style = styleBad
			}
			b.WriteString("  " + style.Render(fmt.Sprintf("%s %.0f%% (%.2f of %.2f)",
				alert.Category, alert.Percentage, alert.SpentAmount, alert.BudgetLimit)) + "\n")
		}
		b.WriteString("\n")
	}

	insights := engine.Insights(transactions)
	if len(insights) > 0 {
		b.WriteString(styleHeader.Render("Insights") + "\n")
		for _, insight := range insights {
			b.WriteString(fmt.Sprintf("  %s: %s\n",
				styleAccent.Render(insight.Title), styleDefault.Render(insight.Message)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderReview(pairs []service.ReviewPair) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Possible duplicates") + "\n")
	if len(pairs) == 0 {
		b.WriteString("  " + styleMuted.Render("none") + "\n")
		return b.String()
	}
	for _, pair := range pairs {
		b.WriteString(fmt.Sprintf("  %.0f%%  %s (%s)  ~  %s (%s)\n",
			pair.Similarity*100,
			pair.A.Description, pair.A.Date.Format("2006-01-02"),
			pair.B.Description, pair.B.Date.Format("2006-01-02")))
	}
	return b.String()
}
