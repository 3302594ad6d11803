package tui

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"duit/internal/core"
)

// renderDashboard draws the balance/expense/savings series across every
// archived month plus the current one, followed by the per-month figures.
func renderDashboard(points []core.HistoryPoint, currency string, width int) string {
	if len(points) == 0 {
		return mutedStyle.Render("No data to plot yet.")
	}

	balances := make([]float64, len(points))
	totals := make([]float64, len(points))
	savings := make([]float64, len(points))
	for i, p := range points {
		balances[i] = float64(p.Balance.Cents) / 100
		totals[i] = float64(p.Total.Cents) / 100
		savings[i] = float64(p.Savings.Cents) / 100
	}

	graphWidth := width - 14
	if graphWidth < 20 {
		graphWidth = 20
	}
	plot := asciigraph.PlotMany(
		[][]float64{balances, totals, savings},
		asciigraph.Height(10),
		asciigraph.Width(graphWidth),
		asciigraph.SeriesColors(asciigraph.SlateGray, asciigraph.Red, asciigraph.Gold),
		asciigraph.Precision(2),
	)

	var b strings.Builder
	b.WriteString(plot)
	b.WriteString("\n\n")
	b.WriteString("  " + balanceSeriesStyle.Render("— Balance") +
		"  " + expenseSeriesStyle.Render("— Expense Total") +
		"  " + savingsSeriesStyle.Render("— Savings"))
	b.WriteString("\n\n")

	for _, p := range points {
		b.WriteString("  " + padRight(p.Date, 10))
		b.WriteString(balanceSeriesStyle.Render(padRight(p.Balance.Display(currency), 16)))
		b.WriteString(expenseSeriesStyle.Render(padRight(p.Total.Display(currency), 16)))
		b.WriteString(savingsSeriesStyle.Render(p.Savings.Display(currency)))
		b.WriteString("\n")
	}
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
