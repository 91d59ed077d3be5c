package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/spendwise/internal/analytics"
	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const hbarWidth = 24

func analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analytics",
		Aliases: []string{"stats"},
		Short:   "Show spending trends and category breakdowns",
		Long: `Show a spending report for a timeframe along with trend charts.

The report covers month, quarter (this month and the two before), year or all
time. The charts show daily totals, the average expense per weekday, the last
twelve months and the top categories.`,
		Args: cobra.NoArgs,
		RunE: runAnalytics,
	}

	cmd.Flags().StringP("timeframe", "t", string(analytics.TimeframeMonth), "report window (month, quarter, year, all)")
	cmd.Flags().Int("days", 0, "days in the daily trend (default: charts.days)")
	cmd.Flags().Int("top", 0, "categories in the breakdown (default: charts.top_categories)")

	return cmd
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	rawTimeframe, _ := cmd.Flags().GetString("timeframe")
	timeframe, err := analytics.ParseTimeframe(rawTimeframe)
	if err != nil {
		return common.NewUserError("Unknown timeframe", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	days, _ := cmd.Flags().GetInt("days")
	if days <= 0 {
		days = cfg.ChartDays
	}
	top, _ := cmd.Flags().GetInt("top")
	if top <= 0 {
		top = cfg.TopCategories
	}

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	expenses := l.Expenses()
	now := l.Now()
	money := l.Settings().FormatAmount

	report := analytics.Analyze(expenses, timeframe, now)
	var b strings.Builder
	fmt.Fprintf(&b, "Total spent    %s\n", cli.BoldStyle.Render(money(report.TotalSpent)))
	fmt.Fprintf(&b, "Daily average  %s over %d days\n", money(report.DailyAverage), report.Days)
	if report.TopCategory != nil {
		fmt.Fprintf(&b, "Top category   %s %s  %s (%s)",
			report.TopCategory.Category.Icon(), report.TopCategory.Category.DisplayName(),
			money(report.TopCategory.Amount), cli.FormatPercent(report.TopCategory.Percent))
	} else {
		b.WriteString("Top category   none")
	}
	title := fmt.Sprintf("%s Report: %s (%s to %s)", cli.ChartIcon, timeframe,
		report.Start.Format("02 Jan 2006"), report.End.Format("02 Jan 2006"))
	writeln(out, cli.RenderBox(title, b.String()))

	if len(report.ByCategory) > 0 {
		writeln(out, "")
		writeln(out, cli.TitleStyle.Render("By category"))
		renderShares(out, report.ByCategory, money)
	}

	daily := analytics.DailySeries(expenses, now, days)
	values := make([]float64, len(daily))
	for i, p := range daily {
		values[i] = p.Value
	}
	writeln(out, "")
	writeln(out, cli.TitleStyle.Render(fmt.Sprintf("Daily spending, last %d days", days)))
	writef(out, "  %s  %s\n", daily[0].Label, cli.Sparkline(values))
	writef(out, "  %s\n", cli.SubtleStyle.Render("through "+daily[len(daily)-1].Label))

	weekly := analytics.WeeklyAverages(expenses)
	var highest float64
	for _, v := range weekly {
		highest = max(highest, v)
	}
	writeln(out, "")
	writeln(out, cli.TitleStyle.Render("Average expense by weekday"))
	for i, v := range weekly {
		writef(out, "  %s  %s %s\n", analytics.WeekdayLabels[i], paddedBar(v, highest), money(v))
	}

	monthly := analytics.MonthlySeries(expenses, now)
	highest = 0
	for _, p := range monthly {
		highest = max(highest, p.Value)
	}
	writeln(out, "")
	writeln(out, cli.TitleStyle.Render("Monthly totals"))
	for _, p := range monthly {
		writef(out, "  %s  %s %s\n", p.Label, paddedBar(p.Value, highest), money(p.Value))
	}

	shares := analytics.CategoryBreakdown(expenses, top)
	if len(shares) > 0 {
		writeln(out, "")
		writeln(out, cli.TitleStyle.Render(fmt.Sprintf("Top %d categories, all time", len(shares))))
		renderShares(out, shares, money)
	}
	return nil
}

func renderShares(w io.Writer, shares []analytics.CategoryShare, money func(float64) string) {
	var highest float64
	for _, s := range shares {
		highest = max(highest, s.Amount)
	}
	for _, s := range shares {
		writef(w, "  %s %-18s %s %s  %s\n",
			s.Category.Icon(), s.Category.DisplayName(),
			paddedBar(s.Amount, highest),
			money(s.Amount), cli.SubtleStyle.Render(cli.FormatPercent(s.Percent)))
	}
}

func paddedBar(value, highest float64) string {
	return lipgloss.NewStyle().Width(hbarWidth).Render(cli.HBar(value, highest, hbarWidth))
}
