package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spendwise/internal/analytics"
	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/spf13/cobra"
)

const barWidth = 30

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show this month's spending against the monthly budget",
		Args:    cobra.NoArgs,
		RunE:    runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	settings := l.Settings()
	view := analytics.Dashboard(l.Expenses(), settings, l.Now())
	month := view.Month
	money := settings.FormatAmount

	var b strings.Builder
	fmt.Fprintf(&b, "This month    %s\n", cli.BoldStyle.Render(money(month.Current)))
	fmt.Fprintf(&b, "Last month    %s", money(month.Previous))
	if month.Previous > 0 {
		change := fmt.Sprintf("%+.1f%%", month.ChangePercent)
		style := cli.SuccessStyle
		if month.ChangePercent > 0 {
			style = cli.ErrorStyle
		}
		fmt.Fprintf(&b, "  %s", style.Render(change))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Daily average %s  (%d of %d days, %d left)\n",
		money(month.DailyAverage), month.DaysElapsed, month.DaysInMonth, month.DaysRemaining)
	fmt.Fprintf(&b, "All time      %s\n\n", money(view.Total))

	fmt.Fprintf(&b, "Budget %s\n", money(view.MonthlyBudget))
	b.WriteString(cli.ProgressBar(view.BudgetUsed, barWidth))
	b.WriteString("\n")
	if view.RemainingBudget >= 0 {
		b.WriteString(cli.SuccessStyle.Render(money(view.RemainingBudget) + " left"))
	} else {
		b.WriteString(cli.ErrorStyle.Render(money(-view.RemainingBudget) + " over budget"))
	}

	out := cmd.OutOrStdout()
	writeln(out, cli.RenderBox(cli.WalletIcon+" Dashboard "+month.Month, b.String()))

	if len(view.Recent) == 0 {
		writeln(out, cli.InfoStyle.Render("No expenses yet. Use 'spendwise add' to record one."))
		return nil
	}
	writeln(out, "")
	writeln(out, cli.TitleStyle.Render("Recent expenses"))
	for _, e := range view.Recent {
		writef(out, "  #%d  %s\n", e.ID, describeExpense(e, settings))
	}

	checkBudget(out, l)
	return nil
}
