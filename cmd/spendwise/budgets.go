package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/spendwise/internal/analytics"
	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/spf13/cobra"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Compare this month's spending with each category budget",
		Args:  cobra.NoArgs,
		RunE:  runBudgets,
	}

	cmd.AddCommand(budgetsSetCmd())

	return cmd
}

func budgetsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <category> <limit>",
		Short:   "Set the monthly limit of a category",
		Example: "  spendwise budgets set food 12000",
		Args:    cobra.ExactArgs(2),
		RunE:    runBudgetsSet,
	}
}

func runBudgets(cmd *cobra.Command, _ []string) error {
	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	money := l.Settings().FormatAmount
	rows := analytics.BudgetVsActual(l.Expenses(), l.Budgets(), l.Now())

	writeln(out, cli.TitleStyle.Render(cli.TargetIcon+" Budgets for "+model.MonthKeyOf(l.Now())))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		remaining := cli.SuccessStyle.Render(money(row.Remaining) + " left")
		if row.Overspent() {
			remaining = cli.ErrorStyle.Render(money(-row.Remaining) + " over")
		}
		writef(w, "%s %s\t%s / %s\t%s\t%s\n",
			row.Category.Icon(), row.Category.DisplayName(),
			money(row.Spent), money(row.Limit),
			cli.ProgressBar(row.Percent, 20),
			remaining)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func runBudgetsSet(cmd *cobra.Command, args []string) error {
	category, err := model.ParseCategory(args[0])
	if err != nil {
		return common.NewUserError("Unknown category", err)
	}
	limit, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := l.SetBudget(commandContext(cmd), category, limit); err != nil {
		return common.NewUserError("Could not set budget", err)
	}

	writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s budget set to %s",
		category.DisplayName(), l.Settings().FormatAmount(limit))))
	return nil
}
