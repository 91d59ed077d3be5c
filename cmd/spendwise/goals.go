package main

import (
	"github.com/Veraticus/spendwise/internal/analytics"
	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/spf13/cobra"
)

func goalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Show progress towards savings goals",
		Args:  cobra.NoArgs,
		RunE:  runGoals,
	}
}

func runGoals(cmd *cobra.Command, _ []string) error {
	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	money := l.Settings().FormatAmount
	goals := analytics.GoalProgress(l.Goals())
	if len(goals) == 0 {
		writeln(out, cli.InfoStyle.Render("No goals yet. Import a document with goals to track them."))
		return nil
	}

	writeln(out, cli.TitleStyle.Render(cli.TargetIcon+" Goals"))
	for _, g := range goals {
		writef(out, "%s  %s\n", cli.BoldStyle.Render(g.Goal.Title),
			cli.SubtleStyle.Render("by "+g.Goal.TargetDate.Format()))
		writef(out, "  %s\n", cli.ProgressBar(g.Percent, barWidth))
		writef(out, "  %s of %s, %s to go\n\n",
			money(g.Goal.CurrentAmount), money(g.Goal.TargetAmount), money(max(g.Remaining, 0)))
	}
	writeln(out, cli.SubtleStyle.Render(plural(len(goals), "goal")))
	return nil
}
