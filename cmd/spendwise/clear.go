package main

import (
	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/spf13/cobra"
)

func clearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all expenses, budgets, goals and settings",
		Long: `Remove every stored collection and start over with the default budgets
and settings. This cannot be undone; consider 'spendwise backup create' first.`,
		Args: cobra.NoArgs,
		RunE: runClear,
	}

	cmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, _ []string) error {
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()
	if !skipConfirm {
		confirmer := cli.NewConfirmer(cmd.InOrStdin(), out)
		ok, err := confirmer.Confirm(ctx, "Are you sure you want to clear all data? This cannot be undone.")
		if err != nil {
			return err
		}
		if !ok {
			writeln(out, cli.FormatInfo("Clear canceled"))
			return nil
		}
	}

	if err := l.Clear(ctx); err != nil {
		return common.NewUserError("Could not clear data", err)
	}
	writeln(out, cli.FormatSuccess("All data cleared"))
	return nil
}
