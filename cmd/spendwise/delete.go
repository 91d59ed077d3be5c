package main

import (
	"fmt"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE:    runDelete,
	}

	cmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	expense, ok := l.Expense(id)
	if !ok {
		writeln(out, cli.FormatInfo(fmt.Sprintf("No expense with id %d", id)))
		return nil
	}

	if !skipConfirm {
		confirmer := cli.NewConfirmer(cmd.InOrStdin(), out)
		question := fmt.Sprintf("Delete #%d %s?", id, describeExpense(expense, l.Settings()))
		confirmed, err := confirmer.Confirm(ctx, question)
		if err != nil {
			return err
		}
		if !confirmed {
			writeln(out, cli.FormatInfo("Delete canceled"))
			return nil
		}
	}

	if _, err := l.RemoveExpense(ctx, id); err != nil {
		return common.NewUserError("Could not delete expense", err)
	}

	writeln(out, cli.FormatSuccess(fmt.Sprintf("Deleted #%d", id)))
	return nil
}
