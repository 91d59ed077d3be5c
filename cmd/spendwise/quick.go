package main

import (
	"fmt"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/spf13/cobra"
)

func quickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick <category> <amount>",
		Short: "Record a card expense for today in one step",
		Example: `  spendwise quick food 120
  spendwise quick transport 45`,
		Args: cobra.ExactArgs(2),
		RunE: runQuick,
	}
}

func runQuick(cmd *cobra.Command, args []string) error {
	category, err := model.ParseCategory(args[0])
	if err != nil {
		return common.NewUserError("Unknown category", err)
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	expense, err := l.QuickAdd(commandContext(cmd), category, amount)
	if err != nil {
		return common.NewUserError("Could not add expense", err)
	}

	writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added #%d %s", expense.ID, describeExpense(expense, l.Settings()))))
	return nil
}
