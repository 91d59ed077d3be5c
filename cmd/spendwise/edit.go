package main

import (
	"fmt"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/spf13/cobra"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an existing expense",
		Long: `Change one or more fields of an expense. Only the flags you pass are updated.

Examples:
  spendwise edit 1711000000000 --amount 300
  spendwise edit 1711000000000 --category travel --notes "airport cab"`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().StringP("amount", "a", "", "new amount")
	cmd.Flags().StringP("description", "d", "", "new description")
	cmd.Flags().StringP("category", "c", "", "new category")
	cmd.Flags().String("date", "", "new date as YYYY-MM-DD")
	cmd.Flags().StringP("method", "m", "", "new payment method")
	cmd.Flags().StringP("notes", "n", "", "new notes")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	patch, err := patchFromFlags(cmd)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return common.NewUserError("Nothing to change: pass at least one field flag", common.ErrInvalidInput)
	}

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	found, err := l.UpdateExpense(commandContext(cmd), id, patch)
	if err != nil {
		return common.NewUserError("Could not update expense", err)
	}
	if !found {
		writeln(out, cli.FormatInfo(fmt.Sprintf("No expense with id %d", id)))
		return nil
	}

	updated, _ := l.Expense(id)
	writeln(out, cli.FormatSuccess(fmt.Sprintf("Updated #%d %s", id, describeExpense(updated, l.Settings()))))
	return nil
}

func patchFromFlags(cmd *cobra.Command) (model.ExpensePatch, error) {
	var patch model.ExpensePatch
	flags := cmd.Flags()

	if flags.Changed("amount") {
		raw, _ := flags.GetString("amount")
		amount, err := parseAmount(raw)
		if err != nil {
			return patch, err
		}
		patch.Amount = &amount
	}
	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		patch.Description = &description
	}
	if flags.Changed("category") {
		raw, _ := flags.GetString("category")
		category, err := model.ParseCategory(raw)
		if err != nil {
			return patch, common.NewUserError("Unknown category", err)
		}
		patch.Category = &category
	}
	if flags.Changed("date") {
		raw, _ := flags.GetString("date")
		date, err := model.ParseDate(raw)
		if err != nil {
			return patch, common.NewUserError("Invalid date", err)
		}
		patch.Date = &date
	}
	if flags.Changed("method") {
		raw, _ := flags.GetString("method")
		method, err := model.ParsePaymentMethod(raw)
		if err != nil {
			return patch, common.NewUserError("Unknown payment method", err)
		}
		patch.PaymentMethod = &method
	}
	if flags.Changed("notes") {
		notes, _ := flags.GetString("notes")
		patch.Notes = &notes
	}

	if err := patch.Validate(); err != nil {
		return patch, common.NewUserError("Invalid change", err)
	}
	return patch, nil
}
