package main

import (
	"fmt"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Long: `Record a new expense. The date defaults to today and the payment method to card.

Examples:
  spendwise add --amount 250 --description Lunch --category food
  spendwise add -a 1200 -d "Electricity bill" -c bills --method netbanking --date 2024-03-05`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}

	cmd.Flags().StringP("amount", "a", "", "amount spent (required)")
	cmd.Flags().StringP("description", "d", "", "what the money was spent on (required)")
	cmd.Flags().StringP("category", "c", string(model.CategoryFood), "category (food, transport, entertainment, bills, shopping, healthcare, education, travel, other)")
	cmd.Flags().String("date", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringP("method", "m", string(model.DefaultPaymentMethod), "payment method (cash, card, upi, netbanking)")
	cmd.Flags().StringP("notes", "n", "", "free-form notes")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	draft, err := draftFromFlags(cmd)
	if err != nil {
		return err
	}

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if draft.Date == "" {
		draft.Date = model.DateOf(l.Now())
	}

	expense, err := l.AddExpense(commandContext(cmd), draft)
	if err != nil {
		return common.NewUserError("Could not add expense", err)
	}

	writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added #%d %s", expense.ID, describeExpense(expense, l.Settings()))))
	return nil
}

func draftFromFlags(cmd *cobra.Command) (model.ExpenseDraft, error) {
	rawAmount, _ := cmd.Flags().GetString("amount")
	description, _ := cmd.Flags().GetString("description")
	rawCategory, _ := cmd.Flags().GetString("category")
	rawDate, _ := cmd.Flags().GetString("date")
	rawMethod, _ := cmd.Flags().GetString("method")
	notes, _ := cmd.Flags().GetString("notes")

	amount, err := parseAmount(rawAmount)
	if err != nil {
		return model.ExpenseDraft{}, err
	}
	category, err := model.ParseCategory(rawCategory)
	if err != nil {
		return model.ExpenseDraft{}, common.NewUserError("Unknown category", err)
	}
	method, err := model.ParsePaymentMethod(rawMethod)
	if err != nil {
		return model.ExpenseDraft{}, common.NewUserError("Unknown payment method", err)
	}

	draft := model.ExpenseDraft{
		Amount:        amount,
		Description:   description,
		Category:      category,
		PaymentMethod: method,
		Notes:         notes,
	}
	if rawDate != "" {
		date, err := model.ParseDate(rawDate)
		if err != nil {
			return model.ExpenseDraft{}, common.NewUserError("Invalid date", err)
		}
		draft.Date = date
	}
	return draft, nil
}
