package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/filter"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses, newest first",
		Long: `List expenses matching every filter you pass.

Search matches the description or the category name, case-insensitively.
Dates are inclusive. Amount ranges look like 500-1000, 500- or 10000+.

Examples:
  spendwise list --category food --from 2024-03-01
  spendwise list --search uber --amount 100-500`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	addFilterFlags(cmd)
	cmd.Flags().Int("limit", 0, "show at most this many expenses (0 for all)")

	return cmd
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "text to look for in description or category")
	cmd.Flags().StringP("category", "c", "", "only this category")
	cmd.Flags().String("from", "", "earliest date, YYYY-MM-DD")
	cmd.Flags().String("to", "", "latest date, YYYY-MM-DD")
	cmd.Flags().String("amount", "", "amount range such as 500-1000")
}

func filterFromFlags(cmd *cobra.Command) (filter.Spec, error) {
	search, _ := cmd.Flags().GetString("search")
	rawCategory, _ := cmd.Flags().GetString("category")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	amount, _ := cmd.Flags().GetString("amount")

	spec := filter.Spec{
		Search:   search,
		DateFrom: model.Date(from),
		DateTo:   model.Date(to),
		Amount:   amount,
	}
	if rawCategory != "" {
		category, err := model.ParseCategory(rawCategory)
		if err != nil {
			return spec, common.NewUserError("Unknown category", err)
		}
		spec.Category = category
	}
	return spec, nil
}

func runList(cmd *cobra.Command, _ []string) error {
	spec, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	settings := l.Settings()
	expenses := filter.Apply(l.Expenses(), spec)
	if len(expenses) == 0 {
		if spec.IsEmpty() {
			writeln(out, cli.InfoStyle.Render("No expenses yet. Use 'spendwise add' to record one."))
		} else {
			writeln(out, cli.InfoStyle.Render("No expenses match those filters."))
		}
		return nil
	}

	shown := expenses
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	writef(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("DATE"),
		cli.TableHeaderStyle.Render("DESCRIPTION"),
		cli.TableHeaderStyle.Render("CATEGORY"),
		cli.TableHeaderStyle.Render("AMOUNT"),
		cli.TableHeaderStyle.Render("METHOD"))
	for _, e := range shown {
		writef(w, "%d\t%s\t%s\t%s %s\t%s\t%s\n",
			e.ID,
			e.Date.Format(),
			e.Description,
			e.Category.Icon(), e.Category.DisplayName(),
			settings.FormatAmount(e.Amount),
			e.PaymentMethod.Label())
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	stats := filter.Stats(expenses)
	writeln(out, "")
	writeln(out, cli.SubtleStyle.Render(fmt.Sprintf("%s · total %s · average %s",
		plural(stats.Count, "expense"), settings.FormatAmount(stats.Total), settings.FormatAmount(stats.Average))))
	if len(shown) < len(expenses) {
		writeln(out, cli.SubtleStyle.Render(fmt.Sprintf("showing the newest %d", len(shown))))
	}
	return nil
}

// describeExpense renders the one-line summary used in command output.
func describeExpense(e model.Expense, settings model.Settings) string {
	return fmt.Sprintf("%s %s %s on %s (%s)",
		e.Category.Icon(), e.Description, settings.FormatAmount(e.Amount), e.Date.Format(), e.Category.DisplayName())
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
