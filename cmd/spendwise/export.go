package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/config"
	"github.com/Veraticus/spendwise/internal/transfer"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every expense, budget, goal and setting as JSON",
		Long: `Write the whole ledger to a JSON document that 'spendwise import' can read back.

The file is named expense-tracker-backup-YYYY-MM-DD.json in the current
directory unless --output is given. Use --output - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "", "output file, or - for stdout")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	doc := transfer.Export(l, l.Now())

	if output == "-" {
		return transfer.Write(cmd.OutOrStdout(), doc)
	}
	if output == "" {
		output = transfer.Filename(l.Now())
	}
	output = config.ExpandPath(output)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := transfer.Write(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}

	slog.Debug("Exported ledger", "path", output, "expenses", len(doc.Expenses))
	writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %s to %s", plural(len(doc.Expenses), "expense"), output)))
	return nil
}
