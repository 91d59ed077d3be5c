package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/config"
	"github.com/Veraticus/spendwise/internal/transfer"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSON document written by 'spendwise export'",
		Long: `Load a previously exported document.

Each collection present in the document replaces the stored one; settings are
merged field by field. Collections missing from the document are kept. A file
that is not a valid export changes nothing. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	in := cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(config.ExpandPath(args[0]))
		if err != nil {
			return common.NewUserError("Could not open import file", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	result, err := transfer.Import(commandContext(cmd), l, in)
	if err != nil {
		return common.NewUserError("Invalid file format", err)
	}

	writeln(cmd.OutOrStdout(), cli.FormatSuccess(describeImport(result)))
	return nil
}

func describeImport(r transfer.Result) string {
	msg := fmt.Sprintf("Data imported successfully: %d expenses, %d goals", r.Expenses, r.Goals)
	if r.Budgets {
		msg += ", budgets"
	}
	if r.Settings {
		msg += ", settings"
	}
	return msg
}
