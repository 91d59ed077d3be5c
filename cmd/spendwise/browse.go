package main

import (
	"github.com/Veraticus/spendwise/internal/tui"
	"github.com/Veraticus/spendwise/internal/tui/themes"
	"github.com/spf13/cobra"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse and filter expenses interactively",
		Long: `Open a full-screen expense browser. Filters update the list as you type.

Press / to search, f and t for the date range, a for an amount range,
c to cycle categories, x to clear filters and ? for all keys.`,
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}

	addFilterFlags(cmd)

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	spec, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(commandContext(cmd), l,
		tui.WithTheme(themes.For(l.Settings().Theme)),
		tui.WithFilter(spec),
	)
}
