package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show application settings",
		Args:  cobra.NoArgs,
		RunE:  runSettings,
	}

	cmd.AddCommand(settingsSetCmd())

	return cmd
}

func settingsSetCmd() *cobra.Command {
	keys := make([]string, 0, len(model.SettingKeys()))
	for _, k := range model.SettingKeys() {
		keys = append(keys, string(k))
	}

	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: fmt.Sprintf(`Change one setting. Keys: %s.

Examples:
  spendwise settings set currency USD
  spendwise settings set monthlyBudget 60000
  spendwise settings set alertThreshold 90
  spendwise settings set notifications false`, strings.Join(keys, ", ")),
		Args:      cobra.ExactArgs(2),
		ValidArgs: keys,
		RunE:      runSettingsSet,
	}
}

func runSettings(cmd *cobra.Command, _ []string) error {
	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	settings := l.Settings()
	out := cmd.OutOrStdout()

	writeln(out, cli.TitleStyle.Render("Settings"))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, key := range model.SettingKeys() {
		writef(w, "%s\t%s\n", cli.SubtleStyle.Render(string(key)), settings.Value(key))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, err := model.ParseSettingKey(args[0])
	if err != nil {
		return common.NewUserError("Unknown setting", err)
	}

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := l.UpdateSetting(commandContext(cmd), key, args[1]); err != nil {
		return common.NewUserError("Could not change setting", err)
	}

	writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s = %s", key, l.Settings().Value(key))))
	return nil
}
