package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/transfer"
	"github.com/spf13/cobra"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create, list and restore backups",
		Long: `Backups are export documents kept in the backup directory
(backup.dir, default $HOME/.local/share/spendwise/backups).

A backup is named expense-tracker-backup-YYYY-MM-DD unless you pick a name.`,
	}

	cmd.AddCommand(backupCreateCmd())
	cmd.AddCommand(backupListCmd())
	cmd.AddCommand(backupRestoreCmd())
	cmd.AddCommand(backupDeleteCmd())

	return cmd
}

func backupCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Back up the whole ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			bm, err := initBackupManager()
			if err != nil {
				return err
			}
			l, cleanup, err := initLedger(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			meta, err := bm.Create(commandContext(cmd), l, name)
			if err != nil {
				if errors.Is(err, transfer.ErrBackupExists) {
					return common.NewUserError("A backup with that name already exists; pass a different name", err)
				}
				return fmt.Errorf("failed to create backup: %w", err)
			}

			writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s Created backup %s (%d expenses, %s)",
				cli.BackupIcon, meta.ID, meta.Expenses, formatBytes(meta.FileSize))))
			return nil
		},
	}
}

func backupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List backups, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bm, err := initBackupManager()
			if err != nil {
				return err
			}

			backups, err := bm.List(commandContext(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(backups) == 0 {
				writeln(out, cli.InfoStyle.Render("No backups found. Use 'spendwise backup create' to make one."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			writef(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("NAME"),
				cli.TableHeaderStyle.Render("CREATED"),
				cli.TableHeaderStyle.Render("EXPENSES"),
				cli.TableHeaderStyle.Render("SIZE"))
			for _, b := range backups {
				writef(w, "%s\t%s\t%d\t%s\n",
					b.ID, b.CreatedAt.Local().Format("2006-01-02 15:04"), b.Expenses, formatBytes(b.FileSize))
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to write table: %w", err)
			}
			return nil
		},
	}
}

func backupRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <name>",
		Short: "Replace the ledger with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skipConfirm, _ := cmd.Flags().GetBool("yes")

			bm, err := initBackupManager()
			if err != nil {
				return err
			}
			l, cleanup, err := initLedger(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()
			if !skipConfirm {
				confirmer := cli.NewConfirmer(cmd.InOrStdin(), out)
				ok, err := confirmer.Confirm(ctx, fmt.Sprintf("Restore %s over the current data?", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					writeln(out, cli.FormatInfo("Restore canceled"))
					return nil
				}
			}

			result, err := bm.Restore(ctx, l, args[0])
			if err != nil {
				return backupError(err)
			}
			writeln(out, cli.FormatSuccess(describeImport(result)))
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	return cmd
}

func backupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a backup",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bm, err := initBackupManager()
			if err != nil {
				return err
			}
			if err := bm.Delete(commandContext(cmd), args[0]); err != nil {
				return backupError(err)
			}
			writeln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted backup "+args[0]))
			return nil
		},
	}
}

func initBackupManager() (*transfer.BackupManager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return transfer.NewBackupManager(cfg.BackupDir)
}

func backupError(err error) error {
	switch {
	case errors.Is(err, transfer.ErrBackupNotFound):
		return common.NewUserError("No backup with that name; see 'spendwise backup list'", err)
	case errors.Is(err, transfer.ErrInvalidBackupName):
		return common.NewUserError("Backup names cannot contain path separators", err)
	case errors.Is(err, common.ErrInvalidDocument):
		return common.NewUserError("Backup file is not a valid export", err)
	}
	return err
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
