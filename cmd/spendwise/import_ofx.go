package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/config"
	"github.com/Veraticus/spendwise/internal/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const parseWorkers = 4

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Import debits from OFX/QFX bank or card statements",
		Long: `Import spending from OFX or QFX files exported from your bank.

Only debits are imported. Each one is recorded as an expense whose notes
reference the statement transaction, so importing the same file twice adds
nothing new.

Examples:
  # Import single file
  spendwise import-ofx ~/Downloads/hdfc_march.qfx

  # Import all QFX files in a directory
  spendwise import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	l, cleanup, err := initLedger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := commandContext(cmd)
	entries, err := parseStatements(ctx, ofx.NewParser(), files)
	if err != nil {
		return err
	}

	fresh, skipped := ofx.SkipImported(l.Expenses(), entries)
	if skipped > 0 {
		writeln(out, cli.FormatInfo(fmt.Sprintf("Skipping %d already imported transactions", skipped)))
	}
	if len(fresh) == 0 {
		writeln(out, cli.FormatInfo("Nothing new to import"))
		return nil
	}

	settings := l.Settings()
	if dryRun {
		writeln(out, cli.TitleStyle.Render("Would import "+plural(len(fresh), "expense")))
		for _, entry := range fresh {
			d := entry.Draft
			writef(out, "  %s  %-30s %s  %s\n", d.Date, d.Description, settings.FormatAmount(d.Amount), d.Category.DisplayName())
		}
		return nil
	}

	handler := cli.NewInterruptHandler(out, "Import", "Expenses added so far were saved; run the import again to add the rest.")
	ctx = handler.HandleInterrupts(ctx)
	defer handler.Stop()

	bar := progressbar.NewOptions(len(fresh),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing expenses...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			writeln(cmd.ErrOrStderr(), "")
		}),
	)

	added := 0
	for _, entry := range fresh {
		if ctx.Err() != nil {
			break
		}
		if _, err := l.AddExpense(ctx, entry.Draft); err != nil {
			if errors.Is(err, common.ErrInvalidInput) {
				slog.Warn("Skipping invalid transaction", "ref", entry.Ref(), "error", err)
				continue
			}
			return fmt.Errorf("failed to save imported expense after %d of %d: %w", added, len(fresh), err)
		}
		added++
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	if handler.WasInterrupted() {
		writeln(out, cli.FormatWarning(fmt.Sprintf("Imported %d of %d expenses", added, len(fresh))))
		return nil
	}
	writeln(out, cli.FormatSuccess("Imported "+plural(added, "expense")))
	return nil
}

// parseStatements parses files concurrently and returns their debits in
// argument order. Unreadable or malformed files are logged and skipped.
func parseStatements(ctx context.Context, parser *ofx.Parser, files []string) ([]ofx.Entry, error) {
	perFile := make([][]ofx.Entry, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parseWorkers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				common.LogError(err, "Failed to open file", common.Fields{"file": path})
				return nil
			}
			defer func() { _ = f.Close() }()

			found, err := parser.ParseFile(ctx, f)
			if err != nil {
				common.LogError(err, "Failed to parse OFX file", common.Fields{"file": path})
				return nil
			}
			slog.Info("Processed file", "file", filepath.Base(path), "debits", len(found))
			perFile[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []ofx.Entry
	for _, found := range perFile {
		entries = append(entries, found...)
	}
	return entries, nil
}

// expandFiles resolves globs and plain paths into the files to import.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		pattern = config.ExpandPath(pattern)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import", common.ErrNotFound)
	}
	return files, nil
}
