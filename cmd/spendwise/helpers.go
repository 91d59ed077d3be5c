package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/Veraticus/spendwise/internal/alert"
	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/config"
	"github.com/Veraticus/spendwise/internal/ledger"
	"github.com/Veraticus/spendwise/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// clock is the time source handed to the ledger.
var clock = time.Now

// loadConfig resolves the configuration from viper.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("Invalid configuration", err)
	}
	return cfg, nil
}

// initLedger opens the database and loads the ledger. Spend-affecting
// changes re-check the monthly budget alert; the warning is printed at most
// once per command.
func initLedger(cmd *cobra.Command) (*ledger.Ledger, func(), error) {
	ctx := commandContext(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	cleanup := func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}

	var (
		l      *ledger.Ledger
		warned bool
	)
	out := cmd.OutOrStdout()
	l, err = ledger.New(ctx, store,
		ledger.WithClock(clock),
		ledger.WithOnChange(func(change ledger.Change) {
			if l == nil || warned || !change.AffectsSpend() {
				return
			}
			warned = checkBudget(out, l)
		}),
	)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	return l, cleanup, nil
}

// checkBudget prints the budget warning when it fires and reports whether it did.
func checkBudget(w io.Writer, l *ledger.Ledger) bool {
	settings := l.Settings()
	if !settings.Notifications {
		return false
	}
	decision := alert.Evaluate(l.Expenses(), settings, l.Now())
	if !decision.Fire {
		return false
	}
	writeln(w, cli.FormatWarning(decision.Message()))
	return true
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("Invalid expense id %q", s), common.ErrInvalidInput)
	}
	return id, nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, common.NewUserError(fmt.Sprintf("Amount %q must be a non-negative number", s), common.ErrInvalidInput)
	}
	return v, nil
}

func writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

func writeln(w io.Writer, s string) {
	if _, err := fmt.Fprintln(w, s); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}
