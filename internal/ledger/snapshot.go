package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/service"
)

// Snapshot is a detached copy of every collection.
type Snapshot struct {
	Budgets  model.Budgets
	Expenses []model.Expense
	Goals    []model.Goal
	Settings model.Settings
}

// Snapshot copies the current state.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Expenses: l.Expenses(),
		Budgets:  l.Budgets(),
		Goals:    l.Goals(),
		Settings: l.settings,
	}
}

// Restore replaces every collection with snap and persists all four in one write.
func (l *Ledger) Restore(ctx context.Context, snap Snapshot) error {
	expenses := nonNilExpenses(slices.Clone(snap.Expenses))
	goals := nonNilGoals(slices.Clone(snap.Goals))
	budgets := model.DefaultBudgets()
	if snap.Budgets != nil {
		budgets = seedBudgets(snap.Budgets)
	}

	docs := make(map[string][]byte, 4)
	values := map[string]any{
		service.KeyExpenses: expenses,
		service.KeyBudgets:  budgets,
		service.KeyGoals:    goals,
		service.KeySettings: snap.Settings,
	}
	for key, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		docs[key] = data
	}
	if err := l.store.PutAll(ctx, docs); err != nil {
		return fmt.Errorf("failed to save restored state: %w", err)
	}

	l.expenses = expenses
	l.budgets = budgets
	l.goals = goals
	l.settings = snap.Settings
	if id := maxID(expenses); id > l.lastID {
		l.lastID = id
	}

	slog.Info("Restored ledger",
		"expenses", len(expenses),
		"goals", len(goals))
	l.notify(ChangeAll)
	return nil
}

// Clear deletes every stored collection and resets to defaults.
func (l *Ledger) Clear(ctx context.Context) error {
	for _, key := range service.CollectionKeys() {
		if err := l.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}

	l.expenses = []model.Expense{}
	l.budgets = model.DefaultBudgets()
	l.goals = []model.Goal{}
	l.settings = model.DefaultSettings()

	slog.Info("Cleared all data")
	l.notify(ChangeAll)
	return nil
}
