// Package testutil provides test fixtures for packages that sit on top of the ledger.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/spendwise/internal/ledger"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/storage"
)

// TestLedger bundles an in-memory ledger with the store behind it.
type TestLedger struct {
	Ledger *ledger.Ledger
	Store  *storage.SQLiteStorage
	t      *testing.T
}

// SetupLedger creates a ledger over an in-memory database whose clock is
// frozen at now. The database is closed when the test finishes.
//
// Example:
//
//	tl := testutil.SetupLedger(t, now)
//	tl.MustAdd(testutil.Expense(250, model.CategoryFood, "2024-03-20"))
func SetupLedger(t *testing.T, now time.Time, opts ...ledger.Option) *TestLedger {
	t.Helper()

	ctx := context.Background()
	store, err := storage.Open(ctx, storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	opts = append([]ledger.Option{ledger.WithClock(func() time.Time { return now })}, opts...)
	l, err := ledger.New(ctx, store, opts...)
	if err != nil {
		t.Fatalf("failed to load ledger: %v", err)
	}

	return &TestLedger{Ledger: l, Store: store, t: t}
}

// MustAdd adds each draft in order and returns the stored expenses.
func (tl *TestLedger) MustAdd(drafts ...model.ExpenseDraft) []model.Expense {
	tl.t.Helper()
	added := make([]model.Expense, 0, len(drafts))
	for _, d := range drafts {
		e, err := tl.Ledger.AddExpense(context.Background(), d)
		if err != nil {
			tl.t.Fatalf("failed to add expense %q: %v", d.Description, err)
		}
		added = append(added, e)
	}
	return added
}

// MustSetBudget sets a category budget or fails the test.
func (tl *TestLedger) MustSetBudget(category model.Category, limit float64) {
	tl.t.Helper()
	if err := tl.Ledger.SetBudget(context.Background(), category, limit); err != nil {
		tl.t.Fatalf("failed to set budget for %s: %v", category, err)
	}
}

// Expense returns a valid draft described by its category.
func Expense(amount float64, category model.Category, date model.Date) model.ExpenseDraft {
	return model.ExpenseDraft{
		Amount:      amount,
		Description: category.DisplayName(),
		Category:    category,
		Date:        date,
	}
}
