// Package ledger holds the expense ledger and its sibling collections,
// mirrored to durable document storage.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/service"
)

// Change identifies which collection a mutation touched.
type Change string

// Change kinds passed to the change hook.
const (
	ChangeExpenses Change = "expenses"
	ChangeBudgets  Change = "budgets"
	ChangeSettings Change = "settings"
	ChangeAll      Change = "all"
)

// AffectsSpend reports whether the change can move monthly spend or the budget
// it is measured against.
func (c Change) AffectsSpend() bool {
	return c == ChangeExpenses || c == ChangeSettings || c == ChangeAll
}

// Ledger owns the four persisted collections. It is not safe for concurrent use.
type Ledger struct {
	store    service.DocumentStore
	now      func() time.Time
	onChange func(Change)
	budgets  model.Budgets
	expenses []model.Expense
	goals    []model.Goal
	settings model.Settings
	lastID   int64
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for ids, creation times and today's date.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithOnChange registers a hook called after every successful mutation.
func WithOnChange(fn func(Change)) Option {
	return func(l *Ledger) {
		l.onChange = fn
	}
}

// New loads every collection from store. A missing or unreadable document
// falls back to that collection's default without touching the others.
func New(ctx context.Context, store service.DocumentStore, opts ...Option) (*Ledger, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store", common.ErrInvalidInput)
	}

	l := &Ledger{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	var expenses []model.Expense
	if err := l.load(ctx, service.KeyExpenses, &expenses); err != nil {
		return nil, err
	}
	budgets := model.DefaultBudgets()
	var storedBudgets model.Budgets
	if err := l.load(ctx, service.KeyBudgets, &storedBudgets); err != nil {
		return nil, err
	}
	if storedBudgets != nil {
		budgets = seedBudgets(storedBudgets)
	}
	var goals []model.Goal
	if err := l.load(ctx, service.KeyGoals, &goals); err != nil {
		return nil, err
	}
	settings := model.DefaultSettings()
	if err := l.load(ctx, service.KeySettings, &settings); err != nil {
		return nil, err
	}

	l.expenses = nonNilExpenses(expenses)
	l.budgets = budgets
	l.goals = nonNilGoals(goals)
	l.settings = settings
	l.lastID = maxID(l.expenses)

	slog.Debug("Loaded ledger",
		"expenses", len(l.expenses),
		"goals", len(l.goals))

	return l, nil
}

// load decodes the document stored under key into dst. Absent documents
// leave dst untouched; corrupt ones are logged and reset dst to its zero value.
func (l *Ledger) load(ctx context.Context, key string, dst any) error {
	data, err := l.store.Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		slog.Warn("Stored document is unreadable, using defaults",
			"key", key,
			"error", err)
		resetToDefault(key, dst)
	}
	return nil
}

func resetToDefault(key string, dst any) {
	switch v := dst.(type) {
	case *[]model.Expense:
		*v = nil
	case *model.Budgets:
		*v = nil
	case *[]model.Goal:
		*v = nil
	case *model.Settings:
		*v = model.DefaultSettings()
	default:
		slog.Warn("No default for document", "key", key)
	}
}

func (l *Ledger) persist(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := l.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (l *Ledger) notify(c Change) {
	if l.onChange != nil {
		l.onChange(c)
	}
}

// Now returns the ledger's current time.
func (l *Ledger) Now() time.Time {
	return l.now()
}

// AddExpense records a new expense at the head of the ledger.
func (l *Ledger) AddExpense(ctx context.Context, draft model.ExpenseDraft) (model.Expense, error) {
	if err := draft.Validate(); err != nil {
		return model.Expense{}, err
	}

	now := l.now()
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}

	method := draft.PaymentMethod
	if method == "" {
		method = model.DefaultPaymentMethod
	}

	expense := model.Expense{
		ID:            id,
		Amount:        draft.Amount,
		Description:   draft.Description,
		Category:      draft.Category,
		Date:          draft.Date,
		PaymentMethod: method,
		Notes:         draft.Notes,
		CreatedAt:     now,
	}

	next := make([]model.Expense, 0, len(l.expenses)+1)
	next = append(next, expense)
	next = append(next, l.expenses...)
	if err := l.persist(ctx, service.KeyExpenses, next); err != nil {
		return model.Expense{}, err
	}

	l.expenses = next
	l.lastID = id
	slog.Debug("Added expense",
		"id", id,
		"amount", expense.Amount,
		"category", expense.Category)
	l.notify(ChangeExpenses)

	return expense, nil
}

// QuickAdd records an expense for today with a generated description.
func (l *Ledger) QuickAdd(ctx context.Context, category model.Category, amount float64) (model.Expense, error) {
	return l.AddExpense(ctx, model.ExpenseDraft{
		Amount:        amount,
		Description:   "Quick " + category.DisplayName(),
		Category:      category,
		Date:          model.DateOf(l.now()),
		PaymentMethod: model.PaymentCard,
	})
}

// UpdateExpense merges patch onto the expense with the given id.
// It reports false without error when no such expense exists.
func (l *Ledger) UpdateExpense(ctx context.Context, id int64, patch model.ExpensePatch) (bool, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	if err := patch.Validate(); err != nil {
		return false, err
	}

	next := slices.Clone(l.expenses)
	next[idx] = patch.ApplyTo(next[idx])
	if err := l.persist(ctx, service.KeyExpenses, next); err != nil {
		return false, err
	}

	l.expenses = next
	slog.Debug("Updated expense", "id", id)
	l.notify(ChangeExpenses)
	return true, nil
}

// RemoveExpense deletes the expense with the given id.
// It reports false without error when no such expense exists.
func (l *Ledger) RemoveExpense(ctx context.Context, id int64) (bool, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(l.expenses), idx, idx+1)
	if err := l.persist(ctx, service.KeyExpenses, next); err != nil {
		return false, err
	}

	l.expenses = next
	slog.Debug("Removed expense", "id", id)
	l.notify(ChangeExpenses)
	return true, nil
}

// SetBudget overrides the monthly limit of one category.
func (l *Ledger) SetBudget(ctx context.Context, category model.Category, limit float64) error {
	if !category.IsKnown() {
		return fmt.Errorf("%w: unknown category %q", common.ErrInvalidInput, category)
	}
	if limit < 0 {
		return fmt.Errorf("%w: budget must not be negative", common.ErrInvalidInput)
	}

	next := l.budgets.Clone()
	next[category] = limit
	if err := l.persist(ctx, service.KeyBudgets, next); err != nil {
		return err
	}

	l.budgets = next
	slog.Debug("Set budget", "category", category, "limit", limit)
	l.notify(ChangeBudgets)
	return nil
}

// Expense returns the expense with the given id.
func (l *Ledger) Expense(id int64) (model.Expense, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		return model.Expense{}, false
	}
	return l.expenses[idx], true
}

// Expenses returns a copy of the ledger, newest first.
func (l *Ledger) Expenses() []model.Expense {
	return slices.Clone(l.expenses)
}

// Budgets returns a copy of the category budgets.
func (l *Ledger) Budgets() model.Budgets {
	return l.budgets.Clone()
}

// Goals returns a copy of the goals.
func (l *Ledger) Goals() []model.Goal {
	return slices.Clone(l.goals)
}

// Settings returns the current settings.
func (l *Ledger) Settings() model.Settings {
	return l.settings
}

func (l *Ledger) indexOf(id int64) int {
	return slices.IndexFunc(l.expenses, func(e model.Expense) bool {
		return e.ID == id
	})
}

// seedBudgets fills any known category missing from b with its default limit.
func seedBudgets(b model.Budgets) model.Budgets {
	out := b.Clone()
	for cat, limit := range model.DefaultBudgets() {
		if _, ok := out[cat]; !ok {
			out[cat] = limit
		}
	}
	return out
}

func nonNilExpenses(e []model.Expense) []model.Expense {
	if e == nil {
		return []model.Expense{}
	}
	return e
}

func nonNilGoals(g []model.Goal) []model.Goal {
	if g == nil {
		return []model.Goal{}
	}
	return g
}

func maxID(expenses []model.Expense) int64 {
	var highest int64
	for _, e := range expenses {
		if e.ID > highest {
			highest = e.ID
		}
	}
	return highest
}
