package ledger

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/service"
	"github.com/Veraticus/spendwise/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.Open(context.Background(), storage.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestLedger(t *testing.T, store service.DocumentStore, opts ...Option) *Ledger {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	l, err := New(context.Background(), store, opts...)
	require.NoError(t, err)
	return l
}

// failingStore wraps a real store and fails writes on demand.
type failingStore struct {
	service.DocumentStore
	failWrites bool
}

var errDiskFull = errors.New("disk full")

func (f *failingStore) Put(ctx context.Context, key string, value []byte) error {
	if f.failWrites {
		return errDiskFull
	}
	return f.DocumentStore.Put(ctx, key, value)
}

func (f *failingStore) PutAll(ctx context.Context, docs map[string][]byte) error {
	if f.failWrites {
		return errDiskFull
	}
	return f.DocumentStore.PutAll(ctx, docs)
}

func lunch() model.ExpenseDraft {
	return model.ExpenseDraft{
		Amount:      250,
		Description: "Lunch",
		Category:    model.CategoryFood,
		Date:        "2024-06-15",
	}
}

func TestNew_Defaults(t *testing.T) {
	l := newTestLedger(t, newTestStore(t))

	assert.Empty(t, l.Expenses())
	assert.NotNil(t, l.Expenses())
	assert.Empty(t, l.Goals())
	assert.Equal(t, model.DefaultBudgets(), l.Budgets())
	assert.Equal(t, model.DefaultSettings(), l.Settings())
}

func TestNew_CorruptDocumentOnlyResetsThatCollection(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Put(ctx, service.KeyBudgets, []byte(`{not json`)))
	require.NoError(t, store.Put(ctx, service.KeyExpenses, []byte(`[{"id":7,"amount":99,"description":"Tea","category":"food","date":"2024-06-01"}]`)))
	require.NoError(t, store.Put(ctx, service.KeySettings, []byte(`"garbage"`)))

	l := newTestLedger(t, store)

	assert.Equal(t, model.DefaultBudgets(), l.Budgets())
	assert.Equal(t, model.DefaultSettings(), l.Settings())
	require.Len(t, l.Expenses(), 1)
	assert.Equal(t, int64(7), l.Expenses()[0].ID)
}

func TestNew_PartialSettingsKeepDefaults(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Put(ctx, service.KeySettings, []byte(`{"currency":"USD"}`)))
	require.NoError(t, store.Put(ctx, service.KeyBudgets, []byte(`{"food":500}`)))

	l := newTestLedger(t, store)

	s := l.Settings()
	assert.Equal(t, model.CurrencyUSD, s.Currency)
	assert.Equal(t, 50000.0, s.MonthlyBudget)
	assert.Equal(t, 80, s.AlertThreshold)

	b := l.Budgets()
	assert.Equal(t, 500.0, b[model.CategoryFood])
	assert.Equal(t, 5000.0, b[model.CategoryTransport])
}

func TestNew_StorageFailurePropagates(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Close())

	_, err := New(context.Background(), store)
	assert.Error(t, err)
}

func TestAddExpense(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, newTestStore(t))

	first, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)
	second, err := l.AddExpense(ctx, model.ExpenseDraft{
		Amount:        80,
		Description:   "Bus",
		Category:      model.CategoryTransport,
		Date:          "2024-06-15",
		PaymentMethod: model.PaymentUPI,
	})
	require.NoError(t, err)

	assert.Equal(t, fixedNow.UnixMilli(), first.ID)
	assert.Equal(t, first.ID+1, second.ID, "same millisecond must not collide")
	assert.Equal(t, model.PaymentCard, first.PaymentMethod)
	assert.Equal(t, model.PaymentUPI, second.PaymentMethod)
	assert.Equal(t, fixedNow, first.CreatedAt)

	expenses := l.Expenses()
	require.Len(t, expenses, 2)
	assert.Equal(t, second.ID, expenses[0].ID, "newest first")
	assert.Equal(t, first.ID, expenses[1].ID)
}

func TestAddExpense_IDsNeverCollideWithLoadedRecords(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	future := fixedNow.Add(time.Hour).UnixMilli()
	require.NoError(t, store.Put(ctx, service.KeyExpenses,
		[]byte(`[{"id":`+strconv.FormatInt(future, 10)+`,"amount":1,"description":"x","category":"other","date":"2024-06-15"}]`)))

	l := newTestLedger(t, store)
	e, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)
	assert.Equal(t, future+1, e.ID)
}

func TestAddExpense_InvalidDraft(t *testing.T) {
	l := newTestLedger(t, newTestStore(t))

	draft := lunch()
	draft.Amount = -5
	_, err := l.AddExpense(context.Background(), draft)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Empty(t, l.Expenses())
}

func TestQuickAdd(t *testing.T) {
	l := newTestLedger(t, newTestStore(t))

	e, err := l.QuickAdd(context.Background(), model.CategoryTransport, 120)
	require.NoError(t, err)

	assert.Equal(t, "Quick Transportation", e.Description)
	assert.Equal(t, model.Date("2024-06-15"), e.Date)
	assert.Equal(t, model.PaymentCard, e.PaymentMethod)
	assert.Empty(t, e.Notes)
	assert.Equal(t, 120.0, e.Amount)
}

func TestUpdateExpense(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, newTestStore(t))
	e, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)

	amount := 300.0
	notes := "with dessert"
	ok, err := l.UpdateExpense(ctx, e.ID, model.ExpensePatch{Amount: &amount, Notes: &notes})
	require.NoError(t, err)
	assert.True(t, ok)

	got, found := l.Expense(e.ID)
	require.True(t, found)
	assert.Equal(t, 300.0, got.Amount)
	assert.Equal(t, "with dessert", got.Notes)
	assert.Equal(t, "Lunch", got.Description)
	assert.Equal(t, e.CreatedAt, got.CreatedAt)
}

func TestUpdateExpense_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	calls := 0
	l := newTestLedger(t, newTestStore(t), WithOnChange(func(Change) { calls++ }))

	amount := 1.0
	ok, err := l.UpdateExpense(ctx, 42, model.ExpensePatch{Amount: &amount})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, calls)
}

func TestRemoveExpense(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, newTestStore(t))
	e, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)

	ok, err := l.RemoveExpense(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, l.Expenses())

	ok, err = l.RemoveExpense(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMutations_WriteFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{DocumentStore: newTestStore(t)}
	l := newTestLedger(t, store)
	e, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)

	store.failWrites = true

	_, err = l.AddExpense(ctx, lunch())
	assert.ErrorIs(t, err, errDiskFull)
	ok, err := l.RemoveExpense(ctx, e.ID)
	assert.ErrorIs(t, err, errDiskFull)
	assert.False(t, ok)
	assert.ErrorIs(t, l.SetMonthlyBudget(ctx, 1), errDiskFull)
	assert.ErrorIs(t, l.SetBudget(ctx, model.CategoryFood, 1), errDiskFull)
	assert.ErrorIs(t, l.Restore(ctx, Snapshot{}), errDiskFull)

	require.Len(t, l.Expenses(), 1)
	assert.Equal(t, 50000.0, l.Settings().MonthlyBudget)
	assert.Equal(t, 15000.0, l.Budgets()[model.CategoryFood])
}

func TestUpdateSetting(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	l := newTestLedger(t, store)

	require.NoError(t, l.UpdateSetting(ctx, model.SettingCurrency, "eur"))
	require.NoError(t, l.SetAlertThreshold(ctx, 90))
	require.NoError(t, l.SetNotifications(ctx, false))
	require.NoError(t, l.SetTheme(ctx, model.ThemeDark))

	err := l.UpdateSetting(ctx, model.SettingMonthlyBudget, "lots")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.ErrorIs(t, l.SetMonthlyBudget(ctx, -1), common.ErrInvalidInput)

	reloaded := newTestLedger(t, store)
	s := reloaded.Settings()
	assert.Equal(t, model.CurrencyEUR, s.Currency)
	assert.Equal(t, 90, s.AlertThreshold)
	assert.False(t, s.Notifications)
	assert.Equal(t, model.ThemeDark, s.Theme)
	assert.Equal(t, 50000.0, s.MonthlyBudget)
}

func TestSetBudget(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	l := newTestLedger(t, store)

	require.NoError(t, l.SetBudget(ctx, model.CategoryTravel, 9000))
	assert.ErrorIs(t, l.SetBudget(ctx, model.Category("pets"), 10), common.ErrInvalidInput)
	assert.ErrorIs(t, l.SetBudget(ctx, model.CategoryFood, -10), common.ErrInvalidInput)

	assert.Equal(t, 9000.0, newTestLedger(t, store).Budgets()[model.CategoryTravel])
}

func TestGetters_ReturnCopies(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, newTestStore(t))
	_, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)

	expenses := l.Expenses()
	expenses[0].Amount = 1
	budgets := l.Budgets()
	budgets[model.CategoryFood] = 1

	assert.Equal(t, 250.0, l.Expenses()[0].Amount)
	assert.Equal(t, 15000.0, l.Budgets()[model.CategoryFood])
}

func TestReplay_ReloadEqualsLiveState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	l := newTestLedger(t, store)

	a, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)
	b, err := l.QuickAdd(ctx, model.CategoryBills, 1200)
	require.NoError(t, err)
	c, err := l.AddExpense(ctx, model.ExpenseDraft{Amount: 40, Description: "Coffee", Category: model.CategoryFood, Date: "2024-06-14"})
	require.NoError(t, err)

	desc := "Electricity"
	_, err = l.UpdateExpense(ctx, b.ID, model.ExpensePatch{Description: &desc})
	require.NoError(t, err)
	_, err = l.RemoveExpense(ctx, a.ID)
	require.NoError(t, err)

	reloaded := newTestLedger(t, store)
	assert.Equal(t, l.Expenses(), reloaded.Expenses())

	got := reloaded.Expenses()
	require.Len(t, got, 2)
	assert.Equal(t, c.ID, got[0].ID)
	assert.Equal(t, "Electricity", got[1].Description)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	var changes []Change
	l := newTestLedger(t, store, WithOnChange(func(c Change) { changes = append(changes, c) }))

	snap := Snapshot{
		Expenses: []model.Expense{{ID: 5, Amount: 10, Description: "Pen", Category: model.CategoryShopping, Date: "2024-06-01"}},
		Budgets:  model.Budgets{model.CategoryFood: 100},
		Goals:    []model.Goal{{Title: "Bike", TargetAmount: 20000, CurrentAmount: 5000, TargetDate: "2024-12-31"}},
		Settings: model.Settings{Currency: model.CurrencyGBP, Theme: model.ThemeLight, MonthlyBudget: 1000, AlertThreshold: 75},
	}
	require.NoError(t, l.Restore(ctx, snap))
	assert.Equal(t, []Change{ChangeAll}, changes)

	reloaded := newTestLedger(t, store)
	assert.Equal(t, snap.Expenses, reloaded.Expenses())
	assert.Equal(t, snap.Goals, reloaded.Goals())
	assert.Equal(t, snap.Settings, reloaded.Settings())
	assert.Equal(t, 100.0, reloaded.Budgets()[model.CategoryFood])
	assert.Len(t, reloaded.Budgets(), len(model.AllCategories()))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, service.CollectionKeys(), keys)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	l := newTestLedger(t, store)
	_, err := l.AddExpense(ctx, lunch())
	require.NoError(t, err)
	require.NoError(t, l.SetCurrency(ctx, model.CurrencyUSD))

	require.NoError(t, l.Clear(ctx))

	assert.Empty(t, l.Expenses())
	assert.Equal(t, model.DefaultSettings(), l.Settings())
	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestChange_AffectsSpend(t *testing.T) {
	assert.True(t, ChangeExpenses.AffectsSpend())
	assert.True(t, ChangeAll.AffectsSpend())
	assert.True(t, ChangeSettings.AffectsSpend())
	assert.False(t, ChangeBudgets.AffectsSpend())
}
