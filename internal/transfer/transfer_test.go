package transfer

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/ledger"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func newLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	return testutil.SetupLedger(t, now).Ledger
}

func populated(t *testing.T) *ledger.Ledger {
	t.Helper()
	ctx := context.Background()
	l := newLedger(t)
	_, err := l.AddExpense(ctx, model.ExpenseDraft{Amount: 1000, Description: "Groceries & milk", Category: model.CategoryFood, Date: "2024-06-15", Notes: "weekly"})
	require.NoError(t, err)
	_, err = l.AddExpense(ctx, model.ExpenseDraft{Amount: 450.5, Description: "Cab", Category: model.CategoryTransport, Date: "2024-06-14", PaymentMethod: model.PaymentUPI})
	require.NoError(t, err)
	require.NoError(t, l.SetBudget(ctx, model.CategoryTravel, 12000))
	require.NoError(t, l.SetCurrency(ctx, model.CurrencyUSD))
	return l
}

func TestExport(t *testing.T) {
	doc := Export(newLedger(t), now)

	assert.Equal(t, "2024-06-15T10:30:00.000Z", doc.ExportDate)
	assert.NotNil(t, doc.Expenses)
	assert.NotNil(t, doc.Goals)
	assert.Equal(t, model.DefaultBudgets(), doc.Budgets)
	assert.Equal(t, model.DefaultSettings(), doc.Settings)
}

func TestWrite_Indentation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Export(populated(t), now)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"expenses\": [\n    {"), out)
	assert.Contains(t, out, `"exportDate": "2024-06-15T10:30:00.000Z"`)
	assert.Contains(t, out, "Groceries & milk")
	assert.Less(t, strings.Index(out, `"settings"`), strings.Index(out, `"exportDate"`))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "expense-tracker-backup-2024-06-15.json", Filename(now))
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := populated(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Export(src, now)))

	dst := newLedger(t)
	res, err := Import(ctx, dst, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Expenses)
	assert.True(t, res.Budgets)
	assert.True(t, res.Settings)

	want, got := src.Snapshot(), dst.Snapshot()
	assert.Equal(t, want.Expenses, got.Expenses)
	assert.Equal(t, want.Budgets, got.Budgets)
	assert.Equal(t, want.Goals, got.Goals)
	assert.Equal(t, want.Settings, got.Settings)
}

func TestExportImport_Idempotent(t *testing.T) {
	ctx := context.Background()
	l := populated(t)
	before := l.Snapshot()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Export(l, now)))
	_, err := Import(ctx, l, &buf)
	require.NoError(t, err)

	assert.Equal(t, before, l.Snapshot())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "hello"},
		{name: "array", input: `[1,2,3]`},
		{name: "null", input: `null`},
		{name: "string", input: `"expenses"`},
		{name: "truncated", input: `{"expenses": [`},
		{name: "wrong expenses shape", input: `{"expenses": "lots"}`},
		{name: "wrong budgets shape", input: `{"budgets": [1]}`},
		{name: "wrong settings shape", input: `{"settings": {"alertThreshold": "high"}}`},
		{name: "trailing garbage", input: `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, common.ErrInvalidDocument)
		})
	}
}

func TestImport_InvalidLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	l := populated(t)
	before := l.Snapshot()

	_, err := Import(ctx, l, strings.NewReader(`{"expenses": [], "settings": 42}`))
	assert.ErrorIs(t, err, common.ErrInvalidDocument)
	assert.Equal(t, before, l.Snapshot())
}

func TestImport_PartialDocument(t *testing.T) {
	ctx := context.Background()
	l := populated(t)
	before := l.Snapshot()

	doc := `{
		"expenses": [{"id": 1, "amount": 75, "description": "Tea", "category": "food", "date": "2024-06-01"}],
		"goals": null,
		"settings": {"alertThreshold": 90, "unknownKey": true},
		"somethingElse": {"ignored": 1}
	}`
	res, err := Import(ctx, l, strings.NewReader(doc))
	require.NoError(t, err)
	assert.False(t, res.Budgets)

	after := l.Snapshot()
	require.Len(t, after.Expenses, 1)
	assert.Equal(t, "Tea", after.Expenses[0].Description)
	assert.Equal(t, before.Budgets, after.Budgets)
	assert.Equal(t, before.Goals, after.Goals)
	assert.Equal(t, 90, after.Settings.AlertThreshold)
	assert.Equal(t, model.CurrencyUSD, after.Settings.Currency, "unspecified settings survive")
}

func TestImport_EmptyObjectChangesNothing(t *testing.T) {
	ctx := context.Background()
	l := populated(t)
	before := l.Snapshot()

	res, err := Import(ctx, l, strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.False(t, res.Settings)
	assert.Equal(t, before, l.Snapshot())
}

func TestPatch_ApplyEmptyCollectionsReplace(t *testing.T) {
	p, err := Parse(strings.NewReader(`{"expenses": [], "goals": []}`))
	require.NoError(t, err)

	current := ledger.Snapshot{
		Expenses: []model.Expense{{ID: 1}},
		Goals:    []model.Goal{{Title: "Trip"}},
		Settings: model.DefaultSettings(),
	}
	next, err := p.Apply(current)
	require.NoError(t, err)
	assert.Empty(t, next.Expenses)
	assert.Empty(t, next.Goals)
}
