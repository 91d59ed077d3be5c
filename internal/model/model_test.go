package model

import (
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/spendwise/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_DisplayFallback(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantName string
		wantIcon string
	}{
		{name: "known", category: CategoryFood, wantName: "Food & Dining", wantIcon: "🍽️"},
		{name: "bills", category: CategoryBills, wantName: "Bills & Utilities", wantIcon: "💡"},
		{name: "unknown degrades to other", category: Category("crypto"), wantName: "Other", wantIcon: "📦"},
		{name: "empty degrades to other", category: Category(""), wantName: "Other", wantIcon: "📦"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.category.DisplayName())
			assert.Equal(t, tt.wantIcon, tt.category.Icon())
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("  Travel ")
	require.NoError(t, err)
	assert.Equal(t, CategoryTravel, c)

	_, err = ParseCategory("groceries")
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestCategory_Rank(t *testing.T) {
	assert.Equal(t, 0, CategoryFood.Rank())
	assert.Equal(t, 8, CategoryOther.Rank())
	assert.Equal(t, 9, Category("unknown").Rank())
}

func TestPaymentMethod(t *testing.T) {
	assert.Equal(t, "💳", PaymentMethod("cheque").Icon())
	assert.Equal(t, "📱", PaymentUPI.Icon())
	assert.Equal(t, "Card", PaymentMethod("").Label())

	p, err := ParsePaymentMethod("")
	require.NoError(t, err)
	assert.Equal(t, PaymentCard, p)

	_, err = ParsePaymentMethod("bitcoin")
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	d := Date("2024-06-15")
	assert.Equal(t, "2024-06", d.MonthKey())
	assert.True(t, d.HasMonthPrefix("2024-06"))
	assert.False(t, d.HasMonthPrefix("2024-07"))
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), d.Time())
	assert.Equal(t, "15 Jun 2024", d.Format())
	assert.True(t, Date("2024-06-09").Before(d))

	assert.True(t, Date("garbage").Time().IsZero())
	assert.Equal(t, "garbage", Date("garbage").Format())

	_, err := ParseDate("2024-13-01")
	assert.Error(t, err)

	parsed, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, Date("2024-02-29"), parsed)

	assert.Equal(t, Date("2024-01-31"), DateOf(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
}

func TestExpensePatch_ApplyTo(t *testing.T) {
	created := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	original := Expense{
		ID:            42,
		Amount:        100,
		Description:   "Coffee",
		Category:      CategoryFood,
		Date:          "2024-06-01",
		PaymentMethod: PaymentCash,
		CreatedAt:     created,
	}

	amount := 250.0
	notes := "with cake"
	patched := ExpensePatch{Amount: &amount, Notes: &notes}.ApplyTo(original)

	assert.Equal(t, int64(42), patched.ID)
	assert.Equal(t, created, patched.CreatedAt)
	assert.Equal(t, 250.0, patched.Amount)
	assert.Equal(t, "with cake", patched.Notes)
	assert.Equal(t, "Coffee", patched.Description)
	assert.Equal(t, PaymentCash, patched.PaymentMethod)

	assert.True(t, ExpensePatch{}.IsEmpty())
	assert.False(t, ExpensePatch{Amount: &amount}.IsEmpty())
}

func TestExpenseDraft_Validate(t *testing.T) {
	good := ExpenseDraft{Amount: 10, Description: "Bus", Category: CategoryTransport, Date: "2024-06-01"}
	require.NoError(t, good.Validate())

	zero := good
	zero.Amount = 0
	assert.NoError(t, zero.Validate(), "zero amounts are allowed")

	bad := []ExpenseDraft{
		{Amount: -1, Description: "x", Date: "2024-06-01"},
		{Amount: 1, Description: "  ", Date: "2024-06-01"},
		{Amount: 1, Description: "x", Date: "06/01/2024"},
	}
	for i, d := range bad {
		assert.Error(t, d.Validate(), "case %d", i)
	}
}

func TestDefaults(t *testing.T) {
	b := DefaultBudgets()
	assert.Len(t, b, len(AllCategories()))
	assert.Equal(t, 15000.0, b[CategoryFood])

	s := DefaultSettings()
	assert.Equal(t, CurrencyINR, s.Currency)
	assert.Equal(t, ThemeLight, s.Theme)
	assert.Equal(t, 50000.0, s.MonthlyBudget)
	assert.Equal(t, 80, s.AlertThreshold)
	assert.True(t, s.Notifications)
}

func TestBudgets_Categories(t *testing.T) {
	b := Budgets{CategoryTravel: 1, CategoryFood: 2, Category("zoo"): 3, Category("art"): 4}
	assert.Equal(t, []Category{CategoryFood, CategoryTravel, "art", "zoo"}, b.Categories())
}

func TestGoal_Progress(t *testing.T) {
	assert.Equal(t, 50.0, Goal{TargetAmount: 200, CurrentAmount: 100}.Progress())
	assert.Equal(t, 0.0, Goal{TargetAmount: 0, CurrentAmount: 100}.Progress())
}

func TestSettings_Apply(t *testing.T) {
	tests := []struct {
		check   func(*testing.T, Settings)
		name    string
		key     SettingKey
		raw     string
		wantErr bool
	}{
		{name: "currency", key: SettingCurrency, raw: "usd", check: func(t *testing.T, s Settings) {
			t.Helper()
			assert.Equal(t, CurrencyUSD, s.Currency)
		}},
		{name: "bad currency", key: SettingCurrency, raw: "JPY", wantErr: true},
		{name: "theme", key: SettingTheme, raw: "Dark", check: func(t *testing.T, s Settings) {
			t.Helper()
			assert.Equal(t, ThemeDark, s.Theme)
		}},
		{name: "monthly budget", key: SettingMonthlyBudget, raw: "1000.5", check: func(t *testing.T, s Settings) {
			t.Helper()
			assert.Equal(t, 1000.5, s.MonthlyBudget)
		}},
		{name: "negative budget", key: SettingMonthlyBudget, raw: "-4", wantErr: true},
		{name: "threshold", key: SettingAlertThreshold, raw: "90", check: func(t *testing.T, s Settings) {
			t.Helper()
			assert.Equal(t, 90, s.AlertThreshold)
		}},
		{name: "fractional threshold", key: SettingAlertThreshold, raw: "90.5", wantErr: true},
		{name: "notifications", key: SettingNotifications, raw: "false", check: func(t *testing.T, s Settings) {
			t.Helper()
			assert.False(t, s.Notifications)
		}},
		{name: "unknown key", key: SettingKey("font"), raw: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			err := s.Apply(tt.key, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, DefaultSettings(), s, "failed apply must not modify settings")
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
			assert.NotEmpty(t, s.Value(tt.key))
		})
	}
}

func TestParseSettingKey(t *testing.T) {
	k, err := ParseSettingKey("MONTHLYBUDGET")
	require.NoError(t, err)
	assert.Equal(t, SettingMonthlyBudget, k)

	_, err = ParseSettingKey("colour")
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		currency Currency
		want     string
		amount   float64
	}{
		{currency: CurrencyINR, amount: 123456.5, want: "₹1,23,456.50"},
		{currency: CurrencyINR, amount: 999, want: "₹999.00"},
		{currency: CurrencyINR, amount: 10000000, want: "₹1,00,00,000.00"},
		{currency: CurrencyUSD, amount: 1234567.891, want: "$1,234,567.89"},
		{currency: CurrencyGBP, amount: 12, want: "£12.00"},
		{currency: CurrencyEUR, amount: -3000, want: "-€3,000.00"},
		{currency: Currency("JPY"), amount: 1500, want: "₹1,500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.currency, tt.amount))
		})
	}
}
