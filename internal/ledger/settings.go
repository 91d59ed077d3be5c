package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/service"
)

// UpdateSetting parses raw into the field named by key and persists the
// whole settings object.
func (l *Ledger) UpdateSetting(ctx context.Context, key model.SettingKey, raw string) error {
	return l.updateSettings(ctx, key, func(s *model.Settings) error {
		return s.Apply(key, raw)
	})
}

// SetCurrency changes the display currency.
func (l *Ledger) SetCurrency(ctx context.Context, c model.Currency) error {
	return l.UpdateSetting(ctx, model.SettingCurrency, string(c))
}

// SetTheme changes the colour scheme.
func (l *Ledger) SetTheme(ctx context.Context, t model.Theme) error {
	return l.UpdateSetting(ctx, model.SettingTheme, string(t))
}

// SetMonthlyBudget changes the overall monthly budget.
func (l *Ledger) SetMonthlyBudget(ctx context.Context, amount float64) error {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: monthly budget must be a non-negative number", common.ErrInvalidInput)
	}
	return l.UpdateSetting(ctx, model.SettingMonthlyBudget, strconv.FormatFloat(amount, 'f', -1, 64))
}

// SetAlertThreshold changes the budget alert percentage.
func (l *Ledger) SetAlertThreshold(ctx context.Context, percent int) error {
	return l.UpdateSetting(ctx, model.SettingAlertThreshold, strconv.Itoa(percent))
}

// SetNotifications toggles budget alert notifications.
func (l *Ledger) SetNotifications(ctx context.Context, enabled bool) error {
	return l.UpdateSetting(ctx, model.SettingNotifications, strconv.FormatBool(enabled))
}

func (l *Ledger) updateSettings(ctx context.Context, key model.SettingKey, mutate func(*model.Settings) error) error {
	next := l.settings
	if err := mutate(&next); err != nil {
		return err
	}
	if err := l.persist(ctx, service.KeySettings, next); err != nil {
		return err
	}

	l.settings = next
	slog.Debug("Updated setting", "key", key, "value", next.Value(key))
	l.notify(ChangeSettings)
	return nil
}
