package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/spendwise/internal/common"
)

// Currency is the display currency.
type Currency string

// Supported currencies.
const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

var currencySymbols = map[Currency]string{
	CurrencyINR: "₹",
	CurrencyUSD: "$",
	CurrencyEUR: "€",
	CurrencyGBP: "£",
}

// Symbol returns the currency sign; unknown currencies render as rupees.
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return currencySymbols[CurrencyINR]
}

// Theme is the UI colour scheme.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings is the single process-wide configuration object.
type Settings struct {
	Currency       Currency `json:"currency"`
	Theme          Theme    `json:"theme"`
	MonthlyBudget  float64  `json:"monthlyBudget"`
	AlertThreshold int      `json:"alertThreshold"`
	Notifications  bool     `json:"notifications"`
}

// DefaultSettings returns the seeded settings.
func DefaultSettings() Settings {
	return Settings{
		Currency:       CurrencyINR,
		Theme:          ThemeLight,
		MonthlyBudget:  50000,
		AlertThreshold: 80,
		Notifications:  true,
	}
}

// SettingKey names one field of Settings.
type SettingKey string

// Settings fields addressable by key.
const (
	SettingCurrency       SettingKey = "currency"
	SettingTheme          SettingKey = "theme"
	SettingMonthlyBudget  SettingKey = "monthlyBudget"
	SettingAlertThreshold SettingKey = "alertThreshold"
	SettingNotifications  SettingKey = "notifications"
)

// SettingKeys lists every addressable settings field.
func SettingKeys() []SettingKey {
	return []SettingKey{
		SettingCurrency,
		SettingTheme,
		SettingMonthlyBudget,
		SettingAlertThreshold,
		SettingNotifications,
	}
}

// ParseSettingKey accepts a key case-insensitively.
func ParseSettingKey(s string) (SettingKey, error) {
	for _, k := range SettingKeys() {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown setting %q", common.ErrInvalidInput, s)
}

// Apply parses raw and writes it into the field named by key.
func (s *Settings) Apply(key SettingKey, raw string) error {
	raw = strings.TrimSpace(raw)
	switch key {
	case SettingCurrency:
		c := Currency(strings.ToUpper(raw))
		if _, ok := currencySymbols[c]; !ok {
			return fmt.Errorf("%w: unknown currency %q", common.ErrInvalidInput, raw)
		}
		s.Currency = c
	case SettingTheme:
		t := Theme(strings.ToLower(raw))
		if t != ThemeLight && t != ThemeDark {
			return fmt.Errorf("%w: unknown theme %q", common.ErrInvalidInput, raw)
		}
		s.Theme = t
	case SettingMonthlyBudget:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%w: monthly budget %q must be a non-negative number", common.ErrInvalidInput, raw)
		}
		s.MonthlyBudget = v
	case SettingAlertThreshold:
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return fmt.Errorf("%w: alert threshold %q must be a non-negative integer", common.ErrInvalidInput, raw)
		}
		s.AlertThreshold = v
	case SettingNotifications:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: notifications %q must be true or false", common.ErrInvalidInput, raw)
		}
		s.Notifications = v
	default:
		return fmt.Errorf("%w: unknown setting %q", common.ErrInvalidInput, key)
	}
	return nil
}

// Value renders the field named by key.
func (s Settings) Value(key SettingKey) string {
	switch key {
	case SettingCurrency:
		return string(s.Currency)
	case SettingTheme:
		return string(s.Theme)
	case SettingMonthlyBudget:
		return strconv.FormatFloat(s.MonthlyBudget, 'f', -1, 64)
	case SettingAlertThreshold:
		return strconv.Itoa(s.AlertThreshold)
	case SettingNotifications:
		return strconv.FormatBool(s.Notifications)
	}
	return ""
}

// FormatAmount renders amount with the currency symbol and two decimals.
// Rupees use Indian digit grouping (1,23,456.00); other currencies group by thousands.
func (s Settings) FormatAmount(amount float64) string {
	return FormatMoney(s.Currency, amount)
}

// FormatMoney renders amount in currency c.
func FormatMoney(c Currency, amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	text := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, frac, _ := strings.Cut(text, ".")
	if c == CurrencyINR || !c.known() {
		whole = groupIndian(whole)
	} else {
		whole = groupThousands(whole)
	}
	return sign + c.Symbol() + whole + "." + frac
}

func (c Currency) known() bool {
	_, ok := currencySymbols[c]
	return ok
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
