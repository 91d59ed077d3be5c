package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/spendwise/internal/common"
)

// Expense is one recorded transaction in the ledger.
type Expense struct {
	CreatedAt     time.Time     `json:"createdAt"`
	Description   string        `json:"description"`
	Category      Category      `json:"category"`
	Date          Date          `json:"date"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	Notes         string        `json:"notes"`
	ID            int64         `json:"id"`
	Amount        float64       `json:"amount"`
}

// ExpenseDraft holds the user-editable fields of a new expense.
type ExpenseDraft struct {
	Description   string
	Category      Category
	Date          Date
	PaymentMethod PaymentMethod
	Notes         string
	Amount        float64
}

// Validate checks the draft before it is added to the ledger.
func (d ExpenseDraft) Validate() error {
	if d.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", common.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("%w: description is required", common.ErrInvalidInput)
	}
	if _, err := ParseDate(string(d.Date)); err != nil {
		return err
	}
	return nil
}

// ExpensePatch carries the fields to replace on an existing expense.
// Nil fields are left untouched; ID and CreatedAt can never be patched.
type ExpensePatch struct {
	Amount        *float64
	Description   *string
	Category      *Category
	Date          *Date
	PaymentMethod *PaymentMethod
	Notes         *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ExpensePatch) IsEmpty() bool {
	return p.Amount == nil && p.Description == nil && p.Category == nil &&
		p.Date == nil && p.PaymentMethod == nil && p.Notes == nil
}

// Validate checks the fields that are present.
func (p ExpensePatch) Validate() error {
	if p.Amount != nil && *p.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", common.ErrInvalidInput)
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return fmt.Errorf("%w: description is required", common.ErrInvalidInput)
	}
	if p.Date != nil {
		if _, err := ParseDate(string(*p.Date)); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTo merges the patch onto e and returns the result.
func (p ExpensePatch) ApplyTo(e Expense) Expense {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.PaymentMethod != nil {
		e.PaymentMethod = *p.PaymentMethod
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return e
}
