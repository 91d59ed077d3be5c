package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spendwise/internal/common"
)

// PaymentMethod records how an expense was paid.
type PaymentMethod string

// Supported payment methods.
const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
)

// DefaultPaymentMethod is applied when an expense is created without one.
const DefaultPaymentMethod = PaymentCard

var paymentIcons = map[PaymentMethod]string{
	PaymentCash:       "💵",
	PaymentCard:       "💳",
	PaymentUPI:        "📱",
	PaymentNetBanking: "🏦",
}

// IsKnown reports whether p is one of the supported methods.
func (p PaymentMethod) IsKnown() bool {
	_, ok := paymentIcons[p]
	return ok
}

// Icon returns the method emoji; unknown methods use the card icon.
func (p PaymentMethod) Icon() string {
	if icon, ok := paymentIcons[p]; ok {
		return icon
	}
	return paymentIcons[PaymentCard]
}

// Label returns the method name, or "Card" when unset.
func (p PaymentMethod) Label() string {
	if p == "" {
		return "Card"
	}
	return string(p)
}

// ParsePaymentMethod validates user input. Empty input yields the default.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPaymentMethod, nil
	}
	p := PaymentMethod(s)
	if !p.IsKnown() {
		return "", fmt.Errorf("%w: unknown payment method %q", common.ErrInvalidInput, s)
	}
	return p, nil
}
