package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spendwise/internal/common"
)

// Category is the fixed set of spending categories an expense can belong to.
type Category string

// Known categories, in display order.
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryBills         Category = "bills"
	CategoryShopping      Category = "shopping"
	CategoryHealthcare    Category = "healthcare"
	CategoryEducation     Category = "education"
	CategoryTravel        Category = "travel"
	CategoryOther         Category = "other"
)

var categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryBills,
	CategoryShopping,
	CategoryHealthcare,
	CategoryEducation,
	CategoryTravel,
	CategoryOther,
}

var categoryNames = map[Category]string{
	CategoryFood:          "Food & Dining",
	CategoryTransport:     "Transportation",
	CategoryEntertainment: "Entertainment",
	CategoryBills:         "Bills & Utilities",
	CategoryShopping:      "Shopping",
	CategoryHealthcare:    "Healthcare",
	CategoryEducation:     "Education",
	CategoryTravel:        "Travel",
	CategoryOther:         "Other",
}

var categoryIcons = map[Category]string{
	CategoryFood:          "🍽️",
	CategoryTransport:     "🚗",
	CategoryEntertainment: "🎬",
	CategoryBills:         "💡",
	CategoryShopping:      "🛍️",
	CategoryHealthcare:    "🏥",
	CategoryEducation:     "📚",
	CategoryTravel:        "✈️",
	CategoryOther:         "📦",
}

// AllCategories returns every known category in display order.
func AllCategories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsKnown reports whether c is one of the enumerated categories.
func (c Category) IsKnown() bool {
	_, ok := categoryNames[c]
	return ok
}

// DisplayName returns the human label, falling back to "Other" for unknown values.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryOther]
}

// Icon returns the category emoji, falling back to the "other" icon.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return categoryIcons[CategoryOther]
}

// Rank orders categories by display position; unknown values sort last.
func (c Category) Rank() int {
	for i, known := range categories {
		if known == c {
			return i
		}
	}
	return len(categories)
}

// ParseCategory validates user input against the known categories.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsKnown() {
		return "", fmt.Errorf("%w: unknown category %q", common.ErrInvalidInput, s)
	}
	return c, nil
}
