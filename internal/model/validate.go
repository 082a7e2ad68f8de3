package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/rivo/uniseg"
)

// Validation errors. These are rejected before any persistence call; a
// failed validation never leaves partial state behind.
var (
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrMissingTitle    = errors.New("title cannot be empty")
	ErrInvalidDate     = errors.New("date must be formatted YYYY-MM-DD")
	ErrMissingName     = errors.New("category name cannot be empty")
	ErrInvalidIcon     = errors.New("icon must be exactly one character")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownCurrency = errors.New("unknown currency symbol")
)

// ValidateDate checks a calendar-day string for the zero-padded YYYY-MM-DD
// form the store and the export comparisons depend on.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// Validate checks a transaction before it is persisted. The
// category reference is resolved against built-ins plus the supplied custom
// categories of the transaction's type.
func (t *Transaction) Validate(custom []Category) error {
	if !t.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if t.Title == "" {
		return ErrMissingTitle
	}
	if t.Amount <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidAmount, t.Amount)
	}
	if err := ValidateDate(t.Date); err != nil {
		return err
	}
	if t.Category != "" && CategoryByID(t.Category, t.Type, custom) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, t.Category)
	}
	return nil
}

// Validate checks a custom category before it is persisted. The icon must
// be exactly one grapheme cluster: counting clusters rather than bytes or
// runes keeps compound emoji (flags, skin-tone modifiers) valid.
func (c *Category) Validate() error {
	if !c.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, c.Type)
	}
	if c.Name == "" {
		return ErrMissingName
	}
	if uniseg.GraphemeClusterCount(c.Icon) != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidIcon, c.Icon)
	}
	return nil
}
