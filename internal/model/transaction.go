package model

import "fmt"

// TransactionType indicates whether money came in or went out.
type TransactionType string

const (
	// TypeIncome marks money received.
	TypeIncome TransactionType = "income"
	// TypeExpense marks money spent.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (t TransactionType) String() string { return string(t) }

// ParseTransactionType parses a user-supplied type string.
func ParseTransactionType(s string) (TransactionType, error) {
	tt := TransactionType(s)
	if !tt.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return tt, nil
}

// Transaction represents a single logged income or expense entry.
// Dates carry no time component and are stored zero-padded (YYYY-MM-DD)
// so that lexical comparison orders them chronologically.
type Transaction struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"createdAt"`
	Description string          `json:"description,omitempty"`
	ImageURI    string          `json:"imageUri,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// TransactionPatch is a partial update for a stored transaction. Nil fields
// leave the stored value untouched; only non-nil fields override. ID and
// CreatedAt are never part of a patch: both survive every edit.
type TransactionPatch struct {
	Title       *string
	Amount      *float64
	Type        *TransactionType
	Date        *string
	Description *string
	ImageURI    *string
	Category    *string
}

// Apply merges the patch into t field by field and returns the merged record.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ImageURI != nil {
		t.ImageURI = *p.ImageURI
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	return t
}

// DailySummary aggregates a transaction list into income, expense, and net totals.
type DailySummary struct {
	TotalIncome   float64
	TotalExpenses float64
	NetBalance    float64
}

// Summarize computes totals over a transaction list.
func Summarize(transactions []Transaction) DailySummary {
	var s DailySummary
	for _, t := range transactions {
		switch t.Type {
		case TypeIncome:
			s.TotalIncome += t.Amount
		case TypeExpense:
			s.TotalExpenses += t.Amount
		}
	}
	s.NetBalance = s.TotalIncome - s.TotalExpenses
	return s
}
