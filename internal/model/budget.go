package model

import "time"

// BudgetAllCategories is the sentinel category id for the overall monthly limit.
const BudgetAllCategories = "all"

// BudgetLimit is a spending limit for one category within a month.
type BudgetLimit struct {
	CategoryID string  `json:"categoryId"`
	Amount     float64 `json:"amount"`
}

// Budget maps month keys (YYYY-MM) to per-category limits, plus a default
// map applied to any month without an explicit entry.
type Budget struct {
	Budget  map[string][]BudgetLimit `json:"budget"`
	Default map[string]float64       `json:"default"`
}

// NewBudget returns an empty budget with both maps allocated.
func NewBudget() Budget {
	return Budget{
		Budget:  make(map[string][]BudgetLimit),
		Default: make(map[string]float64),
	}
}

// Limit resolves the effective limit for a category in a month: an explicit
// month entry wins, otherwise the default map, otherwise zero (no limit).
func (b Budget) Limit(month, categoryID string) float64 {
	for _, l := range b.Budget[month] {
		if l.CategoryID == categoryID {
			return l.Amount
		}
	}
	if amount, ok := b.Default[categoryID]; ok {
		return amount
	}
	return 0
}

// MonthKey formats a time as a budget month key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
