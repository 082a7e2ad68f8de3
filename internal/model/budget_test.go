package model

import (
	"testing"
	"time"
)

func TestBudget_Limit(t *testing.T) {
	tests := []struct {
		name       string
		budget     Budget
		month      string
		categoryID string
		want       float64
	}{
		{
			name: "default applies when month has no entry",
			budget: Budget{
				Budget:  map[string][]BudgetLimit{},
				Default: map[string]float64{"all": 500},
			},
			month:      "2025-01",
			categoryID: "all",
			want:       500,
		},
		{
			name: "month entry overrides default",
			budget: Budget{
				Budget:  map[string][]BudgetLimit{"2025-01": {{CategoryID: "food", Amount: 200}}},
				Default: map[string]float64{"food": 999},
			},
			month:      "2025-01",
			categoryID: "food",
			want:       200,
		},
		{
			name:       "absent everywhere means zero",
			budget:     NewBudget(),
			month:      "2025-01",
			categoryID: "food",
			want:       0,
		},
		{
			name: "other months do not leak",
			budget: Budget{
				Budget:  map[string][]BudgetLimit{"2025-02": {{CategoryID: "food", Amount: 300}}},
				Default: map[string]float64{},
			},
			month:      "2025-01",
			categoryID: "food",
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.budget.Limit(tt.month, tt.categoryID); got != tt.want {
				t.Errorf("Limit(%q, %q) = %v, want %v", tt.month, tt.categoryID, got, tt.want)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	d := time.Date(2025, 3, 7, 15, 4, 5, 0, time.UTC)
	if got := MonthKey(d); got != "2025-03" {
		t.Errorf("MonthKey() = %q, want 2025-03", got)
	}
}

func TestCategoryByID(t *testing.T) {
	custom := []Category{{ID: "custom1", Name: "Hobby", Icon: "🎨", Type: TypeExpense}}

	if c := CategoryByID("food", TypeExpense, nil); c == nil || c.Name != "Food & Dining" {
		t.Errorf("builtin lookup failed: %+v", c)
	}
	if c := CategoryByID("custom1", TypeExpense, custom); c == nil || c.Name != "Hobby" {
		t.Errorf("custom lookup failed: %+v", c)
	}
	if c := CategoryByID("custom1", TypeIncome, custom); c != nil {
		t.Errorf("wrong-type custom lookup should miss, got %+v", c)
	}
	if c := CategoryByID("missing", TypeExpense, custom); c != nil {
		t.Errorf("unknown id should miss, got %+v", c)
	}
}

func TestFallbackCategoryID(t *testing.T) {
	if got := FallbackCategoryID(TypeExpense); got != "other_expense" {
		t.Errorf("expense fallback = %q", got)
	}
	if got := FallbackCategoryID(TypeIncome); got != "other_income" {
		t.Errorf("income fallback = %q", got)
	}
}
