package repo

import (
	"context"
	"testing"

	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/storage"
)

func TestBudget_Load_Empty(t *testing.T) {
	r := NewBudget(storage.NewMemoryKV())

	b, err := r.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.Budget == nil || b.Default == nil {
		t.Errorf("empty budget should have allocated maps: %+v", b)
	}
	if len(b.Budget) != 0 || len(b.Default) != 0 {
		t.Errorf("expected empty budget, got %+v", b)
	}
}

func TestBudget_GetLimit_DefaultFallback(t *testing.T) {
	r := NewBudget(storage.NewMemoryKV())
	ctx := context.Background()

	b := model.NewBudget()
	b.Default["all"] = 500
	if err := r.Save(ctx, b); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// No explicit month entry: the default applies.
	limit, err := r.GetLimit(ctx, "2025-01", "all")
	if err != nil {
		t.Fatalf("GetLimit failed: %v", err)
	}
	if limit != 500 {
		t.Errorf("GetLimit = %v, want 500", limit)
	}

	// Absent from both maps: zero means no limit.
	limit, err = r.GetLimit(ctx, "2025-01", "food")
	if err != nil {
		t.Fatalf("GetLimit failed: %v", err)
	}
	if limit != 0 {
		t.Errorf("GetLimit = %v, want 0", limit)
	}
}

func TestBudget_SetLimit(t *testing.T) {
	r := NewBudget(storage.NewMemoryKV())
	ctx := context.Background()

	limit := model.BudgetLimit{CategoryID: "food", Amount: 200}
	if err := r.SetLimit(ctx, "2025-01", limit, true); err != nil {
		t.Fatalf("SetLimit failed: %v", err)
	}

	b, err := r.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	entries := b.Budget["2025-01"]
	if len(entries) != 1 || entries[0] != limit {
		t.Errorf("month entries = %+v, want [%+v]", entries, limit)
	}
	if b.Default["food"] != 200 {
		t.Errorf("default[food] = %v, want 200", b.Default["food"])
	}
}

func TestBudget_SetLimit_ReplacesSameCategory(t *testing.T) {
	r := NewBudget(storage.NewMemoryKV())
	ctx := context.Background()

	_ = r.SetLimit(ctx, "2025-01", model.BudgetLimit{CategoryID: "food", Amount: 200}, false)
	_ = r.SetLimit(ctx, "2025-01", model.BudgetLimit{CategoryID: "transport", Amount: 80}, false)
	if err := r.SetLimit(ctx, "2025-01", model.BudgetLimit{CategoryID: "food", Amount: 350}, false); err != nil {
		t.Fatalf("SetLimit failed: %v", err)
	}

	b, _ := r.Load(ctx)
	entries := b.Budget["2025-01"]
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0] != (model.BudgetLimit{CategoryID: "food", Amount: 350}) {
		t.Errorf("food entry not replaced in place: %+v", entries)
	}
	if len(b.Default) != 0 {
		t.Errorf("default map should be untouched without alsoDefault: %+v", b.Default)
	}
}

func TestBudget_SetLimit_MonthOverridesDefault(t *testing.T) {
	r := NewBudget(storage.NewMemoryKV())
	ctx := context.Background()

	_ = r.SetLimit(ctx, "2025-01", model.BudgetLimit{CategoryID: "food", Amount: 200}, true)
	_ = r.SetLimit(ctx, "2025-02", model.BudgetLimit{CategoryID: "food", Amount: 50}, false)

	// Explicit month entry wins over the default.
	limit, _ := r.GetLimit(ctx, "2025-02", "food")
	if limit != 50 {
		t.Errorf("2025-02 limit = %v, want 50", limit)
	}
	// Months without an entry use the default.
	limit, _ = r.GetLimit(ctx, "2025-03", "food")
	if limit != 200 {
		t.Errorf("2025-03 limit = %v, want 200 (default)", limit)
	}
}

func TestBudget_DeleteAll(t *testing.T) {
	r := NewBudget(storage.NewMemoryKV())
	ctx := context.Background()

	_ = r.SetLimit(ctx, "2025-01", model.BudgetLimit{CategoryID: "all", Amount: 1000}, true)
	if err := r.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}

	b, _ := r.Load(ctx)
	if len(b.Budget) != 0 || len(b.Default) != 0 {
		t.Errorf("expected reset budget, got %+v", b)
	}
}
