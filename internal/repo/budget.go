package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/storage"
)

// Budget persists the full budget structure (per-month limits plus the
// default map) wholesale under a single key.
type Budget struct {
	kv storage.KV
}

// NewBudget creates a budget repository over the given store.
func NewBudget(kv storage.KV) *Budget {
	return &Budget{kv: kv}
}

// Load returns the stored budget structure, or an empty one when nothing
// has been stored yet.
func (r *Budget) Load(ctx context.Context) (model.Budget, error) {
	raw, ok, err := r.kv.Get(ctx, storage.KeyBudget)
	if err != nil {
		return model.NewBudget(), fmt.Errorf("failed to load budget: %w", err)
	}
	if !ok {
		return model.NewBudget(), nil
	}

	var b model.Budget
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return model.NewBudget(), fmt.Errorf("failed to decode budget: %w", err)
	}
	if b.Budget == nil {
		b.Budget = make(map[string][]model.BudgetLimit)
	}
	if b.Default == nil {
		b.Default = make(map[string]float64)
	}
	return b, nil
}

// Save overwrites the whole budget structure.
func (r *Budget) Save(ctx context.Context, b model.Budget) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode budget: %w", err)
	}
	if err := r.kv.Set(ctx, storage.KeyBudget, string(raw)); err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

// SetLimit upserts the month-specific limit for the limit's category,
// replacing any existing entry for the same category in that month. When
// alsoDefault is set the default-map entry is upserted too; both changes
// land in one saved structure.
func (r *Budget) SetLimit(ctx context.Context, month string, limit model.BudgetLimit, alsoDefault bool) error {
	b, err := r.Load(ctx)
	if err != nil {
		return err
	}

	entries := b.Budget[month]
	replaced := false
	for i, l := range entries {
		if l.CategoryID == limit.CategoryID {
			entries[i] = limit
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, limit)
	}
	b.Budget[month] = entries

	if alsoDefault {
		b.Default[limit.CategoryID] = limit.Amount
	}

	return r.Save(ctx, b)
}

// GetLimit resolves the effective limit for a category in a month, falling
// back to the default map and then to zero.
func (r *Budget) GetLimit(ctx context.Context, month, categoryID string) (float64, error) {
	b, err := r.Load(ctx)
	if err != nil {
		return 0, err
	}
	return b.Limit(month, categoryID), nil
}

// DeleteAll resets the budget to the empty structure.
func (r *Budget) DeleteAll(ctx context.Context) error {
	return r.Save(ctx, model.NewBudget())
}
