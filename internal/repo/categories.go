package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/storage"
)

// Categories persists user-defined categories. Built-in categories never
// reach storage; they live in model's static tables.
type Categories struct {
	kv           storage.KV
	transactions *Transactions
}

// NewCategories creates a category repository. It needs the transaction
// repository because deleting a category rewrites referencing transactions.
func NewCategories(kv storage.KV, transactions *Transactions) *Categories {
	return &Categories{kv: kv, transactions: transactions}
}

// LoadCustom returns all stored custom categories.
func (r *Categories) LoadCustom(ctx context.Context) ([]model.Category, error) {
	raw, ok, err := r.kv.Get(ctx, storage.KeyCustomCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to load custom categories: %w", err)
	}
	if !ok {
		return []model.Category{}, nil
	}

	var categories []model.Category
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil, fmt.Errorf("failed to decode custom categories: %w", err)
	}
	return categories, nil
}

func (r *Categories) saveAll(ctx context.Context, categories []model.Category) error {
	if categories == nil {
		categories = []model.Category{}
	}
	raw, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to encode custom categories: %w", err)
	}
	if err := r.kv.Set(ctx, storage.KeyCustomCategories, string(raw)); err != nil {
		return fmt.Errorf("failed to save custom categories: %w", err)
	}
	return nil
}

// SaveOne appends one custom category.
func (r *Categories) SaveOne(ctx context.Context, c model.Category) error {
	existing, err := r.LoadCustom(ctx)
	if err != nil {
		return err
	}
	slog.Debug("saving custom category", "id", c.ID, "type", c.Type)
	return r.saveAll(ctx, append(existing, c))
}

// UpdateOne replaces the stored category with the matching id.
func (r *Categories) UpdateOne(ctx context.Context, c model.Category) error {
	existing, err := r.LoadCustom(ctx)
	if err != nil {
		return err
	}
	for i, cat := range existing {
		if cat.ID == c.ID {
			existing[i] = c
		}
	}
	return r.saveAll(ctx, existing)
}

// DeleteOne removes a custom category. Before the category row goes away,
// every transaction referencing it is reassigned to the type-appropriate
// fallback ("Other") category and that rewrite is persisted. The two writes
// are not transactional: a failure between them can leave the two
// collections inconsistent, with no compensating step.
func (r *Categories) DeleteOne(ctx context.Context, id string) error {
	transactions, err := r.transactions.LoadAll(ctx)
	if err != nil {
		return err
	}
	reassigned := 0
	for i, t := range transactions {
		if t.Category == id {
			transactions[i].Category = model.FallbackCategoryID(t.Type)
			reassigned++
		}
	}
	if err := r.transactions.SaveAll(ctx, transactions); err != nil {
		return err
	}
	if reassigned > 0 {
		slog.Info("reassigned transactions to fallback category", "category", id, "count", reassigned)
	}

	existing, err := r.LoadCustom(ctx)
	if err != nil {
		return err
	}
	kept := existing[:0]
	for _, c := range existing {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return r.saveAll(ctx, kept)
}

// DeleteAll removes every custom category.
func (r *Categories) DeleteAll(ctx context.Context) error {
	return r.saveAll(ctx, []model.Category{})
}
