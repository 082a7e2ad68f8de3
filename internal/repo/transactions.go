// Package repo implements the domain repositories. Each repository owns one
// or more storage keys and the JSON shape persisted under them. All writes
// are read-modify-write over the whole collection; the single-writer
// discipline comes from callers issuing operations sequentially, not from
// locking here. A port with real concurrent writers must add a per-key
// writer queue.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/storage"
)

// Transactions persists the transaction collection under a single key, in
// insertion order. Identifier uniqueness is a caller invariant: the
// repository neither generates nor checks ids.
type Transactions struct {
	kv storage.KV
}

// NewTransactions creates a transaction repository over the given store.
func NewTransactions(kv storage.KV) *Transactions {
	return &Transactions{kv: kv}
}

// LoadAll returns the full stored sequence in insertion order. A missing
// key yields an empty sequence, not an error.
func (r *Transactions) LoadAll(ctx context.Context) ([]model.Transaction, error) {
	raw, ok, err := r.kv.Get(ctx, storage.KeyTransactions)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if !ok {
		return []model.Transaction{}, nil
	}

	var transactions []model.Transaction
	if err := json.Unmarshal([]byte(raw), &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return transactions, nil
}

// SaveAll overwrites the entire stored collection. Used both for single
// mutations (via read-modify-write) and for bulk restore.
func (r *Transactions) SaveAll(ctx context.Context, transactions []model.Transaction) error {
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	raw, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}
	if err := r.kv.Set(ctx, storage.KeyTransactions, string(raw)); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

// Add appends one transaction to the stored collection.
func (r *Transactions) Add(ctx context.Context, t model.Transaction) error {
	existing, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	slog.Debug("adding transaction", "id", t.ID, "type", t.Type, "amount", t.Amount)
	return r.SaveAll(ctx, append(existing, t))
}

// Update merges a patch into the transaction with the matching id. Fields
// absent from the patch keep their stored values; this is a merge, not a
// replace. Updating an unknown id is a no-op, matching the stored-map
// semantics of the collection.
func (r *Transactions) Update(ctx context.Context, id string, patch model.TransactionPatch) error {
	existing, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	for i, t := range existing {
		if t.ID == id {
			existing[i] = patch.Apply(t)
		}
	}
	return r.SaveAll(ctx, existing)
}

// Delete removes the transaction with the matching id.
func (r *Transactions) Delete(ctx context.Context, id string) error {
	existing, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	kept := existing[:0]
	for _, t := range existing {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return r.SaveAll(ctx, kept)
}

// DeleteAll overwrites the collection with an empty one. Used for full
// resets and as the first step of restore.
func (r *Transactions) DeleteAll(ctx context.Context) error {
	return r.SaveAll(ctx, []model.Transaction{})
}

// FilterByDate returns the transactions whose calendar day exactly matches
// date (YYYY-MM-DD).
func (r *Transactions) FilterByDate(ctx context.Context, date string) ([]model.Transaction, error) {
	all, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := []model.Transaction{}
	for _, t := range all {
		if t.Date == date {
			matched = append(matched, t)
		}
	}
	return matched, nil
}
