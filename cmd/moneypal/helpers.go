package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/moneypal/moneypal/internal/backup"
	"github.com/moneypal/moneypal/internal/common"
	"github.com/moneypal/moneypal/internal/config"
	"github.com/moneypal/moneypal/internal/repo"
	"github.com/moneypal/moneypal/internal/state"
	"github.com/moneypal/moneypal/internal/storage"
)

// env bundles everything a command needs: the open store, the domain
// repositories over it, and the state container.
type env struct {
	kv           *storage.SQLiteKV
	transactions *repo.Transactions
	categories   *repo.Categories
	budget       *repo.Budget
	preferences  *repo.Preferences
	app          *state.App
}

func (e *env) close() {
	if err := e.kv.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// initEnv opens the store with auto-migration and wires the repositories.
// It also warns when a previous restore died mid-commit.
func initEnv(ctx context.Context) (*env, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/moneypal/moneypal.db"
	}
	dbPath = config.ExpandPath(dbPath)

	kv, err := storage.NewSQLiteKV(dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	if err := kv.Migrate(ctx); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if interrupted, markerErr := backup.InProgress(ctx, kv); markerErr == nil && interrupted {
		slog.Warn("a previous restore did not finish; stored data may be partially restored")
	}

	transactions := repo.NewTransactions(kv)
	categories := repo.NewCategories(kv, transactions)
	budgetRepo := repo.NewBudget(kv)
	preferences := repo.NewPreferences(kv)

	return &env{
		kv:           kv,
		transactions: transactions,
		categories:   categories,
		budget:       budgetRepo,
		preferences:  preferences,
		app:          state.New(transactions, categories, budgetRepo, preferences),
	}, nil
}

// imageDir is where restored receipt images are materialized.
func imageDir() string {
	dir := viper.GetString("images.path")
	if dir == "" {
		dir = "$HOME/.local/share/moneypal/images"
	}
	return config.ExpandPath(dir)
}

// parseAmount parses a user-supplied decimal amount, accepting both dot
// and comma separators.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("invalid amount %q: must be a positive number", s)
	}
	return amount, nil
}

// backupService wires the backup/restore pipeline over an env.
func backupService(e *env) *backup.Service {
	return &backup.Service{
		Transactions: e.transactions,
		Categories:   e.categories,
		Budget:       e.budget,
		Preferences:  e.preferences,
		KV:           e.kv,
		ImageDir:     imageDir(),
	}
}
