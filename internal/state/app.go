// Package state holds the in-memory application state container. It mirrors
// repository data for consumers that want cached reads; it is not reactive.
// Anything that mutates storage behind its back (restore, bulk import) must
// call the relevant Refresh method afterwards.
package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/repo"
)

// App is the process-wide state container, constructed once at startup and
// passed explicitly to consumers. Refresh methods apply the fail-soft
// policy: a storage failure is logged and the cache falls back to an empty
// default rather than propagating.
type App struct {
	mu sync.RWMutex

	transactions *repo.Transactions
	categories   *repo.Categories
	budget       *repo.Budget
	preferences  *repo.Preferences

	cachedTransactions []model.Transaction
	cachedCategories   []model.Category
	cachedBudget       model.Budget
	cachedPreferences  model.Preferences
}

// New builds the container over the given repositories.
func New(transactions *repo.Transactions, categories *repo.Categories, budget *repo.Budget, preferences *repo.Preferences) *App {
	return &App{
		transactions:      transactions,
		categories:        categories,
		budget:            budget,
		preferences:       preferences,
		cachedBudget:      model.NewBudget(),
		cachedPreferences: model.Preferences{Currency: model.DefaultCurrency(), NotificationTime: model.DefaultNotificationTime, Language: "en"},
	}
}

// RefreshTransactions re-reads the transaction collection.
func (a *App) RefreshTransactions(ctx context.Context) {
	transactions, err := a.transactions.LoadAll(ctx)
	if err != nil {
		slog.Error("failed to refresh transactions, keeping empty cache", "error", err)
		transactions = []model.Transaction{}
	}
	a.mu.Lock()
	a.cachedTransactions = transactions
	a.mu.Unlock()
}

// RefreshCategories re-reads the custom category collection.
func (a *App) RefreshCategories(ctx context.Context) {
	categories, err := a.categories.LoadCustom(ctx)
	if err != nil {
		slog.Error("failed to refresh categories, keeping empty cache", "error", err)
		categories = []model.Category{}
	}
	a.mu.Lock()
	a.cachedCategories = categories
	a.mu.Unlock()
}

// RefreshBudget re-reads the budget structure.
func (a *App) RefreshBudget(ctx context.Context) {
	budget, err := a.budget.Load(ctx)
	if err != nil {
		slog.Error("failed to refresh budget, keeping empty cache", "error", err)
		budget = model.NewBudget()
	}
	a.mu.Lock()
	a.cachedBudget = budget
	a.mu.Unlock()
}

// RefreshPreferences re-reads the preference set.
func (a *App) RefreshPreferences(ctx context.Context) {
	preferences, err := a.preferences.Load(ctx)
	if err != nil {
		slog.Error("failed to refresh preferences, keeping defaults", "error", err)
		preferences = model.Preferences{
			Currency:         model.DefaultCurrency(),
			NotificationTime: model.DefaultNotificationTime,
			Language:         "en",
		}
	}
	a.mu.Lock()
	a.cachedPreferences = preferences
	a.mu.Unlock()
}

// RefreshAll re-reads everything. Called after restore so the in-memory
// state matches persisted state.
func (a *App) RefreshAll(ctx context.Context) {
	a.RefreshTransactions(ctx)
	a.RefreshCategories(ctx)
	a.RefreshBudget(ctx)
	a.RefreshPreferences(ctx)
}

// Transactions returns the cached transaction collection.
func (a *App) Transactions() []model.Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cachedTransactions
}

// Categories returns the cached custom categories.
func (a *App) Categories() []model.Category {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cachedCategories
}

// Budget returns the cached budget structure.
func (a *App) Budget() model.Budget {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cachedBudget
}

// Preferences returns the cached preference set.
func (a *App) Preferences() model.Preferences {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cachedPreferences
}

// Reset drops all cached data. Tests use it between cases; the container
// itself lives for the process lifetime.
func (a *App) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cachedTransactions = nil
	a.cachedCategories = nil
	a.cachedBudget = model.NewBudget()
	a.cachedPreferences = model.Preferences{
		Currency:         model.DefaultCurrency(),
		NotificationTime: model.DefaultNotificationTime,
		Language:         "en",
	}
}
