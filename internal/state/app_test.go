package state

import (
	"context"
	"testing"

	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/repo"
	"github.com/moneypal/moneypal/internal/storage"
)

func newTestApp(kv *storage.MemoryKV) *App {
	transactions := repo.NewTransactions(kv)
	return New(
		transactions,
		repo.NewCategories(kv, transactions),
		repo.NewBudget(kv),
		repo.NewPreferences(kv),
	)
}

func TestApp_RefreshPopulatesCaches(t *testing.T) {
	kv := storage.NewMemoryKV()
	app := newTestApp(kv)
	ctx := context.Background()

	tx := model.Transaction{
		ID: "tx_1", Title: "Coffee", Amount: 3, Type: model.TypeExpense,
		Date: "2025-02-01", CreatedAt: "2025-02-01T09:00:00Z", Category: "food",
	}
	if err := repo.NewTransactions(kv).Add(ctx, tx); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	transactions := repo.NewTransactions(kv)
	if err := repo.NewCategories(kv, transactions).SaveOne(ctx, model.Category{
		ID: "tips", Name: "Tips", Icon: "💰", Color: "#00B894", Type: model.TypeIncome,
	}); err != nil {
		t.Fatalf("SaveOne failed: %v", err)
	}
	if err := repo.NewBudget(kv).SetLimit(ctx, "2025-02",
		model.BudgetLimit{CategoryID: "all", Amount: 900}, false); err != nil {
		t.Fatalf("SetLimit failed: %v", err)
	}
	if err := repo.NewPreferences(kv).SetLanguage(ctx, "id"); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}

	if len(app.Transactions()) != 0 {
		t.Fatal("cache should be empty before the first refresh")
	}

	app.RefreshAll(ctx)

	got := app.Transactions()
	if len(got) != 1 || got[0].ID != "tx_1" {
		t.Errorf("cached transactions = %+v", got)
	}
	categories := app.Categories()
	if len(categories) != 1 || categories[0].ID != "tips" {
		t.Errorf("cached categories = %+v", categories)
	}
	if app.Budget().Limit("2025-02", "all") != 900 {
		t.Errorf("cached budget = %+v", app.Budget())
	}
	if app.Preferences().Language != "id" {
		t.Errorf("cached language = %q, want id", app.Preferences().Language)
	}
}

func TestApp_RefreshFailureFallsBackToDefaults(t *testing.T) {
	kv := storage.NewMemoryKV()
	app := newTestApp(kv)
	ctx := context.Background()

	if err := repo.NewTransactions(kv).Add(ctx, model.Transaction{
		ID: "tx_1", Title: "Coffee", Amount: 3, Type: model.TypeExpense,
		Date: "2025-02-01", CreatedAt: "2025-02-01T09:00:00Z",
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	app.RefreshAll(ctx)
	if len(app.Transactions()) != 1 {
		t.Fatal("expected one cached transaction before fault injection")
	}

	// A failing store must not poison the caches or panic; refreshes fall
	// back to empty defaults.
	kv.FailReads = true
	app.RefreshAll(ctx)

	if len(app.Transactions()) != 0 {
		t.Errorf("transactions cache = %+v, want empty", app.Transactions())
	}
	if len(app.Categories()) != 0 {
		t.Errorf("categories cache = %+v, want empty", app.Categories())
	}
	if len(app.Budget().Budget) != 0 || len(app.Budget().Default) != 0 {
		t.Errorf("budget cache = %+v, want empty", app.Budget())
	}
	p := app.Preferences()
	if p.Currency.Symbol != "$" || p.Language != "en" {
		t.Errorf("preferences cache = %+v, want defaults", p)
	}
}

func TestApp_Reset(t *testing.T) {
	kv := storage.NewMemoryKV()
	app := newTestApp(kv)
	ctx := context.Background()

	if err := repo.NewTransactions(kv).Add(ctx, model.Transaction{
		ID: "tx_1", Title: "Coffee", Amount: 3, Type: model.TypeExpense,
		Date: "2025-02-01", CreatedAt: "2025-02-01T09:00:00Z",
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	app.RefreshAll(ctx)

	app.Reset()

	if len(app.Transactions()) != 0 {
		t.Errorf("transactions not cleared: %+v", app.Transactions())
	}
	if app.Preferences().Currency.Symbol != "$" {
		t.Errorf("preferences not reset: %+v", app.Preferences())
	}
	if app.Budget().Limit("2025-02", "all") != 0 {
		t.Errorf("budget not reset: %+v", app.Budget())
	}
}
