package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestKV(t *testing.T) *SQLiteKV {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	kv, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	if err := kv.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return kv
}

func TestSQLiteKV_RoundTrip(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := kv.Set(ctx, KeyTransactions, `[{"id":"t1"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := kv.Get(ctx, KeyTransactions)
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if value != `[{"id":"t1"}]` {
		t.Errorf("Get = %q", value)
	}
}

func TestSQLiteKV_LastWriteWins(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	for _, v := range []string{"one", "two", "three"} {
		if err := kv.Set(ctx, KeyTheme, v); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	value, _, err := kv.Get(ctx, KeyTheme)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "three" {
		t.Errorf("Get = %q, want three", value)
	}
}

func TestSQLiteKV_Delete(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	if err := kv.Set(ctx, KeyRestoreMarker, "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Delete(ctx, KeyRestoreMarker); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, KeyRestoreMarker); ok {
		t.Error("key still present after Delete")
	}

	// Deleting an absent key is not an error.
	if err := kv.Delete(ctx, KeyRestoreMarker); err != nil {
		t.Errorf("Delete(absent) = %v", err)
	}
}

func TestSQLiteKV_Validation(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	if _, _, err := kv.Get(ctx, ""); err == nil {
		t.Error("Get with empty key should fail")
	}
	if err := kv.Set(ctx, "  ", "v"); err == nil {
		t.Error("Set with blank key should fail")
	}
}

func TestSQLiteKV_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	kv, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := kv.Set(ctx, KeyLanguage, "id"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if err := reopened.Migrate(ctx); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}

	value, ok, err := reopened.Get(ctx, KeyLanguage)
	if err != nil || !ok || value != "id" {
		t.Errorf("Get after reopen = %q ok=%v err=%v", value, ok, err)
	}
}
