package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/storage"
)

func TestPreferences_Defaults(t *testing.T) {
	r := NewPreferences(storage.NewMemoryKV())
	ctx := context.Background()

	p, err := r.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Currency.Symbol != "$" {
		t.Errorf("default currency = %q, want $", p.Currency.Symbol)
	}
	if p.NotificationEnabled {
		t.Error("reminder should default to disabled")
	}
	if p.NotificationTime != (model.NotificationTime{Hour: 20, Minute: 0}) {
		t.Errorf("default reminder time = %+v, want 20:00", p.NotificationTime)
	}
	if p.Language != "en" {
		t.Errorf("default language = %q, want en", p.Language)
	}
	if p.PIN != "" {
		t.Errorf("default PIN = %q, want empty", p.PIN)
	}
}

func TestPreferences_Currency(t *testing.T) {
	kv := storage.NewMemoryKV()
	r := NewPreferences(kv)
	ctx := context.Background()

	if err := r.SetCurrency(ctx, "Rp"); err != nil {
		t.Fatalf("SetCurrency failed: %v", err)
	}
	c, err := r.Currency(ctx)
	if err != nil {
		t.Fatalf("Currency failed: %v", err)
	}
	if c.Symbol != "Rp" {
		t.Errorf("currency = %q, want Rp", c.Symbol)
	}

	// A stale stored symbol falls back to the default instead of failing.
	if err := kv.Set(ctx, storage.KeyCurrency, "₩"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	c, err = r.Currency(ctx)
	if err != nil {
		t.Fatalf("Currency failed: %v", err)
	}
	if c.Symbol != "$" {
		t.Errorf("unknown stored symbol should yield $, got %q", c.Symbol)
	}
}

func TestPreferences_SetCurrency_RejectsUnknown(t *testing.T) {
	r := NewPreferences(storage.NewMemoryKV())

	err := r.SetCurrency(context.Background(), "₩")
	if !errors.Is(err, model.ErrUnknownCurrency) {
		t.Errorf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestPreferences_Notification(t *testing.T) {
	r := NewPreferences(storage.NewMemoryKV())
	ctx := context.Background()

	when := model.NotificationTime{Hour: 7, Minute: 30}
	if err := r.SetNotification(ctx, true, when); err != nil {
		t.Fatalf("SetNotification failed: %v", err)
	}

	enabled, got, err := r.Notification(ctx)
	if err != nil {
		t.Fatalf("Notification failed: %v", err)
	}
	if !enabled {
		t.Error("reminder should be enabled")
	}
	if got != when {
		t.Errorf("reminder time = %+v, want %+v", got, when)
	}

	if err := r.SetNotification(ctx, false, when); err != nil {
		t.Fatalf("SetNotification failed: %v", err)
	}
	enabled, got, err = r.Notification(ctx)
	if err != nil {
		t.Fatalf("Notification failed: %v", err)
	}
	if enabled {
		t.Error("reminder should be disabled")
	}
	if got != when {
		t.Errorf("time should survive disabling, got %+v", got)
	}
}

func TestPreferences_Theme(t *testing.T) {
	r := NewPreferences(storage.NewMemoryKV())
	ctx := context.Background()

	theme, err := r.Theme(ctx)
	if err != nil {
		t.Fatalf("Theme failed: %v", err)
	}
	if theme != "sistem" {
		t.Errorf("default theme = %q, want sistem", theme)
	}

	if err := r.SetTheme(ctx, "dark"); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}
	if theme, _ = r.Theme(ctx); theme != "dark" {
		t.Errorf("theme = %q, want dark", theme)
	}

	if err := r.SetTheme(ctx, "neon"); err == nil {
		t.Error("expected error for invalid theme")
	}
}

func TestPreferences_PINRoundTrip(t *testing.T) {
	r := NewPreferences(storage.NewMemoryKV())
	ctx := context.Background()

	if err := r.SetPIN(ctx, "123456"); err != nil {
		t.Fatalf("SetPIN failed: %v", err)
	}
	pin, err := r.PIN(ctx)
	if err != nil {
		t.Fatalf("PIN failed: %v", err)
	}
	if pin != "123456" {
		t.Errorf("pin = %q, want 123456", pin)
	}

	// Disabling the lock is storing the empty string.
	if err := r.SetPIN(ctx, ""); err != nil {
		t.Fatalf("SetPIN failed: %v", err)
	}
	if pin, _ = r.PIN(ctx); pin != "" {
		t.Errorf("pin should be cleared, got %q", pin)
	}
}

func TestPreferences_ReadFailurePropagates(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.FailReads = true
	r := NewPreferences(kv)

	_, err := r.Load(context.Background())
	if !errors.Is(err, storage.ErrReadFailed) {
		t.Errorf("expected ErrReadFailed, got %v", err)
	}
}
