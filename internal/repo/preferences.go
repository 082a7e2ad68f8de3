package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/storage"
)

// Preferences persists the user preference set, one key per field.
type Preferences struct {
	kv storage.KV
}

// NewPreferences creates a preference repository over the given store.
func NewPreferences(kv storage.KV) *Preferences {
	return &Preferences{kv: kv}
}

// Currency returns the selected currency. An unset or unrecognized stored
// symbol yields the default currency, not an error: a stale symbol must
// never break callers.
func (r *Preferences) Currency(ctx context.Context) (model.Currency, error) {
	raw, ok, err := r.kv.Get(ctx, storage.KeyCurrency)
	if err != nil {
		return model.DefaultCurrency(), fmt.Errorf("failed to load currency: %w", err)
	}
	if !ok {
		return model.DefaultCurrency(), nil
	}
	if c, found := model.CurrencyBySymbol(raw); found {
		return c, nil
	}
	return model.DefaultCurrency(), nil
}

// SetCurrency stores a currency selection. Unknown symbols are rejected.
func (r *Preferences) SetCurrency(ctx context.Context, symbol string) error {
	if _, ok := model.CurrencyBySymbol(symbol); !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownCurrency, symbol)
	}
	if err := r.kv.Set(ctx, storage.KeyCurrency, symbol); err != nil {
		return fmt.Errorf("failed to save currency: %w", err)
	}
	return nil
}

// Notification returns the daily-reminder toggle and its time of day.
// Defaults: disabled, 20:00.
func (r *Preferences) Notification(ctx context.Context) (bool, model.NotificationTime, error) {
	enabledRaw, _, err := r.kv.Get(ctx, storage.KeyNotificationEnabled)
	if err != nil {
		return false, model.DefaultNotificationTime, fmt.Errorf("failed to load notification option: %w", err)
	}

	when := model.DefaultNotificationTime
	timeRaw, ok, err := r.kv.Get(ctx, storage.KeyNotificationTime)
	if err != nil {
		return false, when, fmt.Errorf("failed to load notification time: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(timeRaw), &when); err != nil {
			return false, model.DefaultNotificationTime, fmt.Errorf("failed to decode notification time: %w", err)
		}
	}

	return enabledRaw == "true", when, nil
}

// SetNotification stores both the toggle and the time of day.
func (r *Preferences) SetNotification(ctx context.Context, enabled bool, when model.NotificationTime) error {
	if err := r.kv.Set(ctx, storage.KeyNotificationEnabled, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("failed to save notification option: %w", err)
	}
	raw, err := json.Marshal(when)
	if err != nil {
		return fmt.Errorf("failed to encode notification time: %w", err)
	}
	if err := r.kv.Set(ctx, storage.KeyNotificationTime, string(raw)); err != nil {
		return fmt.Errorf("failed to save notification time: %w", err)
	}
	return nil
}

// Language returns the UI language code, defaulting to "en".
func (r *Preferences) Language(ctx context.Context) (string, error) {
	raw, ok, err := r.kv.Get(ctx, storage.KeyLanguage)
	if err != nil {
		return "en", fmt.Errorf("failed to load language: %w", err)
	}
	if !ok || raw == "" {
		return "en", nil
	}
	return raw, nil
}

// SetLanguage stores the UI language code.
func (r *Preferences) SetLanguage(ctx context.Context, code string) error {
	if err := r.kv.Set(ctx, storage.KeyLanguage, code); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	return nil
}

// PIN returns the numeric lock PIN. Empty means the lock is disabled.
func (r *Preferences) PIN(ctx context.Context) (string, error) {
	raw, _, err := r.kv.Get(ctx, storage.KeyPIN)
	if err != nil {
		return "", fmt.Errorf("failed to load pin: %w", err)
	}
	return raw, nil
}

// SetPIN stores the lock PIN; an empty string disables the lock.
func (r *Preferences) SetPIN(ctx context.Context, pin string) error {
	if err := r.kv.Set(ctx, storage.KeyPIN, pin); err != nil {
		return fmt.Errorf("failed to save pin: %w", err)
	}
	return nil
}

// Theme returns the stored theme preference, defaulting to "sistem".
func (r *Preferences) Theme(ctx context.Context) (string, error) {
	raw, ok, err := r.kv.Get(ctx, storage.KeyTheme)
	if err != nil {
		return "sistem", fmt.Errorf("failed to load theme: %w", err)
	}
	if !ok {
		return "sistem", nil
	}
	return raw, nil
}

// SetTheme stores the theme preference.
func (r *Preferences) SetTheme(ctx context.Context, theme string) error {
	switch theme {
	case "sistem", "dark", "light":
	default:
		return fmt.Errorf("invalid theme %q", theme)
	}
	if err := r.kv.Set(ctx, storage.KeyTheme, theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Load gathers the whole preference set in one call.
func (r *Preferences) Load(ctx context.Context) (model.Preferences, error) {
	var p model.Preferences
	var err error

	if p.Currency, err = r.Currency(ctx); err != nil {
		return p, err
	}
	if p.NotificationEnabled, p.NotificationTime, err = r.Notification(ctx); err != nil {
		return p, err
	}
	if p.Language, err = r.Language(ctx); err != nil {
		return p, err
	}
	if p.PIN, err = r.PIN(ctx); err != nil {
		return p, err
	}
	return p, nil
}
