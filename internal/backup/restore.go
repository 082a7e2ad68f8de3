package backup

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/moneypal/moneypal/internal/common"
	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/storage"
)

// Summary describes a staged document for the pre-commit preview. Staging
// is read-only: abandoning the flow after Parse mutates nothing.
type Summary struct {
	Transactions int
	Categories   int
	Budgets      int
	Images       int
	Currency     string
	CreatedAt    string
}

// Parse decodes and validates a backup file. A body that is not JSON yields
// common.ErrInvalidFile; JSON missing any of the required top-level fields
// (transactions, categories, images, version) yields common.ErrInvalidBackup.
// No stored state is touched either way.
func Parse(data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidFile, err)
	}

	for _, required := range []string{"transactions", "categories", "images", "version"} {
		if _, ok := fields[required]; !ok {
			return nil, fmt.Errorf("%w: missing %q", common.ErrInvalidBackup, required)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidBackup, err)
	}
	if doc.Version == 0 {
		return nil, fmt.Errorf("%w: missing %q", common.ErrInvalidBackup, "version")
	}
	if doc.Images == nil {
		doc.Images = map[string]string{}
	}
	return &doc, nil
}

// Summary returns the human-readable counts shown before commit.
func (d *Document) Summary() Summary {
	name := d.Preference.MataUang.Name
	if name == "" {
		name = model.DefaultCurrency().Name
	}
	return Summary{
		Transactions: len(d.Transactions),
		Categories:   len(d.Categories),
		Budgets:      len(d.Budget.Budget),
		Images:       len(d.Images),
		Currency:     name,
		CreatedAt:    d.BackupCreatedAt,
	}
}

// Restore commits a staged document. Steps run in fixed order: materialize
// images, apply preferences, overwrite budget, reload categories, rebuild
// and bulk-save transactions, one write for the whole sequence. progress,
// when non-nil, is called with (current, total) as transactions are
// rebuilt. There is no rollback; see the package comment.
func (s *Service) Restore(ctx context.Context, doc *Document, progress func(current, total int)) error {
	if err := s.KV.Set(ctx, storage.KeyRestoreMarker, "true"); err != nil {
		return errCommit("marker", err)
	}

	uriMap, err := s.materializeImages(doc.Images)
	if err != nil {
		return errCommit("images", err)
	}

	if doc.Preference.MataUang.Symbol != "" {
		if err := s.Preferences.SetCurrency(ctx, doc.Preference.MataUang.Symbol); err != nil {
			return errCommit("currency", err)
		}
	}
	if err := s.Preferences.SetNotification(ctx, doc.Preference.Notifikasi.Opsi, doc.Preference.Notifikasi.Waktu); err != nil {
		return errCommit("notification", err)
	}

	if err := s.Budget.DeleteAll(ctx); err != nil {
		return errCommit("budget clear", err)
	}
	budget := doc.Budget
	if budget.Budget == nil {
		budget.Budget = map[string][]model.BudgetLimit{}
	}
	if budget.Default == nil {
		budget.Default = map[string]float64{}
	}
	if err := s.Budget.Save(ctx, budget); err != nil {
		return errCommit("budget", err)
	}

	if err := s.Categories.DeleteAll(ctx); err != nil {
		return errCommit("category clear", err)
	}
	for _, c := range doc.Categories {
		if err := s.Categories.SaveOne(ctx, c); err != nil {
			return errCommit("categories", err)
		}
	}

	// Clearing first is deliberate: an empty backup still wipes existing
	// transactions rather than becoming a no-op.
	if err := s.Transactions.DeleteAll(ctx); err != nil {
		return errCommit("transaction clear", err)
	}

	total := len(doc.Transactions)
	restored := make([]model.Transaction, 0, total)
	for i, t := range doc.Transactions {
		if t.ImageURI != "" {
			if newURI, ok := uriMap[t.ImageURI]; ok {
				t.ImageURI = newURI
			}
		}
		restored = append(restored, t)
		if progress != nil {
			progress(i+1, total)
		}
	}

	// One bulk write, not one write per transaction.
	if err := s.Transactions.SaveAll(ctx, restored); err != nil {
		return errCommit("transactions", err)
	}

	if err := s.KV.Delete(ctx, storage.KeyRestoreMarker); err != nil {
		return errCommit("marker clear", err)
	}

	slog.Info("restore committed",
		"transactions", total,
		"categories", len(doc.Categories),
		"images", len(uriMap))
	return nil
}

// materializeImages decodes each image-map entry to a newly generated local
// file and returns the old-reference to new-reference translation table. An
// empty map yields an empty table, leaving transaction URIs untouched.
func (s *Service) materializeImages(images map[string]string) (map[string]string, error) {
	uriMap := make(map[string]string, len(images))
	if len(images) == 0 {
		return uriMap, nil
	}

	if err := os.MkdirAll(s.ImageDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	for oldURI, encoded := range images {
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %q: %w", oldURI, err)
		}

		ext := "jpg"
		if i := strings.LastIndex(oldURI, "."); i >= 0 && i < len(oldURI)-1 {
			ext = oldURI[i+1:]
		}
		newPath := filepath.Join(s.ImageDir, fmt.Sprintf("restored_%s.%s", uuid.NewString(), ext))
		if err := os.WriteFile(newPath, data, 0600); err != nil {
			return nil, fmt.Errorf("failed to write image %q: %w", newPath, err)
		}
		uriMap[oldURI] = "file://" + newPath
	}
	return uriMap, nil
}

// InProgress reports whether a previous restore died mid-commit. Stored
// state may then be partially applied; the caller decides what to tell the
// user.
func InProgress(ctx context.Context, kv storage.KV) (bool, error) {
	_, ok, err := kv.Get(ctx, storage.KeyRestoreMarker)
	if err != nil {
		return false, err
	}
	return ok, nil
}
