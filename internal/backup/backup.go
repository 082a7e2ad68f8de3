// Package backup implements the backup and restore pipeline: one JSON
// snapshot of all user data plus embedded receipt images.
//
// Restore commits in a fixed order (images, preferences, budget,
// categories, transactions) with no rollback: a failure mid-commit leaves
// earlier steps applied. The persisted restore marker makes that condition
// detectable at next start; it is not repaired automatically.
package backup

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/moneypal/moneypal/internal/model"
	"github.com/moneypal/moneypal/internal/repo"
	"github.com/moneypal/moneypal/internal/storage"
)

// FormatVersion is the backup document format version this build writes.
const FormatVersion = 1

// Document is the backup snapshot, exactly as serialized to disk. Field
// names are part of the on-disk format and must not change.
type Document struct {
	Transactions    []model.Transaction `json:"transactions"`
	Categories      []model.Category    `json:"categories"`
	Images          map[string]string   `json:"images"`
	Budget          model.Budget        `json:"budget"`
	Preference      Preference          `json:"preference"`
	BackupCreatedAt string              `json:"backupCreatedAt"`
	Version         int                 `json:"version"`
}

// Preference is the preference block of a backup document.
type Preference struct {
	MataUang   model.Currency `json:"mataUang"`
	Notifikasi Notification   `json:"notifikasi"`
}

// Notification is the daily-reminder block of a backup document.
type Notification struct {
	Opsi  bool                   `json:"opsi"`
	Waktu model.NotificationTime `json:"waktu"`
}

// Service runs backups and restores over the domain repositories, talking
// to them directly rather than through the state container.
type Service struct {
	Transactions *repo.Transactions
	Categories   *repo.Categories
	Budget       *repo.Budget
	Preferences  *repo.Preferences

	// KV is used only for the restore-in-progress marker.
	KV storage.KV

	// ImageDir is where restored images are materialized.
	ImageDir string
}

// Create collects all repository state plus locally-referenced images into
// one document. Every file-backed image URI appearing in a transaction gets
// a base64 entry in the image map; unreadable images are skipped so a
// single missing file does not block the backup.
func (s *Service) Create(ctx context.Context) (*Document, error) {
	transactions, err := s.Transactions.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.Categories.LoadCustom(ctx)
	if err != nil {
		return nil, err
	}
	budget, err := s.Budget.Load(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.Preferences.Load(ctx)
	if err != nil {
		return nil, err
	}

	images := make(map[string]string)
	for _, t := range transactions {
		if t.ImageURI == "" {
			continue
		}
		if _, dup := images[t.ImageURI]; dup {
			continue
		}
		data, readErr := os.ReadFile(localPath(t.ImageURI))
		if readErr != nil {
			continue
		}
		images[t.ImageURI] = base64.StdEncoding.EncodeToString(data)
	}

	return &Document{
		Transactions: transactions,
		Categories:   categories,
		Images:       images,
		Budget:       budget,
		Preference: Preference{
			MataUang: prefs.Currency,
			Notifikasi: Notification{
				Opsi:  prefs.NotificationEnabled,
				Waktu: prefs.NotificationTime,
			},
		},
		BackupCreatedAt: time.Now().UTC().Format(time.RFC3339),
		Version:         FormatVersion,
	}, nil
}

// localPath strips the file:// scheme a stored image URI may carry.
func localPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// errCommit wraps a commit-step failure. State already written stays
// written.
func errCommit(step string, err error) error {
	return fmt.Errorf("restore failed at %s: %w", step, err)
}
