package badger

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/minbar-press/minbar/internal/domain"
)

var settingsKey = []byte("settings:site")

// SettingsRepo implements SettingsRepository using BadgerDB
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new BadgerDB-based settings repository
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get retrieves the settings record, or domain.ErrNotFound if none exists
func (r *SettingsRepo) Get(ctx context.Context) (*domain.SiteSettings, error) {
	var settings domain.SiteSettings
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(settingsKey)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &settings)
		})
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save creates or replaces the settings record
func (r *SettingsRepo) Save(ctx context.Context, settings *domain.SiteSettings) error {
	return r.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(settings)
		if err != nil {
			return err
		}
		return txn.Set(settingsKey, data)
	})
}
