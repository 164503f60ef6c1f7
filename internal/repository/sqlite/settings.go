package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minbar-press/minbar/internal/domain"
)

// SettingsRepo implements the SettingsRepository interface using SQLite
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get retrieves the settings record
func (r *SettingsRepo) Get(ctx context.Context) (*domain.SiteSettings, error) {
	query := `SELECT id, logo_data, logo_name, site_name, updated_at FROM site_settings LIMIT 1`

	var settings domain.SiteSettings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&settings.ID,
		&settings.LogoData,
		&settings.LogoName,
		&settings.SiteName,
		&settings.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

// Save creates or replaces the settings record
func (r *SettingsRepo) Save(ctx context.Context, settings *domain.SiteSettings) error {
	query := `
		INSERT INTO site_settings (id, logo_data, logo_name, site_name, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			logo_data = excluded.logo_data,
			logo_name = excluded.logo_name,
			site_name = excluded.site_name,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		settings.ID,
		settings.LogoData,
		settings.LogoName,
		settings.SiteName,
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
