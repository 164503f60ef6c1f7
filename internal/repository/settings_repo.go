package repository

import (
	"context"

	"github.com/minbar-press/minbar/internal/domain"
)

// SettingsRepository defines the interface for the single site settings record
type SettingsRepository interface {
	// Get retrieves the settings record, or domain.ErrNotFound if none exists
	Get(ctx context.Context) (*domain.SiteSettings, error)

	// Save creates or replaces the settings record
	Save(ctx context.Context, settings *domain.SiteSettings) error
}
