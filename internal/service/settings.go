package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/repository"
	"github.com/minbar-press/minbar/pkg/logger"
)

// SettingsService handles the site-wide settings record
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	logger       *logger.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, logger *logger.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logger.WithComponent("settings-service"),
	}
}

// Get returns the site settings, falling back to defaults when no
// record has been saved yet
func (s *SettingsService) Get(ctx context.Context) (*domain.SiteSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.SiteSettings{
				SiteName:  domain.DefaultSiteName,
				UpdatedAt: time.Now(),
			}, nil
		}
		s.logger.Error("Failed to load settings", "error", err)
		return nil, err
	}
	return settings, nil
}

// UpdateLogo replaces the site logo
func (s *SettingsService) UpdateLogo(ctx context.Context, req *domain.LogoUpdateRequest) (*domain.SiteSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	settings.LogoData = req.LogoData
	settings.LogoName = req.LogoName
	settings.UpdatedAt = time.Now()

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		s.logger.Error("Failed to save settings", "error", err)
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info("Site logo updated", "logo_name", req.LogoName)
	return settings, nil
}
