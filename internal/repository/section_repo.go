package repository

import (
	"context"

	"github.com/minbar-press/minbar/internal/domain"
)

// SectionRepository defines the interface for section persistence
type SectionRepository interface {
	// Create creates a new section
	Create(ctx context.Context, section *domain.Section) error

	// GetByID retrieves a section by ID
	GetByID(ctx context.Context, id string) (*domain.Section, error)

	// List retrieves all sections in creation order
	List(ctx context.Context) ([]*domain.Section, error)

	// Delete deletes a section by ID
	Delete(ctx context.Context, id string) error
}
