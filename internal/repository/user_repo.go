package repository

import (
	"context"

	"github.com/minbar-press/minbar/internal/domain"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ExistsByUsername checks if a username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if an email is registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update updates an existing user
	Update(ctx context.Context, user *domain.User) error
}
