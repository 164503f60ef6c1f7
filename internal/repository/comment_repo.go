package repository

import (
	"context"

	"github.com/minbar-press/minbar/internal/domain"
)

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID retrieves a comment by ID
	GetByID(ctx context.Context, id string) (*domain.Comment, error)

	// ListByArticle retrieves an article's comments, oldest first
	ListByArticle(ctx context.Context, articleID string) ([]*domain.Comment, error)

	// Update updates an existing comment
	Update(ctx context.Context, comment *domain.Comment) error

	// Delete deletes a comment by ID
	Delete(ctx context.Context, id string) error

	// DeleteByArticle deletes all comments on an article
	DeleteByArticle(ctx context.Context, articleID string) error
}

// LikeRepository defines the interface for like persistence
type LikeRepository interface {
	// Create records a like
	Create(ctx context.Context, like *domain.Like) error

	// Exists checks whether a user has liked an article
	Exists(ctx context.Context, userID, articleID string) (bool, error)

	// Delete removes a user's like on an article
	Delete(ctx context.Context, userID, articleID string) error

	// DeleteByArticle removes all likes on an article
	DeleteByArticle(ctx context.Context, articleID string) error
}
