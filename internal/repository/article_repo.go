package repository

import (
	"context"

	"github.com/minbar-press/minbar/internal/domain"
)

// ArticleRepository defines the interface for article persistence
type ArticleRepository interface {
	// Create creates a new article
	Create(ctx context.Context, article *domain.Article) error

	// GetByID retrieves an article by ID
	GetByID(ctx context.Context, id string) (*domain.Article, error)

	// GetByIDs retrieves articles by IDs, skipping missing ones and
	// preserving input order
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Article, error)

	// Update updates an existing article
	Update(ctx context.Context, article *domain.Article) error

	// Delete deletes an article by ID
	Delete(ctx context.Context, id string) error

	// DeleteBySection deletes all articles in a section, returning the
	// IDs of the deleted articles
	DeleteBySection(ctx context.Context, sectionID string) ([]string, error)

	// List retrieves articles with pagination and filtering
	List(ctx context.Context, filter *domain.ArticleListFilter) ([]*domain.Article, int, error)

	// ListBySection retrieves all articles in a section, newest first
	ListBySection(ctx context.Context, sectionID string) ([]*domain.Article, error)

	// ListByTag retrieves all articles carrying a tag, newest first
	ListByTag(ctx context.Context, tag string) ([]*domain.Article, error)

	// AdjustLikes changes an article's like counter by delta
	AdjustLikes(ctx context.Context, id string, delta int) error

	// TagCounts returns the usage count for every tag across all articles
	TagCounts(ctx context.Context) (map[string]int, error)
}
