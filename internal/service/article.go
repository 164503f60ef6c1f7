package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/repository"
	"github.com/minbar-press/minbar/internal/validator"
	"github.com/minbar-press/minbar/pkg/logger"
)

// SearchIndexer defines the interface for search indexing
type SearchIndexer interface {
	IndexArticle(ctx context.Context, article *domain.Article) error
	UpdateArticle(ctx context.Context, article *domain.Article) error
	DeleteArticle(ctx context.Context, articleID string) error
}

// ArticleService handles article-related business logic
type ArticleService struct {
	articleRepo repository.ArticleRepository
	sectionRepo repository.SectionRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	renderer    *ContentRenderer
	indexer     SearchIndexer
	logger      *logger.Logger
}

// NewArticleService creates a new article service
func NewArticleService(
	articleRepo repository.ArticleRepository,
	sectionRepo repository.SectionRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	renderer *ContentRenderer,
	indexer SearchIndexer,
	logger *logger.Logger,
) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		sectionRepo: sectionRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		renderer:    renderer,
		indexer:     indexer,
		logger:      logger.WithComponent("article-service"),
	}
}

// normalizeTags trims, lowercases, and deduplicates tags
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(tag, "#")))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	return normalized
}

// Create creates a new article
func (s *ArticleService) Create(ctx context.Context, req *domain.ArticleCreateRequest) (*domain.Article, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	// Section must exist
	if _, err := s.sectionRepo.GetByID(ctx, req.SectionID); err != nil {
		return nil, err
	}

	now := time.Now()
	article := &domain.Article{
		ID:        uuid.New().String(),
		Title:     s.renderer.SanitizeStrict(req.Title),
		Content:   req.Content,
		Author:    s.renderer.SanitizeStrict(req.Author),
		SectionID: req.SectionID,
		ImageData: req.ImageData,
		ImageName: req.ImageName,
		Tags:      normalizeTags(req.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := article.Validate(); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		s.logger.Error("Failed to store article", "article_id", article.ID, "error", err)
		return nil, fmt.Errorf("failed to store article: %w", err)
	}

	// Index for search
	if s.indexer != nil {
		if err := s.indexer.IndexArticle(ctx, article); err != nil {
			s.logger.Warn("Failed to index article", "article_id", article.ID, "error", err)
			// Don't fail on indexing error
		}
	}

	s.logger.Info("Article created",
		"article_id", article.ID,
		"section_id", article.SectionID,
		"author", article.Author,
	)

	return article, nil
}

// GetByID retrieves an article with rendered content. When userID is
// non-empty the response carries whether that user has liked it.
func (s *ArticleService) GetByID(ctx context.Context, id, userID string) (*domain.ArticleResponse, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &domain.ArticleResponse{Article: article}

	contentHTML, err := s.renderer.Render(article.Content)
	if err != nil {
		s.logger.Warn("Failed to render article content", "article_id", id, "error", err)
	} else {
		resp.ContentHTML = contentHTML
	}

	if userID != "" {
		liked, err := s.likeRepo.Exists(ctx, userID, id)
		if err != nil {
			s.logger.Warn("Failed to check like state", "article_id", id, "error", err)
		} else {
			resp.IsLiked = &liked
		}
	}

	return resp, nil
}

// List retrieves articles with pagination and filtering
func (s *ArticleService) List(ctx context.Context, filter *domain.ArticleListFilter) ([]*domain.Article, int, error) {
	// Set defaults
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100 // Max limit
	}

	articles, total, err := s.articleRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list articles", "error", err)
		return nil, 0, err
	}

	return articles, total, nil
}

// ListBySection retrieves all articles in a section, newest first
func (s *ArticleService) ListBySection(ctx context.Context, sectionID string) ([]*domain.Article, error) {
	if _, err := s.sectionRepo.GetByID(ctx, sectionID); err != nil {
		return nil, err
	}
	return s.articleRepo.ListBySection(ctx, sectionID)
}

// ListByTag retrieves all articles carrying a tag, newest first
func (s *ArticleService) ListByTag(ctx context.Context, tag string) ([]*domain.Article, error) {
	tag = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(tag, "#")))
	return s.articleRepo.ListByTag(ctx, tag)
}

// Update updates an existing article
func (s *ArticleService) Update(ctx context.Context, id string, req *domain.ArticleUpdateRequest) (*domain.Article, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update fields
	if req.Title != "" {
		article.Title = s.renderer.SanitizeStrict(req.Title)
	}
	if req.Content != "" {
		article.Content = req.Content
	}
	if req.Author != "" {
		article.Author = s.renderer.SanitizeStrict(req.Author)
	}
	if req.SectionID != "" && req.SectionID != article.SectionID {
		if _, err := s.sectionRepo.GetByID(ctx, req.SectionID); err != nil {
			return nil, err
		}
		article.SectionID = req.SectionID
	}
	if req.ImageData != "" {
		article.ImageData = req.ImageData
		article.ImageName = req.ImageName
	}
	if req.Tags != nil {
		article.Tags = normalizeTags(req.Tags)
	}
	article.UpdatedAt = time.Now()

	if err := article.Validate(); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		s.logger.Error("Failed to update article", "article_id", id, "error", err)
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	// Update search index
	if s.indexer != nil {
		if err := s.indexer.UpdateArticle(ctx, article); err != nil {
			s.logger.Warn("Failed to update article index", "article_id", id, "error", err)
		}
	}

	s.logger.Info("Article updated", "article_id", id)

	return article, nil
}

// Delete deletes an article along with its comments and likes
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	if _, err := s.articleRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.likeRepo.DeleteByArticle(ctx, id); err != nil {
		s.logger.Error("Failed to delete likes", "article_id", id, "error", err)
		return fmt.Errorf("failed to delete likes: %w", err)
	}
	if err := s.commentRepo.DeleteByArticle(ctx, id); err != nil {
		s.logger.Error("Failed to delete comments", "article_id", id, "error", err)
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	if err := s.articleRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete article", "article_id", id, "error", err)
		return fmt.Errorf("failed to delete article: %w", err)
	}

	// Delete from search index
	if s.indexer != nil {
		if err := s.indexer.DeleteArticle(ctx, id); err != nil {
			s.logger.Warn("Failed to delete article from index", "article_id", id, "error", err)
		}
	}

	s.logger.Info("Article deleted", "article_id", id)

	return nil
}
