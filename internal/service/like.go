package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/repository"
	"github.com/minbar-press/minbar/pkg/logger"
)

// LikeService handles like/unlike business logic
type LikeService struct {
	likeRepo    repository.LikeRepository
	articleRepo repository.ArticleRepository
	logger      *logger.Logger
}

// NewLikeService creates a new like service
func NewLikeService(
	likeRepo repository.LikeRepository,
	articleRepo repository.ArticleRepository,
	logger *logger.Logger,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		articleRepo: articleRepo,
		logger:      logger.WithComponent("like-service"),
	}
}

// Like records a user's like on an article and returns the new count
func (s *LikeService) Like(ctx context.Context, articleID, userID string) (int, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return 0, err
	}

	exists, err := s.likeRepo.Exists(ctx, userID, articleID)
	if err != nil {
		return 0, fmt.Errorf("failed to check like: %w", err)
	}
	if exists {
		return article.LikesCount, domain.ErrAlreadyLiked
	}

	like := &domain.Like{
		ID:        uuid.New().String(),
		UserID:    userID,
		ArticleID: articleID,
		CreatedAt: time.Now(),
	}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		s.logger.Error("Failed to record like", "article_id", articleID, "error", err)
		return 0, fmt.Errorf("failed to record like: %w", err)
	}

	if err := s.articleRepo.AdjustLikes(ctx, articleID, 1); err != nil {
		s.logger.Error("Failed to bump like counter", "article_id", articleID, "error", err)
		return 0, fmt.Errorf("failed to update like counter: %w", err)
	}

	s.logger.Debug("Article liked", "article_id", articleID, "user_id", userID)
	return article.LikesCount + 1, nil
}

// Unlike removes a user's like on an article and returns the new count
func (s *LikeService) Unlike(ctx context.Context, articleID, userID string) (int, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return 0, err
	}

	if err := s.likeRepo.Delete(ctx, userID, articleID); err != nil {
		return article.LikesCount, err
	}

	if err := s.articleRepo.AdjustLikes(ctx, articleID, -1); err != nil {
		s.logger.Error("Failed to drop like counter", "article_id", articleID, "error", err)
		return 0, fmt.Errorf("failed to update like counter: %w", err)
	}

	count := article.LikesCount - 1
	if count < 0 {
		count = 0
	}

	s.logger.Debug("Article unliked", "article_id", articleID, "user_id", userID)
	return count, nil
}

// IsLiked reports whether a user has liked an article
func (s *LikeService) IsLiked(ctx context.Context, articleID, userID string) (bool, error) {
	return s.likeRepo.Exists(ctx, userID, articleID)
}
