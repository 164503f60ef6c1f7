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

// CommentService handles comment-related business logic
type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
	logger      *logger.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo repository.CommentRepository,
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
	logger *logger.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		logger:      logger.WithComponent("comment-service"),
	}
}

// Create creates a comment on an article
func (s *CommentService) Create(ctx context.Context, articleID, userID string, req *domain.CommentCreateRequest) (*domain.CommentResponse, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &domain.Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		ArticleID: articleID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error("Failed to create comment", "article_id", articleID, "error", err)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("Comment created", "comment_id", comment.ID, "article_id", articleID)

	return s.enrich(ctx, comment), nil
}

// ListByArticle retrieves an article's comments with author display
// fields, oldest first
func (s *CommentService) ListByArticle(ctx context.Context, articleID string) ([]*domain.CommentResponse, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByArticle(ctx, articleID)
	if err != nil {
		s.logger.Error("Failed to list comments", "article_id", articleID, "error", err)
		return nil, err
	}

	responses := make([]*domain.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, s.enrich(ctx, comment))
	}
	return responses, nil
}

// Update updates a comment. Only its author may do so.
func (s *CommentService) Update(ctx context.Context, commentID, userID string, req *domain.CommentUpdateRequest) (*domain.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		return nil, domain.ErrForbidden
	}

	comment.Content = req.Content
	comment.UpdatedAt = time.Now()

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		s.logger.Error("Failed to update comment", "comment_id", commentID, "error", err)
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return s.enrich(ctx, comment), nil
}

// Delete deletes a comment. Only its author may do so.
func (s *CommentService) Delete(ctx context.Context, commentID, userID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return domain.ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		s.logger.Error("Failed to delete comment", "comment_id", commentID, "error", err)
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.Info("Comment deleted", "comment_id", commentID)
	return nil
}

// enrich attaches the comment author's display fields. A missing user
// leaves them empty rather than failing the whole response.
func (s *CommentService) enrich(ctx context.Context, comment *domain.Comment) *domain.CommentResponse {
	resp := &domain.CommentResponse{Comment: comment}
	user, err := s.userRepo.GetByID(ctx, comment.UserID)
	if err != nil {
		return resp
	}
	resp.UserFullName = user.FullName
	resp.UserProfilePicture = user.ProfilePicture
	return resp
}
