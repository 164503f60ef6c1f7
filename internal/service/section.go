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

// SectionService handles section-related business logic
type SectionService struct {
	sectionRepo repository.SectionRepository
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	indexer     SearchIndexer
	logger      *logger.Logger
}

// NewSectionService creates a new section service
func NewSectionService(
	sectionRepo repository.SectionRepository,
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	indexer SearchIndexer,
	logger *logger.Logger,
) *SectionService {
	return &SectionService{
		sectionRepo: sectionRepo,
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		indexer:     indexer,
		logger:      logger.WithComponent("section-service"),
	}
}

// Create creates a new section
func (s *SectionService) Create(ctx context.Context, req *domain.SectionCreateRequest) (*domain.Section, error) {
	section := &domain.Section{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := section.Validate(); err != nil {
		return nil, err
	}

	if err := s.sectionRepo.Create(ctx, section); err != nil {
		s.logger.Error("Failed to create section", "name", req.Name, "error", err)
		return nil, fmt.Errorf("failed to create section: %w", err)
	}

	s.logger.Info("Section created", "section_id", section.ID, "name", section.Name)
	return section, nil
}

// GetByID retrieves a section by ID
func (s *SectionService) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	return s.sectionRepo.GetByID(ctx, id)
}

// List retrieves all sections in creation order
func (s *SectionService) List(ctx context.Context) ([]*domain.Section, error) {
	sections, err := s.sectionRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list sections", "error", err)
		return nil, err
	}
	return sections, nil
}

// Delete deletes a section and everything under it: its articles and
// their comments and likes
func (s *SectionService) Delete(ctx context.Context, id string) error {
	if _, err := s.sectionRepo.GetByID(ctx, id); err != nil {
		return err
	}

	articles, err := s.articleRepo.ListBySection(ctx, id)
	if err != nil {
		return err
	}
	for _, article := range articles {
		if err := s.likeRepo.DeleteByArticle(ctx, article.ID); err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}
		if err := s.commentRepo.DeleteByArticle(ctx, article.ID); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
	}

	deletedIDs, err := s.articleRepo.DeleteBySection(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete section articles", "section_id", id, "error", err)
		return fmt.Errorf("failed to delete section articles: %w", err)
	}

	if s.indexer != nil {
		for _, articleID := range deletedIDs {
			if err := s.indexer.DeleteArticle(ctx, articleID); err != nil {
				s.logger.Warn("Failed to deindex article", "article_id", articleID, "error", err)
			}
		}
	}

	if err := s.sectionRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete section", "section_id", id, "error", err)
		return fmt.Errorf("failed to delete section: %w", err)
	}

	s.logger.Info("Section deleted", "section_id", id, "articles_removed", len(deletedIDs))
	return nil
}
