package service

import (
	"context"
	"sort"

	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/repository"
	"github.com/minbar-press/minbar/pkg/logger"
	"github.com/minbar-press/minbar/pkg/tags"
)

// TagService aggregates tag usage across articles
type TagService struct {
	articleRepo repository.ArticleRepository
	logger      *logger.Logger
}

// NewTagService creates a new tag service
func NewTagService(articleRepo repository.ArticleRepository, logger *logger.Logger) *TagService {
	return &TagService{
		articleRepo: articleRepo,
		logger:      logger.WithComponent("tag-service"),
	}
}

// List returns every tag with its usage count and cloud weight,
// ordered by count descending then name
func (s *TagService) List(ctx context.Context) ([]*domain.TagInfo, error) {
	counts, err := s.articleRepo.TagCounts(ctx)
	if err != nil {
		s.logger.Error("Failed to aggregate tag counts", "error", err)
		return nil, err
	}

	weights := tags.ComputeWeights(counts)

	infos := make([]*domain.TagInfo, 0, len(counts))
	for name, count := range counts {
		infos = append(infos, &domain.TagInfo{
			Name:   name,
			Count:  count,
			Weight: weights[name],
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Count != infos[j].Count {
			return infos[i].Count > infos[j].Count
		}
		return infos[i].Name < infos[j].Name
	})

	return infos, nil
}
