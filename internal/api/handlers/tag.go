package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/service"
	"github.com/minbar-press/minbar/pkg/logger"
	"github.com/minbar-press/minbar/pkg/response"
)

// TagHandler handles tag listing requests
type TagHandler struct {
	tagService     *service.TagService
	articleService *service.ArticleService
	logger         *logger.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(
	tagService *service.TagService,
	articleService *service.ArticleService,
	logger *logger.Logger,
) *TagHandler {
	return &TagHandler{
		tagService:     tagService,
		articleService: articleService,
		logger:         logger.WithComponent("tag-handler"),
	}
}

// List returns every tag with its usage count and cloud weight
func (h *TagHandler) List(c *gin.Context) {
	infos, err := h.tagService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, domain.TagsResponse{Tags: infos})
}

// Articles retrieves all articles carrying a tag
func (h *TagHandler) Articles(c *gin.Context) {
	articles, err := h.articleService.ListByTag(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	summaries := make([]*domain.ArticleSummary, 0, len(articles))
	for _, article := range articles {
		summaries = append(summaries, article.ToSummary())
	}

	response.OK(c, gin.H{"articles": summaries})
}
