package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/minbar-press/minbar/internal/api/middleware"
	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/service"
	"github.com/minbar-press/minbar/pkg/logger"
	"github.com/minbar-press/minbar/pkg/response"
)

// ArticleHandler handles article-related requests
type ArticleHandler struct {
	articleService *service.ArticleService
	logger         *logger.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService *service.ArticleService, logger *logger.Logger) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		logger:         logger.WithComponent("article-handler"),
	}
}

// Create creates a new article
func (h *ArticleHandler) Create(c *gin.Context) {
	var req domain.ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, article)
}

// Get retrieves an article with rendered content
func (h *ArticleHandler) Get(c *gin.Context) {
	id := c.Param("id")
	userID := middleware.GetUserID(c)

	article, err := h.articleService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, article)
}

// List retrieves articles with pagination and filtering
func (h *ArticleHandler) List(c *gin.Context) {
	parser := NewQueryParamParser(c)

	filter := &domain.ArticleListFilter{
		Author:    parser.String("author", ""),
		SectionID: parser.String("section_id", ""),
		Tags:      parser.Tags("tags"),
	}
	dates := parser.DateRange("from_date", "to_date")
	pagination := parser.Pagination(20)

	if err := parser.Error(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	filter.FromDate = dates.From
	filter.ToDate = dates.To
	filter.Page = pagination.Page
	filter.Limit = pagination.Limit

	articles, total, err := h.articleService.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	summaries := make([]*domain.ArticleSummary, 0, len(articles))
	for _, article := range articles {
		summaries = append(summaries, article.ToSummary())
	}

	response.OK(c, gin.H{
		"articles": summaries,
		"total":    total,
		"page":     pagination.Page,
		"limit":    pagination.Limit,
	})
}

// Update updates an existing article
func (h *ArticleHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req domain.ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, article)
}

// Delete deletes an article
func (h *ArticleHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.articleService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Message(c, "Article deleted")
}
