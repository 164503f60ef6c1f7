package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/service"
	"github.com/minbar-press/minbar/pkg/logger"
	"github.com/minbar-press/minbar/pkg/response"
)

// SectionHandler handles section-related requests
type SectionHandler struct {
	sectionService *service.SectionService
	articleService *service.ArticleService
	logger         *logger.Logger
}

// NewSectionHandler creates a new section handler
func NewSectionHandler(
	sectionService *service.SectionService,
	articleService *service.ArticleService,
	logger *logger.Logger,
) *SectionHandler {
	return &SectionHandler{
		sectionService: sectionService,
		articleService: articleService,
		logger:         logger.WithComponent("section-handler"),
	}
}

// Create creates a new section
func (h *SectionHandler) Create(c *gin.Context) {
	var req domain.SectionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	section, err := h.sectionService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, section)
}

// List retrieves all sections
func (h *SectionHandler) List(c *gin.Context) {
	sections, err := h.sectionService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"sections": sections})
}

// Get retrieves a section by ID
func (h *SectionHandler) Get(c *gin.Context) {
	section, err := h.sectionService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, section)
}

// Articles retrieves all articles in a section
func (h *SectionHandler) Articles(c *gin.Context) {
	articles, err := h.articleService.ListBySection(c.Request.Context(), c.Param("id"))
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

// Delete deletes a section and everything under it
func (h *SectionHandler) Delete(c *gin.Context) {
	if err := h.sectionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Message(c, "Section deleted")
}
