package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/search"
	"github.com/minbar-press/minbar/internal/service"
	"github.com/minbar-press/minbar/pkg/logger"
	"github.com/minbar-press/minbar/pkg/response"
)

// SearchHandler handles search and suggestion requests
type SearchHandler struct {
	searchService *service.SearchService
	logger        *logger.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService, logger *logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger.WithComponent("search-handler"),
	}
}

// Search performs a search query
func (h *SearchHandler) Search(c *gin.Context) {
	parser := NewQueryParamParser(c)

	q := parser.String("q", "")
	author := parser.String("author", "")
	sectionID := parser.String("section_id", "")
	sortBy := parser.String("sort_by", search.SortRelevance)
	tags := parser.Tags("tags")
	dates := parser.DateRange("from_date", "to_date")
	pagination := parser.Pagination(20)

	if err := parser.Error(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	switch sortBy {
	case search.SortRelevance, search.SortDateAsc, search.SortDateDesc:
	default:
		response.BadRequest(c, "invalid 'sort_by' parameter: use relevance, date_asc, or date_desc")
		return
	}

	query := &search.Query{
		Text:      q,
		Author:    author,
		SectionID: sectionID,
		Tags:      tags,
		FromDate:  dates.From,
		ToDate:    dates.To,
		SortBy:    sortBy,
		Page:      pagination.Page,
		Limit:     pagination.Limit,
	}

	result, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Search failed", "query", q, "error", err)
		response.InternalServerError(c, "Search failed")
		return
	}

	response.OK(c, result)
}

// Suggestions returns typeahead suggestions for a partial query
func (h *SearchHandler) Suggestions(c *gin.Context) {
	q := c.Query("q")

	suggestions, err := h.searchService.Suggestions(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("Suggestions failed", "query", q, "error", err)
		response.InternalServerError(c, "Suggestions failed")
		return
	}

	response.OK(c, domain.SuggestionsResponse{Suggestions: suggestions})
}
