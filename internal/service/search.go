package service

import (
	"context"
	"sort"
	"strings"

	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/repository"
	"github.com/minbar-press/minbar/internal/search"
	"github.com/minbar-press/minbar/pkg/logger"
)

// SearchService handles search and suggestion operations
type SearchService struct {
	index           search.Index
	articleRepo     repository.ArticleRepository
	sectionRepo     repository.SectionRepository
	suggestionLimit int
	logger          *logger.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	index search.Index,
	articleRepo repository.ArticleRepository,
	sectionRepo repository.SectionRepository,
	suggestionLimit int,
	logger *logger.Logger,
) *SearchService {
	if suggestionLimit < 1 {
		suggestionLimit = 10
	}
	return &SearchService{
		index:           index,
		articleRepo:     articleRepo,
		sectionRepo:     sectionRepo,
		suggestionLimit: suggestionLimit,
		logger:          logger.WithComponent("search-service"),
	}
}

// Search runs a full-text search with filters and returns article
// summaries plus sections whose names match the query text
func (s *SearchService) Search(ctx context.Context, query *search.Query) (*domain.SearchResponse, error) {
	resp := &domain.SearchResponse{
		Articles: make([]*domain.ArticleSummary, 0),
		Sections: make([]*domain.SectionSummary, 0),
		Query:    query.Text,
	}

	articles, total, err := s.searchArticles(ctx, query)
	if err != nil {
		s.logger.Error("Article search failed", "query", query.Text, "error", err)
		return nil, err
	}
	for _, article := range articles {
		resp.Articles = append(resp.Articles, article.ToSummary())
	}

	sections, err := s.matchSections(ctx, query.Text)
	if err != nil {
		// Sections are secondary results, article hits still stand
		s.logger.Warn("Section match failed", "query", query.Text, "error", err)
	} else {
		resp.Sections = sections
	}

	resp.TotalResults = total + len(resp.Sections)

	s.logger.Debug("Search completed",
		"query", query.Text,
		"articles", total,
		"sections", len(resp.Sections),
	)

	return resp, nil
}

// searchArticles queries the index, then hydrates full articles from
// the repository. When the index is unavailable it falls back to a
// repository scan so search keeps working, just without ranking.
func (s *SearchService) searchArticles(ctx context.Context, query *search.Query) ([]*domain.Article, int, error) {
	if s.index != nil {
		result, err := s.index.Search(ctx, query)
		if err == nil {
			articles, err := s.articleRepo.GetByIDs(ctx, result.IDs)
			if err != nil {
				return nil, 0, err
			}
			return articles, result.Total, nil
		}
		s.logger.Warn("Index search failed, falling back to repository scan", "error", err)
	}

	filter := &domain.ArticleListFilter{
		Author:    query.Author,
		SectionID: query.SectionID,
		Tags:      query.Tags,
		FromDate:  query.FromDate,
		ToDate:    query.ToDate,
		Page:      query.Page,
		Limit:     query.Limit,
	}
	articles, total, err := s.articleRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	// The repository scan cannot rank, but it can still honor the
	// query text as a title/content substring match.
	if query.Text != "" {
		needle := strings.ToLower(query.Text)
		matched := articles[:0]
		for _, article := range articles {
			if strings.Contains(strings.ToLower(article.Title), needle) ||
				strings.Contains(strings.ToLower(article.Content), needle) {
				matched = append(matched, article)
			}
		}
		articles = matched
		total = len(matched)
	}

	sortArticles(articles, query.SortBy)
	return articles, total, nil
}

// sortArticles applies a date ordering when requested. Relevance is
// meaningless for a repository scan, so it keeps the stored order.
func sortArticles(articles []*domain.Article, sortBy string) {
	switch sortBy {
	case search.SortDateAsc:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].CreatedAt.Before(articles[j].CreatedAt)
		})
	case search.SortDateDesc:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[j].CreatedAt.Before(articles[i].CreatedAt)
		})
	}
}

// matchSections returns sections whose names contain the query text
func (s *SearchService) matchSections(ctx context.Context, text string) ([]*domain.SectionSummary, error) {
	matches := make([]*domain.SectionSummary, 0)
	if strings.TrimSpace(text) == "" {
		return matches, nil
	}

	sections, err := s.sectionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(text)
	for _, section := range sections {
		if strings.Contains(strings.ToLower(section.Name), needle) {
			matches = append(matches, section.ToSummary())
		}
	}
	return matches, nil
}

// Suggestions returns typeahead suggestions for a partial query: article
// titles first, then matching tag names carrying a leading '#'
func (s *SearchService) Suggestions(ctx context.Context, q string) ([]string, error) {
	suggestions := make([]string, 0, s.suggestionLimit)
	q = strings.TrimSpace(q)
	if q == "" {
		return suggestions, nil
	}

	seen := make(map[string]bool)

	if s.index != nil {
		titles, err := s.index.SuggestTitles(ctx, q, s.suggestionLimit)
		if err != nil {
			s.logger.Warn("Title suggestions failed", "query", q, "error", err)
		} else {
			for _, title := range titles {
				if !seen[title] {
					seen[title] = true
					suggestions = append(suggestions, title)
				}
			}
		}
	}

	counts, err := s.articleRepo.TagCounts(ctx)
	if err != nil {
		s.logger.Warn("Tag suggestions failed", "query", q, "error", err)
		return capSuggestions(suggestions, s.suggestionLimit), nil
	}

	needle := strings.ToLower(strings.TrimPrefix(q, "#"))
	tagNames := make([]string, 0, len(counts))
	for name := range counts {
		if strings.HasPrefix(name, needle) {
			tagNames = append(tagNames, name)
		}
	}
	sort.Strings(tagNames)

	for _, name := range tagNames {
		suggestion := "#" + name
		if !seen[suggestion] {
			seen[suggestion] = true
			suggestions = append(suggestions, suggestion)
		}
	}

	return capSuggestions(suggestions, s.suggestionLimit), nil
}

func capSuggestions(suggestions []string, limit int) []string {
	if len(suggestions) > limit {
		return suggestions[:limit]
	}
	return suggestions
}

// IndexArticle indexes an article for search
func (s *SearchService) IndexArticle(ctx context.Context, article *domain.Article) error {
	return s.index.IndexArticle(ctx, article)
}

// UpdateArticle updates an article in the search index
func (s *SearchService) UpdateArticle(ctx context.Context, article *domain.Article) error {
	return s.index.UpdateArticle(ctx, article)
}

// DeleteArticle removes an article from the search index
func (s *SearchService) DeleteArticle(ctx context.Context, articleID string) error {
	return s.index.DeleteArticle(ctx, articleID)
}
