package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/pkg/logger"
)

// BleveIndex implements the Index interface using Bleve
type BleveIndex struct {
	index  bleve.Index
	mu     sync.RWMutex // Protects concurrent access to the index
	logger *logger.Logger
}

// NewBleveIndex creates a new Bleve search index
func NewBleveIndex(logger *logger.Logger) *BleveIndex {
	return &BleveIndex{
		logger: logger.WithComponent("bleve-index"),
	}
}

// Open opens or creates the search index
func (b *BleveIndex) Open(indexPath string) error {
	// Ensure directory exists
	indexDir := filepath.Dir(indexPath)
	if err := os.MkdirAll(indexDir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	var err error

	// Try to open existing index
	b.index, err = bleve.Open(indexPath)
	if err == nil {
		b.logger.Info("Opened existing search index", "path", indexPath)
		return nil
	}

	// Index doesn't exist, create new one
	indexMapping := b.buildIndexMapping()
	b.index, err = bleve.New(indexPath, indexMapping)
	if err != nil {
		return fmt.Errorf("failed to create search index: %w", err)
	}

	b.logger.Info("Created new search index", "path", indexPath)
	return nil
}

// buildIndexMapping builds the index mapping for articles
func (b *BleveIndex) buildIndexMapping() mapping.IndexMapping {
	articleMapping := bleve.NewDocumentMapping()

	// Title field - analyzed, stored for suggestions
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = "en"
	titleFieldMapping.Store = true
	titleFieldMapping.Index = true
	articleMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Content field - analyzed
	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Analyzer = "en"
	contentFieldMapping.Store = false
	contentFieldMapping.Index = true
	articleMapping.AddFieldMappingsAt("content", contentFieldMapping)

	// Author field - text, matched as a substring filter
	authorFieldMapping := bleve.NewTextFieldMapping()
	authorFieldMapping.Store = true
	authorFieldMapping.Index = true
	articleMapping.AddFieldMappingsAt("author", authorFieldMapping)

	// Section field - keyword (exact match)
	sectionFieldMapping := bleve.NewKeywordFieldMapping()
	sectionFieldMapping.Store = true
	sectionFieldMapping.Index = true
	articleMapping.AddFieldMappingsAt("section_id", sectionFieldMapping)

	// Tags field - keyword (exact match per tag)
	tagsFieldMapping := bleve.NewKeywordFieldMapping()
	tagsFieldMapping.Store = true
	tagsFieldMapping.Index = true
	articleMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	// Created-at field - datetime
	createdFieldMapping := bleve.NewDateTimeFieldMapping()
	createdFieldMapping.Store = true
	createdFieldMapping.Index = true
	articleMapping.AddFieldMappingsAt("created_at", createdFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	// Queries without an explicit field hit the composite _all field,
	// which must be analyzed the same way as title and content.
	indexMapping.DefaultAnalyzer = "en"
	indexMapping.AddDocumentMapping("article", articleMapping)
	indexMapping.DefaultMapping = articleMapping

	return indexMapping
}

// Close closes the search index
func (b *BleveIndex) Close() error {
	if b.index != nil {
		if err := b.index.Close(); err != nil {
			return fmt.Errorf("failed to close index: %w", err)
		}
		b.logger.Info("Closed search index")
	}
	return nil
}

// IndexArticle indexes an article
func (b *BleveIndex) IndexArticle(ctx context.Context, article *domain.Article) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc := ArticleToDocument(article)

	if err := b.index.Index(article.ID, doc); err != nil {
		b.logger.Error("Failed to index article", "article_id", article.ID, "error", err)
		return fmt.Errorf("failed to index article: %w", err)
	}

	b.logger.Debug("Indexed article", "article_id", article.ID)
	return nil
}

// UpdateArticle updates an indexed article
func (b *BleveIndex) UpdateArticle(ctx context.Context, article *domain.Article) error {
	// In Bleve, update is the same as index (it overwrites)
	return b.IndexArticle(ctx, article)
}

// DeleteArticle removes an article from the index
func (b *BleveIndex) DeleteArticle(ctx context.Context, articleID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.index.Delete(articleID); err != nil {
		b.logger.Error("Failed to delete article from index", "article_id", articleID, "error", err)
		return fmt.Errorf("failed to delete from index: %w", err)
	}

	b.logger.Debug("Deleted article from index", "article_id", articleID)
	return nil
}

// Search searches the index
func (b *BleveIndex) Search(ctx context.Context, q *Query) (*Result, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	startTime := time.Now()

	searchQuery := b.buildSearchQuery(q)
	searchRequest := bleve.NewSearchRequest(searchQuery)

	// Pagination
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	searchRequest.From = (q.Page - 1) * q.Limit
	searchRequest.Size = q.Limit

	switch q.SortBy {
	case SortDateDesc:
		searchRequest.SortBy([]string{"-created_at", "-_score"})
	case SortDateAsc:
		searchRequest.SortBy([]string{"created_at", "-_score"})
	default:
		// Relevance order is Bleve's default
	}

	searchResults, err := b.index.Search(searchRequest)
	if err != nil {
		b.logger.Error("Search failed", "error", err)
		return nil, fmt.Errorf("search failed: %w", err)
	}

	queryTime := time.Since(startTime).Milliseconds()

	ids := make([]string, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		ids = append(ids, hit.ID)
	}

	totalPages := int(searchResults.Total) / q.Limit
	if int(searchResults.Total)%q.Limit > 0 {
		totalPages++
	}

	result := &Result{
		IDs:        ids,
		Total:      int(searchResults.Total),
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
		QueryTime:  queryTime,
	}

	b.logger.Debug("Search completed",
		"query", q.Text,
		"results", searchResults.Total,
		"time_ms", queryTime,
	)

	return result, nil
}

// buildSearchQuery builds a Bleve query from search parameters
func (b *BleveIndex) buildSearchQuery(q *Query) query.Query {
	var queries []query.Query

	// Full-text query on title and content
	if q.Text != "" {
		matchQuery := bleve.NewMatchQuery(q.Text)
		queries = append(queries, matchQuery)
	}

	// Author filter
	if q.Author != "" {
		authorQuery := bleve.NewMatchQuery(q.Author)
		authorQuery.SetField("author")
		queries = append(queries, authorQuery)
	}

	// Section filter
	if q.SectionID != "" {
		sectionQuery := bleve.NewTermQuery(q.SectionID)
		sectionQuery.SetField("section_id")
		queries = append(queries, sectionQuery)
	}

	// Tags filter, every requested tag must be present
	for _, tag := range q.Tags {
		tagQuery := bleve.NewTermQuery(tag)
		tagQuery.SetField("tags")
		queries = append(queries, tagQuery)
	}

	// Date range filter
	if !q.FromDate.IsZero() || !q.ToDate.IsZero() {
		dateQuery := bleve.NewDateRangeQuery(q.FromDate, q.ToDate)
		dateQuery.SetField("created_at")
		queries = append(queries, dateQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// SuggestTitles returns stored titles whose words match the given prefix
func (b *BleveIndex) SuggestTitles(ctx context.Context, prefix string, limit int) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if limit < 1 {
		limit = 10
	}

	prefixQuery := bleve.NewPrefixQuery(strings.ToLower(prefix))
	prefixQuery.SetField("title")

	searchRequest := bleve.NewSearchRequest(prefixQuery)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"title"}

	searchResults, err := b.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("suggestion search failed: %w", err)
	}

	titles := make([]string, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		if title, ok := hit.Fields["title"].(string); ok {
			titles = append(titles, title)
		}
	}
	return titles, nil
}

// Count returns the number of documents in the index
func (b *BleveIndex) Count() (uint64, error) {
	count, err := b.index.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}
	return count, nil
}
