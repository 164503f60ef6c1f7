package search

import (
	"context"
	"time"

	"github.com/minbar-press/minbar/internal/domain"
)

// Sort orders accepted by Search
const (
	SortRelevance = "relevance"
	SortDateDesc  = "date_desc"
	SortDateAsc   = "date_asc"
)

// Document represents an article in the search index
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	SectionID string    `json:"section_id"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// Query represents a search query
type Query struct {
	Text      string
	Author    string
	SectionID string
	Tags      []string
	FromDate  time.Time
	ToDate    time.Time
	SortBy    string
	Page      int
	Limit     int
}

// Result represents a search result
type Result struct {
	IDs        []string
	Total      int
	Page       int
	Limit      int
	TotalPages int
	QueryTime  int64 // milliseconds
}

// Index defines the interface for search indexing
type Index interface {
	// Open opens the search index
	Open(indexPath string) error

	// Close closes the search index
	Close() error

	// IndexArticle indexes an article
	IndexArticle(ctx context.Context, article *domain.Article) error

	// UpdateArticle updates an indexed article
	UpdateArticle(ctx context.Context, article *domain.Article) error

	// DeleteArticle removes an article from the index
	DeleteArticle(ctx context.Context, articleID string) error

	// Search searches the index
	Search(ctx context.Context, query *Query) (*Result, error)

	// SuggestTitles returns indexed titles matching a prefix
	SuggestTitles(ctx context.Context, prefix string, limit int) ([]string, error)

	// Count returns the number of documents in the index
	Count() (uint64, error)
}

// ArticleToDocument converts an article to a search document
func ArticleToDocument(article *domain.Article) *Document {
	return &Document{
		ID:        article.ID,
		Title:     article.Title,
		Content:   article.Content,
		Author:    article.Author,
		SectionID: article.SectionID,
		Tags:      article.Tags,
		CreatedAt: article.CreatedAt,
	}
}
