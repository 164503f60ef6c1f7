package domain

import (
	"encoding/json"
	"time"
	"unicode/utf8"
)

// excerptRunes is the length of the content excerpt used in listings.
const excerptRunes = 150

// Article represents a published article
type Article struct {
	ID         string    `json:"id" db:"id"`
	Title      string    `json:"title" db:"title" binding:"required,min=1,max=200"`
	Content    string    `json:"content" db:"content" binding:"required,min=1"`
	Author     string    `json:"author" db:"author" binding:"required"`
	SectionID  string    `json:"section_id" db:"section_id"`
	ImageData  string    `json:"image_data,omitempty" db:"image_data"` // Base64 data URL
	ImageName  string    `json:"image_name,omitempty" db:"image_name"`
	Tags       []string  `json:"tags" db:"tags"` // JSON array in SQLite
	LikesCount int       `json:"likes_count" db:"likes_count"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Validate validates the article fields
func (a *Article) Validate() error {
	if a.Title == "" {
		return ErrInvalidArticle
	}
	if len(a.Title) > 200 {
		return ErrInvalidArticle
	}
	if a.Content == "" {
		return ErrInvalidArticle
	}
	if a.Author == "" {
		return ErrInvalidArticle
	}
	if a.SectionID == "" {
		return ErrInvalidArticle
	}
	return nil
}

// Excerpt returns the leading content excerpt used in listings
func (a *Article) Excerpt() string {
	if utf8.RuneCountInString(a.Content) <= excerptRunes {
		return a.Content
	}
	runes := []rune(a.Content)
	return string(runes[:excerptRunes]) + "..."
}

// ToSummary converts an article to its listing form
func (a *Article) ToSummary() *ArticleSummary {
	return &ArticleSummary{
		ID:         a.ID,
		Title:      a.Title,
		Author:     a.Author,
		SectionID:  a.SectionID,
		Excerpt:    a.Excerpt(),
		Tags:       a.Tags,
		LikesCount: a.LikesCount,
		CreatedAt:  a.CreatedAt,
	}
}

// ToJSON converts article to JSON
func (a *Article) ToJSON() ([]byte, error) {
	return json.Marshal(a)
}

// ArticleSummary is the subset of article fields needed for listings
// and search results
type ArticleSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	SectionID  string    `json:"section_id"`
	Excerpt    string    `json:"excerpt"`
	Tags       []string  `json:"tags"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// ArticleResponse is an article enriched for detail views
type ArticleResponse struct {
	*Article
	ContentHTML string `json:"content_html,omitempty"`
	IsLiked     *bool  `json:"is_liked,omitempty"`
}

// ArticleCreateRequest represents a request to create an article
type ArticleCreateRequest struct {
	Title     string   `json:"title" binding:"required,min=1,max=200"`
	Content   string   `json:"content" binding:"required,min=1"`
	Author    string   `json:"author" binding:"required"`
	SectionID string   `json:"section_id" binding:"required"`
	ImageData string   `json:"image_data"`
	ImageName string   `json:"image_name"`
	Tags      []string `json:"tags"`
}

// ArticleUpdateRequest represents a request to update an article
type ArticleUpdateRequest struct {
	Title     string   `json:"title" binding:"omitempty,min=1,max=200"`
	Content   string   `json:"content" binding:"omitempty,min=1"`
	Author    string   `json:"author"`
	SectionID string   `json:"section_id"`
	ImageData string   `json:"image_data"`
	ImageName string   `json:"image_name"`
	Tags      []string `json:"tags"`
}

// ArticleListFilter represents filters for listing articles
type ArticleListFilter struct {
	Author    string
	SectionID string
	Tags      []string
	FromDate  time.Time
	ToDate    time.Time
	Page      int
	Limit     int
}
