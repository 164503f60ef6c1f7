package client

import (
	"context"
	"net/url"
	"time"
)

// ArticleCreateRequest creates a new article
type ArticleCreateRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	SectionID string   `json:"section_id"`
	ImageData string   `json:"image_data,omitempty"`
	ImageName string   `json:"image_name,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Comment is a comment as returned by the API
type Comment struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	ArticleID          string    `json:"article_id"`
	Content            string    `json:"content"`
	UserFullName       string    `json:"user_full_name"`
	UserProfilePicture string    `json:"user_profile_picture,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// LikeState is the like counter after a like or unlike
type LikeState struct {
	LikesCount int  `json:"likes_count"`
	IsLiked    bool `json:"is_liked"`
}

// Sections fetches all sections
func (c *Client) Sections(ctx context.Context) ([]*Section, error) {
	var result struct {
		Sections []*Section `json:"sections"`
	}
	if err := c.get(ctx, "/api/sections", nil, &result); err != nil {
		return nil, err
	}
	return result.Sections, nil
}

// CreateSection creates a new section
func (c *Client) CreateSection(ctx context.Context, name, description string) (*Section, error) {
	req := map[string]string{"name": name, "description": description}
	var section Section
	if err := c.post(ctx, "/api/sections", req, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

// DeleteSection deletes a section and everything under it
func (c *Client) DeleteSection(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/sections/"+url.PathEscape(id), nil)
}

// SectionArticles fetches all articles in a section
func (c *Client) SectionArticles(ctx context.Context, id string) ([]*ArticleSummary, error) {
	var result struct {
		Articles []*ArticleSummary `json:"articles"`
	}
	if err := c.get(ctx, "/api/sections/"+url.PathEscape(id)+"/articles", nil, &result); err != nil {
		return nil, err
	}
	return result.Articles, nil
}

// Article fetches a full article with rendered content
func (c *Client) Article(ctx context.Context, id string) (*Article, error) {
	var article Article
	if err := c.get(ctx, "/api/articles/"+url.PathEscape(id), nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// CreateArticle publishes a new article
func (c *Client) CreateArticle(ctx context.Context, req *ArticleCreateRequest) (*Article, error) {
	var article Article
	if err := c.post(ctx, "/api/articles", req, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// DeleteArticle deletes an article
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/articles/"+url.PathEscape(id), nil)
}

// Comments fetches an article's comments, oldest first
func (c *Client) Comments(ctx context.Context, articleID string) ([]*Comment, error) {
	var result struct {
		Comments []*Comment `json:"comments"`
	}
	if err := c.get(ctx, "/api/articles/"+url.PathEscape(articleID)+"/comments", nil, &result); err != nil {
		return nil, err
	}
	return result.Comments, nil
}

// AddComment posts a comment on an article
func (c *Client) AddComment(ctx context.Context, articleID, content string) (*Comment, error) {
	req := map[string]string{"content": content}
	var comment Comment
	if err := c.post(ctx, "/api/articles/"+url.PathEscape(articleID)+"/comments", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Like records the current user's like on an article
func (c *Client) Like(ctx context.Context, articleID string) (*LikeState, error) {
	var state LikeState
	if err := c.post(ctx, "/api/articles/"+url.PathEscape(articleID)+"/like", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Unlike removes the current user's like on an article
func (c *Client) Unlike(ctx context.Context, articleID string) (*LikeState, error) {
	var state LikeState
	if err := c.delete(ctx, "/api/articles/"+url.PathEscape(articleID)+"/like", &state); err != nil {
		return nil, err
	}
	return &state, nil
}
