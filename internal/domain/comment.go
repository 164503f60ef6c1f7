package domain

import "time"

// Comment represents a user comment on an article
type Comment struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	Content   string    `json:"content" db:"content" binding:"required,min=1"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CommentCreateRequest represents a request to create a comment
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CommentUpdateRequest represents a request to update a comment
type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CommentResponse is a comment enriched with its author's display fields
type CommentResponse struct {
	*Comment
	UserFullName       string `json:"user_full_name"`
	UserProfilePicture string `json:"user_profile_picture,omitempty"`
}

// Like represents a single user/article like pair
type Like struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
