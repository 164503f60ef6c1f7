package client

import "time"

// Wire types mirroring the API's JSON shapes. They are kept separate
// from the server's domain types so the package stands alone as an SDK.

// User is a user profile as returned by the API
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Token is a successful authentication response
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// RegisterRequest creates a new account
type RegisterRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// ProfileUpdateRequest updates the current user's display fields
type ProfileUpdateRequest struct {
	FullName       string `json:"full_name,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// ArticleSummary is an article as it appears in listings and search
// results
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

// Article is a full article as returned by the detail endpoint
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	Author      string    `json:"author"`
	SectionID   string    `json:"section_id"`
	ImageData   string    `json:"image_data,omitempty"`
	ImageName   string    `json:"image_name,omitempty"`
	Tags        []string  `json:"tags"`
	LikesCount  int       `json:"likes_count"`
	IsLiked     *bool     `json:"is_liked,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Section is a named category grouping articles
type Section struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TagInfo pairs a tag name with its usage count and display weight
type TagInfo struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Weight int    `json:"weight"`
}

// SearchResult is the result of a search request
type SearchResult struct {
	Articles     []*ArticleSummary `json:"articles"`
	Sections     []*Section        `json:"sections"`
	TotalResults int               `json:"total_results"`
	Query        string            `json:"query"`
}
