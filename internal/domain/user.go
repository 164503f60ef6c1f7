package domain

import (
	"regexp"
	"time"
)

// emailRegex is a simple email validation pattern
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a registered user
type User struct {
	ID             string    `json:"id" db:"id"`
	Username       string    `json:"username" db:"username" binding:"required,min=3,max=50"`
	Email          string    `json:"email" db:"email" binding:"required,email"`
	FullName       string    `json:"full_name" db:"full_name"`
	PasswordHash   string    `json:"-" db:"password_hash"` // Never expose
	ProfilePicture string    `json:"profile_picture,omitempty" db:"profile_picture"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Validate validates the user fields
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username", "username is required")
	}
	if len(u.Username) < 3 {
		return NewValidationError("username", "username must be at least 3 characters")
	}
	if len(u.Username) > 50 {
		return NewValidationError("username", "username must be at most 50 characters")
	}
	if u.Email == "" || !emailRegex.MatchString(u.Email) {
		return NewValidationError("email", "invalid email format")
	}
	if u.PasswordHash == "" {
		return NewValidationError("password", "password is required")
	}
	return nil
}

// UserRegisterRequest represents a user registration request
type UserRegisterRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=50"`
	Email          string `json:"email" binding:"required,email"`
	FullName       string `json:"full_name" binding:"required"`
	Password       string `json:"password" binding:"required,min=8"`
	ProfilePicture string `json:"profile_picture"`
}

// UserLoginRequest represents a user login request
type UserLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdateRequest represents a profile update request
type ProfileUpdateRequest struct {
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"`
}

// UserResponse represents a safe user response (without sensitive data)
type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}

// Token represents a successful authentication response
type Token struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	User        *UserResponse `json:"user"`
}
