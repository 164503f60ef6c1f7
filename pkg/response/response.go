package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minbar-press/minbar/internal/domain"
)

// ErrorBody is the wire shape of every error response
type ErrorBody struct {
	Detail string `json:"detail"`
}

// OK sends a 200 response with the payload as the body
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 response carrying only a human-readable message
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Error sends an error response with a detail message
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Detail: message})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict sends a 409 Conflict response
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// FromError maps a domain error onto the right HTTP status
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrArticleNotFound),
		errors.Is(err, domain.ErrSectionNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists),
		errors.Is(err, domain.ErrAlreadyLiked),
		errors.Is(err, domain.ErrConflict):
		Conflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken),
		errors.Is(err, domain.ErrUnauthorized):
		Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrInvalidArticle),
		errors.Is(err, domain.ErrInvalidSection),
		errors.Is(err, domain.ErrNotLiked),
		errors.Is(err, domain.ErrValidationFailed),
		errors.Is(err, domain.ErrInvalidInput):
		BadRequest(c, err.Error())
	default:
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			BadRequest(c, validationErr.Error())
			return
		}
		InternalServerError(c, "internal server error")
	}
}
