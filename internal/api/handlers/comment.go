package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/minbar-press/minbar/internal/api/middleware"
	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/service"
	"github.com/minbar-press/minbar/pkg/logger"
	"github.com/minbar-press/minbar/pkg/response"
)

// CommentHandler handles comment and like requests
type CommentHandler struct {
	commentService *service.CommentService
	likeService    *service.LikeService
	logger         *logger.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(
	commentService *service.CommentService,
	likeService *service.LikeService,
	logger *logger.Logger,
) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		likeService:    likeService,
		logger:         logger.WithComponent("comment-handler"),
	}
}

// Create creates a comment on an article
func (h *CommentHandler) Create(c *gin.Context) {
	var req domain.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, comment)
}

// ListByArticle retrieves an article's comments
func (h *CommentHandler) ListByArticle(c *gin.Context) {
	comments, err := h.commentService.ListByArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"comments": comments})
}

// Update updates a comment
func (h *CommentHandler) Update(c *gin.Context) {
	var req domain.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), c.Param("comment_id"), middleware.GetUserID(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, comment)
}

// Delete deletes a comment
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.commentService.Delete(c.Request.Context(), c.Param("comment_id"), middleware.GetUserID(c)); err != nil {
		response.FromError(c, err)
		return
	}

	response.Message(c, "Comment deleted")
}

// Like records the current user's like on an article
func (h *CommentHandler) Like(c *gin.Context) {
	count, err := h.likeService.Like(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"likes_count": count, "is_liked": true})
}

// Unlike removes the current user's like on an article
func (h *CommentHandler) Unlike(c *gin.Context) {
	count, err := h.likeService.Unlike(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"likes_count": count, "is_liked": false})
}
