package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/minbar-press/minbar/internal/api/middleware"
	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/service"
	"github.com/minbar-press/minbar/pkg/logger"
	"github.com/minbar-press/minbar/pkg/response"
)

// AuthHandler handles registration, login, and profile requests
type AuthHandler struct {
	userService *service.UserService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *service.UserService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger.WithComponent("auth-handler"),
	}
}

// Register registers a new user and returns a bearer token
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, token)
}

// Login authenticates a user and returns a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, token)
}

// Profile returns the current user's profile
func (h *AuthHandler) Profile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, profile)
}

// UpdateProfile updates the current user's display fields
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req domain.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, profile)
}
