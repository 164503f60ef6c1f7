package api

import (
	"github.com/gin-gonic/gin"

	"github.com/minbar-press/minbar/internal/api/handlers"
	"github.com/minbar-press/minbar/internal/api/middleware"
	"github.com/minbar-press/minbar/internal/auth"
	"github.com/minbar-press/minbar/internal/config"
	"github.com/minbar-press/minbar/pkg/logger"
)

// Router sets up the HTTP router with all routes and middleware
type Router struct {
	engine          *gin.Engine
	authHandler     *handlers.AuthHandler
	articleHandler  *handlers.ArticleHandler
	sectionHandler  *handlers.SectionHandler
	commentHandler  *handlers.CommentHandler
	searchHandler   *handlers.SearchHandler
	tagHandler      *handlers.TagHandler
	settingsHandler *handlers.SettingsHandler
	healthHandler   *handlers.HealthHandler
	jwtManager      *auth.JWTManager
	cfg             *config.Config
	logger          *logger.Logger
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	articleHandler *handlers.ArticleHandler,
	sectionHandler *handlers.SectionHandler,
	commentHandler *handlers.CommentHandler,
	searchHandler *handlers.SearchHandler,
	tagHandler *handlers.TagHandler,
	settingsHandler *handlers.SettingsHandler,
	healthHandler *handlers.HealthHandler,
	jwtManager *auth.JWTManager,
	cfg *config.Config,
	logger *logger.Logger,
) *Router {
	return &Router{
		authHandler:     authHandler,
		articleHandler:  articleHandler,
		sectionHandler:  sectionHandler,
		commentHandler:  commentHandler,
		searchHandler:   searchHandler,
		tagHandler:      tagHandler,
		settingsHandler: settingsHandler,
		healthHandler:   healthHandler,
		jwtManager:      jwtManager,
		cfg:             cfg,
		logger:          logger,
	}
}

// Setup configures all routes and middleware
func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.cfg.Server.Mode)

	r.engine = gin.New()

	// Global middleware
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.CORSMiddleware(r.cfg.CORS.AllowedOrigins))
	r.engine.Use(middleware.LoggerMiddleware(r.logger))

	// Health check endpoints (no rate limiting, no auth)
	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/health/ready", r.healthHandler.Readiness)
	r.engine.GET("/health/live", r.healthHandler.Liveness)

	// API routes (with rate limiting)
	api := r.engine.Group("/api")
	api.Use(middleware.RateLimitMiddleware(
		r.cfg.RateLimit.RequestsPerMinute,
		r.cfg.RateLimit.Burst,
	))

	requireAuth := middleware.AuthMiddleware(r.jwtManager)
	optionalAuth := middleware.OptionalAuthMiddleware(r.jwtManager)

	{
		// Auth routes
		api.POST("/register", r.authHandler.Register)
		api.POST("/login", r.authHandler.Login)
		api.GET("/profile", requireAuth, r.authHandler.Profile)
		api.PUT("/profile", requireAuth, r.authHandler.UpdateProfile)

		// Search routes (public)
		api.GET("/search", r.searchHandler.Search)
		api.GET("/search/suggestions", r.searchHandler.Suggestions)

		// Tag routes (public)
		api.GET("/tags", r.tagHandler.List)
		api.GET("/tags/:name/articles", r.tagHandler.Articles)

		// Section routes
		sections := api.Group("/sections")
		{
			sections.GET("", r.sectionHandler.List)
			sections.GET("/:id", r.sectionHandler.Get)
			sections.GET("/:id/articles", r.sectionHandler.Articles)
			sections.POST("", requireAuth, r.sectionHandler.Create)
			sections.DELETE("/:id", requireAuth, r.sectionHandler.Delete)
		}

		// Article routes
		articles := api.Group("/articles")
		{
			articles.GET("", r.articleHandler.List)
			articles.GET("/:id", optionalAuth, r.articleHandler.Get)
			articles.GET("/:id/comments", r.commentHandler.ListByArticle)
			articles.POST("", requireAuth, r.articleHandler.Create)
			articles.PUT("/:id", requireAuth, r.articleHandler.Update)
			articles.DELETE("/:id", requireAuth, r.articleHandler.Delete)
			articles.POST("/:id/comments", requireAuth, r.commentHandler.Create)
			articles.POST("/:id/like", requireAuth, r.commentHandler.Like)
			articles.DELETE("/:id/like", requireAuth, r.commentHandler.Unlike)
		}

		// Comment routes
		comments := api.Group("/comments")
		comments.Use(requireAuth)
		{
			comments.PUT("/:comment_id", r.commentHandler.Update)
			comments.DELETE("/:comment_id", r.commentHandler.Delete)
		}

		// Settings routes
		api.GET("/settings", r.settingsHandler.Get)
		api.PUT("/settings/logo", requireAuth, r.settingsHandler.UpdateLogo)
	}

	return r.engine
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	if r.engine == nil {
		return r.Setup()
	}
	return r.engine
}
