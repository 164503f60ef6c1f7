package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/minbar-press/minbar/internal/api"
	"github.com/minbar-press/minbar/internal/api/handlers"
	"github.com/minbar-press/minbar/internal/auth"
	"github.com/minbar-press/minbar/internal/config"
	"github.com/minbar-press/minbar/internal/repository"
	badgerrepo "github.com/minbar-press/minbar/internal/repository/badger"
	"github.com/minbar-press/minbar/internal/repository/sqlite"
	"github.com/minbar-press/minbar/internal/search"
	"github.com/minbar-press/minbar/internal/service"
	"github.com/minbar-press/minbar/pkg/logger"
)

// storage bundles a storage engine's repositories with its lifecycle
type storage struct {
	articles repository.ArticleRepository
	sections repository.SectionRepository
	users    repository.UserRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository
	settings repository.SettingsRepository
	health   handlers.HealthChecker
	close    func() error
}

func openStorage(cfg *config.Config) (*storage, error) {
	switch cfg.Database.Engine {
	case "badger":
		db, err := badgerrepo.New(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		return &storage{
			articles: badgerrepo.NewArticleRepo(db),
			sections: badgerrepo.NewSectionRepo(db),
			users:    badgerrepo.NewUserRepo(db),
			comments: badgerrepo.NewCommentRepo(db),
			likes:    badgerrepo.NewLikeRepo(db),
			settings: badgerrepo.NewSettingsRepo(db),
			health:   db,
			close:    db.Close,
		}, nil
	default:
		db, err := sqlite.New(cfg.Database.Path, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			return nil, err
		}
		return &storage{
			articles: sqlite.NewArticleRepo(db),
			sections: sqlite.NewSectionRepo(db),
			users:    sqlite.NewUserRepo(db),
			comments: sqlite.NewCommentRepo(db),
			likes:    sqlite.NewLikeRepo(db),
			settings: sqlite.NewSettingsRepo(db),
			health:   db,
			close:    db.Close,
		}, nil
	}
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting minbar server",
		"mode", cfg.Server.Mode,
		"engine", cfg.Database.Engine,
	)

	// Initialize storage
	store, err := openStorage(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.close()

	log.Info("Storage initialized", "engine", cfg.Database.Engine, "path", cfg.Database.Path)

	// Initialize search index
	searchIndex := search.NewBleveIndex(log)
	if err := searchIndex.Open(cfg.Search.IndexPath); err != nil {
		log.Error("Failed to open search index", "error", err)
		os.Exit(1)
	}
	defer searchIndex.Close()

	count, _ := searchIndex.Count()
	log.Info("Search index opened", "path", cfg.Search.IndexPath, "document_count", count)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)

	// Initialize services
	renderer := service.NewContentRenderer()
	searchService := service.NewSearchService(searchIndex, store.articles, store.sections, cfg.Search.SuggestionLimit, log)
	userService := service.NewUserService(store.users, jwtManager, cfg.Auth.BcryptCost, log)
	articleService := service.NewArticleService(
		store.articles,
		store.sections,
		store.comments,
		store.likes,
		renderer,
		searchService,
		log,
	)
	sectionService := service.NewSectionService(store.sections, store.articles, store.comments, store.likes, searchService, log)
	commentService := service.NewCommentService(store.comments, store.articles, store.users, log)
	likeService := service.NewLikeService(store.likes, store.articles, log)
	tagService := service.NewTagService(store.articles, log)
	settingsService := service.NewSettingsService(store.settings, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, log)
	articleHandler := handlers.NewArticleHandler(articleService, log)
	sectionHandler := handlers.NewSectionHandler(sectionService, articleService, log)
	commentHandler := handlers.NewCommentHandler(commentService, likeService, log)
	searchHandler := handlers.NewSearchHandler(searchService, log)
	tagHandler := handlers.NewTagHandler(tagService, articleService, log)
	settingsHandler := handlers.NewSettingsHandler(settingsService, log)
	healthHandler := handlers.NewHealthHandler(store.health, searchIndex, log)

	// Initialize router
	router := api.NewRouter(
		authHandler,
		articleHandler,
		sectionHandler,
		commentHandler,
		searchHandler,
		tagHandler,
		settingsHandler,
		healthHandler,
		jwtManager,
		cfg,
		log,
	)

	engine := router.Setup()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("HTTP server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server stopped gracefully")
}
