package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/minbar-press/minbar/internal/auth"
	"github.com/minbar-press/minbar/internal/repository/badger"
	"github.com/minbar-press/minbar/internal/search"
	"github.com/minbar-press/minbar/internal/service"
	"github.com/minbar-press/minbar/pkg/logger"
)

type TestEnv struct {
	DB             *badger.DB
	Index          *search.BleveIndex
	UserService    *service.UserService
	ArticleService *service.ArticleService
	SectionService *service.SectionService
	CommentService *service.CommentService
	LikeService    *service.LikeService
	SearchService  *service.SearchService
	TagService     *service.TagService
	JWTManager     *auth.JWTManager
	Cleanup        func()
}

func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "minbar-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	db, err := badger.New(filepath.Join(tmpDir, "data"))
	if err != nil {
		t.Fatalf("Failed to init badger db: %v", err)
	}

	log := logger.NewNop()

	idx := search.NewBleveIndex(log)
	if err := idx.Open(filepath.Join(tmpDir, "index", "articles.bleve")); err != nil {
		t.Fatalf("Failed to open search index: %v", err)
	}

	userRepo := badger.NewUserRepo(db)
	articleRepo := badger.NewArticleRepo(db)
	sectionRepo := badger.NewSectionRepo(db)
	commentRepo := badger.NewCommentRepo(db)
	likeRepo := badger.NewLikeRepo(db)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	renderer := service.NewContentRenderer()

	searchService := service.NewSearchService(idx, articleRepo, sectionRepo, 10, log)
	userService := service.NewUserService(userRepo, jwtManager, bcrypt.MinCost, log)
	articleService := service.NewArticleService(
		articleRepo, sectionRepo, commentRepo, likeRepo,
		renderer, searchService, log,
	)
	sectionService := service.NewSectionService(
		sectionRepo, articleRepo, commentRepo, likeRepo,
		searchService, log,
	)
	commentService := service.NewCommentService(commentRepo, articleRepo, userRepo, log)
	likeService := service.NewLikeService(likeRepo, articleRepo, log)
	tagService := service.NewTagService(articleRepo, log)

	return &TestEnv{
		DB:             db,
		Index:          idx,
		UserService:    userService,
		ArticleService: articleService,
		SectionService: sectionService,
		CommentService: commentService,
		LikeService:    likeService,
		SearchService:  searchService,
		TagService:     tagService,
		JWTManager:     jwtManager,
		Cleanup: func() {
			idx.Close()
			db.Close()
			os.RemoveAll(tmpDir)
		},
	}
}
