package integration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/minbar-press/minbar/internal/domain"
)

func registerUser(t *testing.T, env *TestEnv, username string) *domain.UserResponse {
	t.Helper()

	token, err := env.UserService.Register(context.Background(), &domain.UserRegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test " + username,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Failed to register %s: %v", username, err)
	}
	return token.User
}

func createSection(t *testing.T, env *TestEnv, name string) *domain.Section {
	t.Helper()

	section, err := env.SectionService.Create(context.Background(), &domain.SectionCreateRequest{
		Name: name,
	})
	if err != nil {
		t.Fatalf("Failed to create section %s: %v", name, err)
	}
	return section
}

func TestArticleFlow(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup()

	ctx := context.Background()

	user := registerUser(t, env, "rana")
	section := createSection(t, env, "Technology")

	// 1. Create an article with markdown content and messy tags
	article, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title:     "Local Mesh Networks",
		Content:   "# Mesh\n\nNeighborhoods are building *their own* networks.",
		Author:    "Rana",
		SectionID: section.ID,
		Tags:      []string{"#Networks", "networks", " Community "},
	})
	if err != nil {
		t.Fatalf("Failed to create article: %v", err)
	}
	if article.ID == "" {
		t.Fatal("Expected article ID to be set")
	}
	wantTags := []string{"networks", "community"}
	if len(article.Tags) != len(wantTags) {
		t.Fatalf("Expected tags %v, got %v", wantTags, article.Tags)
	}
	for i, tag := range wantTags {
		if article.Tags[i] != tag {
			t.Errorf("Expected tag %s at %d, got %s", tag, i, article.Tags[i])
		}
	}

	// 2. Fetch it back, markdown rendered to HTML
	fetched, err := env.ArticleService.GetByID(ctx, article.ID, user.ID)
	if err != nil {
		t.Fatalf("Failed to get article: %v", err)
	}
	if !strings.Contains(fetched.ContentHTML, "<h1") {
		t.Errorf("Expected rendered heading in content HTML, got %q", fetched.ContentHTML)
	}
	if !strings.Contains(fetched.ContentHTML, "<em>") {
		t.Errorf("Expected rendered emphasis in content HTML, got %q", fetched.ContentHTML)
	}
	if fetched.IsLiked == nil || *fetched.IsLiked {
		t.Error("Expected is_liked to be present and false")
	}

	// 3. Creating against a missing section fails
	_, err = env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title:     "Orphan",
		Content:   "body",
		Author:    "Rana",
		SectionID: "no-such-section",
	})
	if !errors.Is(err, domain.ErrSectionNotFound) {
		t.Errorf("Expected ErrSectionNotFound, got %v", err)
	}

	// 4. Comment on the article
	comment, err := env.CommentService.Create(ctx, article.ID, user.ID, &domain.CommentCreateRequest{
		Content: "Great piece.",
	})
	if err != nil {
		t.Fatalf("Failed to create comment: %v", err)
	}
	if comment.UserFullName == "" {
		t.Error("Expected comment to carry the author's display name")
	}

	comments, err := env.CommentService.ListByArticle(ctx, article.ID)
	if err != nil {
		t.Fatalf("Failed to list comments: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(comments))
	}

	// 5. Like, double-like, unlike
	count, err := env.LikeService.Like(ctx, article.ID, user.ID)
	if err != nil {
		t.Fatalf("Failed to like: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected likes count 1, got %d", count)
	}

	_, err = env.LikeService.Like(ctx, article.ID, user.ID)
	if !errors.Is(err, domain.ErrAlreadyLiked) {
		t.Errorf("Expected ErrAlreadyLiked, got %v", err)
	}

	count, err = env.LikeService.Unlike(ctx, article.ID, user.ID)
	if err != nil {
		t.Fatalf("Failed to unlike: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected likes count 0 after unlike, got %d", count)
	}

	// 6. Update the article
	updated, err := env.ArticleService.Update(ctx, article.ID, &domain.ArticleUpdateRequest{
		Title: "Local Mesh Networks, Revisited",
	})
	if err != nil {
		t.Fatalf("Failed to update article: %v", err)
	}
	if updated.Title != "Local Mesh Networks, Revisited" {
		t.Errorf("Expected updated title, got %s", updated.Title)
	}
	if updated.Content != article.Content {
		t.Error("Update with empty content should keep the old content")
	}

	// 7. Delete removes the article and its comments
	if err := env.ArticleService.Delete(ctx, article.ID); err != nil {
		t.Fatalf("Failed to delete article: %v", err)
	}
	if _, err := env.ArticleService.GetByID(ctx, article.ID, ""); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Errorf("Expected ErrArticleNotFound after delete, got %v", err)
	}
}

func TestSectionCascadeDelete(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup()

	ctx := context.Background()

	user := registerUser(t, env, "tariq")
	keep := createSection(t, env, "Keep")
	doomed := createSection(t, env, "Doomed")

	kept, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title: "Survivor", Content: "stays", Author: "Tariq", SectionID: keep.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create article: %v", err)
	}

	victim, err := env.ArticleService.Create(ctx, &domain.ArticleCreateRequest{
		Title: "Casualty", Content: "goes", Author: "Tariq", SectionID: doomed.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create article: %v", err)
	}
	if _, err := env.CommentService.Create(ctx, victim.ID, user.ID, &domain.CommentCreateRequest{
		Content: "soon gone",
	}); err != nil {
		t.Fatalf("Failed to comment: %v", err)
	}
	if _, err := env.LikeService.Like(ctx, victim.ID, user.ID); err != nil {
		t.Fatalf("Failed to like: %v", err)
	}

	if err := env.SectionService.Delete(ctx, doomed.ID); err != nil {
		t.Fatalf("Failed to delete section: %v", err)
	}

	if _, err := env.SectionService.GetByID(ctx, doomed.ID); !errors.Is(err, domain.ErrSectionNotFound) {
		t.Errorf("Expected section gone, got %v", err)
	}
	if _, err := env.ArticleService.GetByID(ctx, victim.ID, ""); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Errorf("Expected cascaded article delete, got %v", err)
	}
	comments, err := env.CommentService.ListByArticle(ctx, victim.ID)
	if err == nil && len(comments) != 0 {
		t.Errorf("Expected no comments left, got %d", len(comments))
	}

	// Untouched section and article survive
	if _, err := env.ArticleService.GetByID(ctx, kept.ID, ""); err != nil {
		t.Errorf("Expected kept article to survive, got %v", err)
	}
	sections, err := env.SectionService.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list sections: %v", err)
	}
	if len(sections) != 1 || sections[0].ID != keep.ID {
		t.Errorf("Expected only the kept section, got %d sections", len(sections))
	}
}
