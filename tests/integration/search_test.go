package integration

import (
	"context"
	"testing"

	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/internal/search"
)

func seedNewsroom(t *testing.T, env *TestEnv) (tech, sports *domain.Section) {
	t.Helper()

	ctx := context.Background()

	tech = createSection(t, env, "Technology")
	sports = createSection(t, env, "Sports")

	seed := []*domain.ArticleCreateRequest{
		{
			Title:     "Ferry Service Expands",
			Content:   "The harbor ferry adds two new routes this spring.",
			Author:    "Amira Haddad",
			SectionID: tech.ID,
			Tags:      []string{"transit", "harbor"},
		},
		{
			Title:     "Ferry Fares Frozen",
			Content:   "Fares stay flat for another year.",
			Author:    "Amira Haddad",
			SectionID: tech.ID,
			Tags:      []string{"transit"},
		},
		{
			Title:     "Rowing Club Wins Regatta",
			Content:   "The local rowing club took first place on the harbor.",
			Author:    "Bram Okafor",
			SectionID: sports.ID,
			Tags:      []string{"rowing", "harbor"},
		},
	}
	for _, req := range seed {
		if _, err := env.ArticleService.Create(ctx, req); err != nil {
			t.Fatalf("Failed to seed article %q: %v", req.Title, err)
		}
	}
	return tech, sports
}

func TestSearchFlow(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup()

	ctx := context.Background()
	tech, _ := seedNewsroom(t, env)

	// Text search hydrates article summaries from the repository
	resp, err := env.SearchService.Search(ctx, &search.Query{Text: "ferry"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(resp.Articles) != 2 {
		t.Fatalf("Expected 2 ferry articles, got %d", len(resp.Articles))
	}
	if resp.Query != "ferry" {
		t.Errorf("Expected echoed query, got %q", resp.Query)
	}
	if resp.TotalResults != 2 {
		t.Errorf("Expected total_results 2, got %d", resp.TotalResults)
	}
	for _, a := range resp.Articles {
		if a.Title == "" || a.ID == "" {
			t.Errorf("Expected hydrated summary, got %+v", a)
		}
	}

	// Section names matching the query are returned alongside articles
	resp, err = env.SearchService.Search(ctx, &search.Query{Text: "tech"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(resp.Sections) != 1 || resp.Sections[0].ID != tech.ID {
		t.Fatalf("Expected the Technology section match, got %+v", resp.Sections)
	}
	if resp.TotalResults != len(resp.Articles)+1 {
		t.Errorf("Expected total to include the section, got %d", resp.TotalResults)
	}

	// Filters narrow the result set
	resp, err = env.SearchService.Search(ctx, &search.Query{
		Text:      "harbor",
		SectionID: tech.ID,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(resp.Articles) != 1 || resp.Articles[0].Title != "Ferry Service Expands" {
		t.Fatalf("Expected only the tech harbor article, got %+v", resp.Articles)
	}

	// Tag filter
	resp, err = env.SearchService.Search(ctx, &search.Query{Tags: []string{"rowing"}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(resp.Articles) != 1 || resp.Articles[0].Title != "Rowing Club Wins Regatta" {
		t.Fatalf("Expected the rowing article, got %+v", resp.Articles)
	}

	// No matches is an empty response, not an error
	resp, err = env.SearchService.Search(ctx, &search.Query{Text: "zeppelin"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(resp.Articles) != 0 || len(resp.Sections) != 0 || resp.TotalResults != 0 {
		t.Errorf("Expected empty response, got %+v", resp)
	}
}

func TestSuggestionsCombineTitlesAndTags(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup()

	ctx := context.Background()
	seedNewsroom(t, env)

	suggestions, err := env.SearchService.Suggestions(ctx, "ferr")
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("Expected 2 title suggestions, got %v", suggestions)
	}

	// Tag suggestions carry a leading # and follow the titles
	suggestions, err = env.SearchService.Suggestions(ctx, "ha")
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}
	found := false
	for _, s := range suggestions {
		if s == "#harbor" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected #harbor in suggestions, got %v", suggestions)
	}

	// Blank input yields nothing
	suggestions, err = env.SearchService.Suggestions(ctx, "   ")
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("Expected no suggestions for blank input, got %v", suggestions)
	}
}

func TestTagListCarriesWeights(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup()

	ctx := context.Background()
	seedNewsroom(t, env)

	tags, err := env.TagService.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list tags: %v", err)
	}

	byName := make(map[string]*domain.TagInfo, len(tags))
	for _, tag := range tags {
		byName[tag.Name] = tag
	}

	// transit and harbor appear twice, rowing once
	if byName["transit"] == nil || byName["transit"].Count != 2 {
		t.Fatalf("Expected transit count 2, got %+v", byName["transit"])
	}
	if byName["rowing"] == nil || byName["rowing"].Count != 1 {
		t.Fatalf("Expected rowing count 1, got %+v", byName["rowing"])
	}

	// Weights are relative to the most used tag
	if byName["transit"].Weight != 5 {
		t.Errorf("Expected max-count tag weight 5, got %d", byName["transit"].Weight)
	}
	if byName["rowing"].Weight != 3 {
		t.Errorf("Expected half-count tag weight 3, got %d", byName["rowing"].Weight)
	}

	// Sorted by count descending
	if tags[len(tags)-1].Name != "rowing" {
		t.Errorf("Expected rowing last, got %v", tags[len(tags)-1].Name)
	}
}
