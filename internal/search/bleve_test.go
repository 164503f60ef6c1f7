package search

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/minbar-press/minbar/internal/domain"
	"github.com/minbar-press/minbar/pkg/logger"
)

func openTestIndex(t *testing.T) *BleveIndex {
	t.Helper()

	idx := NewBleveIndex(logger.NewNop())
	if err := idx.Open(filepath.Join(t.TempDir(), "articles.bleve")); err != nil {
		t.Fatalf("Failed to open index: %v", err)
	}
	t.Cleanup(func() {
		if err := idx.Close(); err != nil {
			t.Errorf("Failed to close index: %v", err)
		}
	})
	return idx
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

func seedArticles(t *testing.T, idx *BleveIndex) []*domain.Article {
	t.Helper()

	articles := []*domain.Article{
		{
			ID:        "a1",
			Title:     "Urban Gardening Basics",
			Content:   "How to grow vegetables on a balcony.",
			Author:    "Alice Rivera",
			SectionID: "sec-lifestyle",
			Tags:      []string{"garden", "city"},
			CreatedAt: day(1),
		},
		{
			ID:        "a2",
			Title:     "Gardening Through Winter",
			Content:   "Cold frames keep vegetables alive in frost.",
			Author:    "Alice Rivera",
			SectionID: "sec-lifestyle",
			Tags:      []string{"garden", "winter"},
			CreatedAt: day(3),
		},
		{
			ID:        "a3",
			Title:     "City Budget Approved",
			Content:   "The council approved next year's budget.",
			Author:    "Bram Okafor",
			SectionID: "sec-politics",
			Tags:      []string{"city", "council"},
			CreatedAt: day(5),
		},
		{
			ID:        "a4",
			Title:     "Stadium Renovation Plans",
			Content:   "The stadium will be renovated before the season.",
			Author:    "Bram Okafor",
			SectionID: "sec-sports",
			Tags:      []string{"stadium"},
			CreatedAt: day(7),
		},
	}

	ctx := context.Background()
	for _, a := range articles {
		if err := idx.IndexArticle(ctx, a); err != nil {
			t.Fatalf("Failed to index article %s: %v", a.ID, err)
		}
	}
	return articles
}

func searchIDs(t *testing.T, idx *BleveIndex, q *Query) []string {
	t.Helper()

	result, err := idx.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	return result.IDs
}

func assertIDs(t *testing.T, got []string, want ...string) {
	t.Helper()

	seen := make(map[string]bool, len(got))
	for _, id := range got {
		seen[id] = true
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d results %v, got %v", len(want), want, got)
	}
	for _, id := range want {
		if !seen[id] {
			t.Errorf("Expected result %s, got %v", id, got)
		}
	}
}

func TestSearchByText(t *testing.T) {
	idx := openTestIndex(t)
	seedArticles(t, idx)

	ids := searchIDs(t, idx, &Query{Text: "gardening"})
	assertIDs(t, ids, "a1", "a2")

	// Content is searched too
	ids = searchIDs(t, idx, &Query{Text: "budget"})
	assertIDs(t, ids, "a3")
}

func TestSearchSectionFilter(t *testing.T) {
	idx := openTestIndex(t)
	seedArticles(t, idx)

	ids := searchIDs(t, idx, &Query{SectionID: "sec-lifestyle"})
	assertIDs(t, ids, "a1", "a2")

	// Text and section combine conjunctively
	ids = searchIDs(t, idx, &Query{Text: "city", SectionID: "sec-politics"})
	assertIDs(t, ids, "a3")
}

func TestSearchAuthorFilter(t *testing.T) {
	idx := openTestIndex(t)
	seedArticles(t, idx)

	ids := searchIDs(t, idx, &Query{Author: "alice"})
	assertIDs(t, ids, "a1", "a2")
}

func TestSearchTagFilterRequiresAllTags(t *testing.T) {
	idx := openTestIndex(t)
	seedArticles(t, idx)

	ids := searchIDs(t, idx, &Query{Tags: []string{"garden"}})
	assertIDs(t, ids, "a1", "a2")

	ids = searchIDs(t, idx, &Query{Tags: []string{"garden", "winter"}})
	assertIDs(t, ids, "a2")
}

func TestSearchDateRange(t *testing.T) {
	idx := openTestIndex(t)
	seedArticles(t, idx)

	ids := searchIDs(t, idx, &Query{FromDate: day(2), ToDate: day(6)})
	assertIDs(t, ids, "a2", "a3")

	// Open-ended range
	ids = searchIDs(t, idx, &Query{FromDate: day(6)})
	assertIDs(t, ids, "a4")
}

func TestSearchSortByDate(t *testing.T) {
	idx := openTestIndex(t)
	seedArticles(t, idx)

	ids := searchIDs(t, idx, &Query{SortBy: SortDateDesc})
	want := []string{"a4", "a3", "a2", "a1"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("date_desc: expected order %v, got %v", want, ids)
		}
	}

	ids = searchIDs(t, idx, &Query{SortBy: SortDateAsc})
	want = []string{"a1", "a2", "a3", "a4"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("date_asc: expected order %v, got %v", want, ids)
		}
	}
}

func TestSearchMatchAllWhenNoCriteria(t *testing.T) {
	idx := openTestIndex(t)
	seedArticles(t, idx)

	result, err := idx.Search(context.Background(), &Query{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 4 {
		t.Errorf("Expected total 4, got %d", result.Total)
	}
	if result.Page != 1 || result.Limit != 20 {
		t.Errorf("Expected defaults page=1 limit=20, got page=%d limit=%d", result.Page, result.Limit)
	}
}

func TestSearchPagination(t *testing.T) {
	idx := openTestIndex(t)
	seedArticles(t, idx)

	result, err := idx.Search(context.Background(), &Query{SortBy: SortDateAsc, Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 4 {
		t.Errorf("Expected total 4, got %d", result.Total)
	}
	if result.TotalPages != 2 {
		t.Errorf("Expected 2 pages, got %d", result.TotalPages)
	}
	assertIDs(t, result.IDs, "a4")
}

func TestSuggestTitles(t *testing.T) {
	idx := openTestIndex(t)
	seedArticles(t, idx)

	ctx := context.Background()

	titles, err := idx.SuggestTitles(ctx, "Gard", 10)
	if err != nil {
		t.Fatalf("SuggestTitles failed: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("Expected 2 suggestions, got %v", titles)
	}
	// Stored titles keep their original casing
	seen := make(map[string]bool)
	for _, title := range titles {
		seen[title] = true
	}
	if !seen["Urban Gardening Basics"] || !seen["Gardening Through Winter"] {
		t.Errorf("Unexpected suggestions: %v", titles)
	}

	titles, err = idx.SuggestTitles(ctx, "stad", 10)
	if err != nil {
		t.Fatalf("SuggestTitles failed: %v", err)
	}
	if len(titles) != 1 || titles[0] != "Stadium Renovation Plans" {
		t.Errorf("Expected stadium suggestion, got %v", titles)
	}
}

func TestUpdateArticleReplacesDocument(t *testing.T) {
	idx := openTestIndex(t)
	articles := seedArticles(t, idx)

	ctx := context.Background()

	updated := *articles[0]
	updated.Title = "Rooftop Beekeeping"
	updated.Content = "Keeping bees above the city."
	if err := idx.UpdateArticle(ctx, &updated); err != nil {
		t.Fatalf("UpdateArticle failed: %v", err)
	}

	ids := searchIDs(t, idx, &Query{Text: "gardening"})
	assertIDs(t, ids, "a2")

	ids = searchIDs(t, idx, &Query{Text: "beekeeping"})
	assertIDs(t, ids, "a1")
}

func TestDeleteArticleRemovesFromResults(t *testing.T) {
	idx := openTestIndex(t)
	seedArticles(t, idx)

	ctx := context.Background()

	if err := idx.DeleteArticle(ctx, "a3"); err != nil {
		t.Fatalf("DeleteArticle failed: %v", err)
	}

	ids := searchIDs(t, idx, &Query{Text: "budget"})
	assertIDs(t, ids)

	count, err := idx.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 documents after delete, got %d", count)
	}
}
