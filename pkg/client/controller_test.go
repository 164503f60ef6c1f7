package client

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// emptySearchHandler serves empty search results and records the query
// parameters of /api/search requests. Suggestion requests are answered
// but not recorded.
func emptySearchHandler(requests *[]url.Values, mu *sync.Mutex) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			json.NewEncoder(w).Encode(map[string][]string{"suggestions": {}})
			return
		}
		if mu != nil {
			mu.Lock()
			*requests = append(*requests, r.URL.Query())
			mu.Unlock()
		}
		json.NewEncoder(w).Encode(SearchResult{
			Articles: []*ArticleSummary{},
			Sections: []*Section{},
			Query:    r.URL.Query().Get("q"),
		})
	}
}

func TestSubmitSearchBlankQueryIsNoOp(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		emptySearchHandler(nil, nil)(w, r)
	}))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))

	sc.SetQueryText(ctx, "")
	sc.SubmitSearch(ctx)
	sc.SetQueryText(ctx, "   ")
	sc.SubmitSearch(ctx)

	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("Expected no requests for blank query, got %d", n)
	}
	if sc.State() != StateIdle {
		t.Errorf("Expected state to stay idle, got %s", sc.State())
	}
	if sc.Result() != nil {
		t.Error("Expected no result for blank query")
	}
}

func TestSubmitSearchSendsOnlySetFilters(t *testing.T) {
	var mu sync.Mutex
	var requests []url.Values
	server := httptest.NewServer(emptySearchHandler(&requests, &mu))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))
	sc.SetQueryText(ctx, "climate")
	sc.SetFilters(Filters{
		Author: "amina",
		SortBy: "date_desc",
	})
	sc.SubmitSearch(ctx)

	mu.Lock()
	defer mu.Unlock()
	if len(requests) != 1 {
		t.Fatalf("Expected 1 search request, got %d", len(requests))
	}

	params := requests[0]
	if params.Get("q") != "climate" {
		t.Errorf("Expected q=climate, got %q", params.Get("q"))
	}
	if params.Get("author") != "amina" {
		t.Errorf("Expected author=amina, got %q", params.Get("author"))
	}
	if params.Get("sort_by") != "date_desc" {
		t.Errorf("Expected sort_by=date_desc, got %q", params.Get("sort_by"))
	}

	// Unset filters must not appear at all
	for _, key := range []string{"section_id", "tags", "from_date", "to_date"} {
		if _, present := params[key]; present {
			t.Errorf("Expected %q to be absent, got %q", key, params.Get(key))
		}
	}
}

func TestUpdateFilterResubmitsMergedFilters(t *testing.T) {
	var mu sync.Mutex
	var requests []url.Values
	server := httptest.NewServer(emptySearchHandler(&requests, &mu))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))
	sc.SetQueryText(ctx, "harbor")
	sc.SetFilters(Filters{Author: "amina"})

	// Each change re-submits with the full merged set
	sc.UpdateFilter(ctx, "section_id", "sec-1")
	sc.UpdateFilter(ctx, "tags", "transit, ferry")
	sc.UpdateFilter(ctx, "author", "")

	mu.Lock()
	defer mu.Unlock()
	if len(requests) != 3 {
		t.Fatalf("Expected 3 search requests, got %d", len(requests))
	}

	first := requests[0]
	if first.Get("section_id") != "sec-1" || first.Get("author") != "amina" {
		t.Errorf("Expected merged filters on first request, got %v", first)
	}

	second := requests[1]
	if second.Get("tags") != "transit,ferry" {
		t.Errorf("Expected normalized tags, got %q", second.Get("tags"))
	}

	// Falsy value removes the filter from the request entirely
	third := requests[2]
	if _, present := third["author"]; present {
		t.Errorf("Expected author removed, got %q", third.Get("author"))
	}
	if third.Get("section_id") != "sec-1" {
		t.Errorf("Expected section filter retained, got %v", third)
	}
}

func TestSubmitSearchFailureYieldsEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))
	sc.SetQueryText(ctx, "climate")
	sc.SubmitSearch(ctx)

	if sc.State() != StateEmpty {
		t.Errorf("Expected empty state after failure, got %s", sc.State())
	}

	result := sc.Result()
	if result == nil {
		t.Fatal("Expected a result after failure")
	}
	if len(result.Articles) != 0 || len(result.Sections) != 0 {
		t.Error("Expected empty result lists after failure")
	}
	if result.Query != "climate" {
		t.Errorf("Expected result to echo the query, got %q", result.Query)
	}
}

func TestSubmitSearchStates(t *testing.T) {
	var withResults atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			json.NewEncoder(w).Encode(map[string][]string{"suggestions": {}})
			return
		}
		result := SearchResult{
			Articles: []*ArticleSummary{},
			Sections: []*Section{},
			Query:    r.URL.Query().Get("q"),
		}
		if withResults.Load() {
			result.Articles = []*ArticleSummary{{ID: "a1", Title: "Hit"}}
			result.TotalResults = 1
		}
		json.NewEncoder(w).Encode(result)
	}))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))

	withResults.Store(true)
	sc.SetQueryText(ctx, "hit")
	sc.SubmitSearch(ctx)
	if sc.State() != StatePopulated {
		t.Errorf("Expected populated state, got %s", sc.State())
	}

	withResults.Store(false)
	sc.SetQueryText(ctx, "miss")
	sc.SubmitSearch(ctx)
	if sc.State() != StateEmpty {
		t.Errorf("Expected empty state, got %s", sc.State())
	}
}

func TestSubmitSearchClientSideDateSort(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			json.NewEncoder(w).Encode(map[string][]string{"suggestions": {}})
			return
		}
		// Served in relevance order regardless of sort_by
		json.NewEncoder(w).Encode(SearchResult{
			Articles: []*ArticleSummary{
				{ID: "b", CreatedAt: base.Add(2 * time.Hour)},
				{ID: "a", CreatedAt: base},
				{ID: "c", CreatedAt: base.Add(time.Hour)},
				{ID: "d", CreatedAt: base}, // Same timestamp as "a"
			},
			Sections:     []*Section{},
			TotalResults: 4,
			Query:        r.URL.Query().Get("q"),
		})
	}))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))
	sc.SetQueryText(ctx, "anything")
	sc.SetFilters(Filters{SortBy: "date_asc"})
	sc.SubmitSearch(ctx)

	result := sc.Result()
	if result == nil {
		t.Fatal("Expected a result")
	}

	got := make([]string, 0, len(result.Articles))
	for _, a := range result.Articles {
		got = append(got, a.ID)
	}

	// Stable sort keeps "a" before "d" (equal timestamps)
	want := []string{"a", "d", "c", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}

	sc.SetFilters(Filters{SortBy: "date_desc"})
	sc.SubmitSearch(ctx)
	result = sc.Result()
	if result.Articles[0].ID != "b" {
		t.Errorf("Expected newest first for date_desc, got %s", result.Articles[0].ID)
	}
}

func TestSubmitSearchLastRequestWins(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if r.URL.Path != "/api/search" {
			json.NewEncoder(w).Encode(map[string][]string{"suggestions": {}})
			return
		}
		if q == "slow" {
			<-release
		}
		json.NewEncoder(w).Encode(SearchResult{
			Articles:     []*ArticleSummary{{ID: q, Title: q}},
			Sections:     []*Section{},
			TotalResults: 1,
			Query:        q,
		})
	}))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))

	var wg sync.WaitGroup
	wg.Add(1)
	sc.SetQueryText(ctx, "slow")
	go func() {
		defer wg.Done()
		sc.SubmitSearch(ctx)
	}()

	// Let the slow request leave the controller before racing it
	deadline := time.After(2 * time.Second)
	for sc.State() != StateSearching {
		select {
		case <-deadline:
			t.Fatal("First search never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	sc.SetQueryText(ctx, "fast")
	sc.SubmitSearch(ctx)

	if result := sc.Result(); result == nil || result.Query != "fast" {
		t.Fatalf("Expected the fast result to land first, got %+v", result)
	}

	// Release the stale response; it must be discarded
	close(release)
	wg.Wait()

	result := sc.Result()
	if result.Query != "fast" {
		t.Errorf("Expected stale response to be discarded, got query %q", result.Query)
	}
	if sc.State() != StatePopulated {
		t.Errorf("Expected populated state, got %s", sc.State())
	}
}

func TestSetQueryTextShortQuerySkipsSuggestionFetch(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode(map[string][]string{"suggestions": {"go routines"}})
	}))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))

	// Two-rune minimum: one rune fetches nothing
	sc.SetQueryText(ctx, "g")
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("Expected no request below two runes, got %d", n)
	}

	sc.SetQueryText(ctx, "go")
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("Expected exactly one request at two runes, got %d", n)
	}
	if got := sc.Suggestions(); len(got) != 1 || got[0] != "go routines" {
		t.Errorf("Expected fetched suggestions, got %v", got)
	}

	// Shrinking the query clears the list without a request
	sc.SetQueryText(ctx, "g")
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("Expected no extra request, got %d", n)
	}
	if got := sc.Suggestions(); len(got) != 0 {
		t.Errorf("Expected cleared suggestions, got %v", got)
	}
}

func TestFetchSuggestionsLastRequestWins(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "slow query" {
			<-release
		}
		json.NewEncoder(w).Encode(map[string][]string{"suggestions": {q + " suggestion"}})
	}))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sc.SetQueryText(ctx, "slow query")
	}()

	// Give the slow fetch time to record its sequence number
	time.Sleep(50 * time.Millisecond)

	sc.SetQueryText(ctx, "fast query")

	close(release)
	wg.Wait()

	got := sc.Suggestions()
	if len(got) != 1 || got[0] != "fast query suggestion" {
		t.Errorf("Expected the newest fetch to win, got %v", got)
	}
}

func TestFetchSuggestionsFailureKeepsLastGood(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, `{"detail":"unavailable"}`, http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string][]string{"suggestions": {"harbor ferry"}})
	}))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))

	sc.SetQueryText(ctx, "harbor")
	if got := sc.Suggestions(); len(got) != 1 {
		t.Fatalf("Expected one suggestion, got %v", got)
	}

	fail.Store(true)
	sc.SetQueryText(ctx, "harbor f")
	if got := sc.Suggestions(); len(got) != 1 || got[0] != "harbor ferry" {
		t.Errorf("Expected last good suggestions to survive a failure, got %v", got)
	}
}

func TestSelectSuggestionSubmitsSearch(t *testing.T) {
	var mu sync.Mutex
	var requests []url.Values
	server := httptest.NewServer(emptySearchHandler(&requests, &mu))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))
	sc.SetQueryText(ctx, "go")
	sc.SelectSuggestion(ctx, "go concurrency patterns")

	if sc.QueryText() != "go concurrency patterns" {
		t.Errorf("Expected query text to adopt the suggestion, got %q", sc.QueryText())
	}
	if got := sc.Suggestions(); len(got) != 0 {
		t.Errorf("Expected suggestions to be cleared, got %v", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(requests) != 1 || requests[0].Get("q") != "go concurrency patterns" {
		t.Errorf("Expected a search for the suggestion, got %v", requests)
	}
}

func TestAbsorbedFailuresAreLogged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"down"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))

	var buf bytes.Buffer
	sc.SetLogger(log.New(&buf, "", 0))

	sc.SetQueryText(ctx, "climate")
	sc.SubmitSearch(ctx)

	logged := buf.String()
	if !strings.Contains(logged, `suggestion fetch "climate" failed`) {
		t.Errorf("Expected suggestion failure diagnostic, got %q", logged)
	}
	if !strings.Contains(logged, `search "climate" failed`) {
		t.Errorf("Expected search failure diagnostic, got %q", logged)
	}

	// The failures are still absorbed, not surfaced
	if sc.State() != StateEmpty {
		t.Errorf("Expected empty state, got %s", sc.State())
	}
}

func TestReset(t *testing.T) {
	server := httptest.NewServer(emptySearchHandler(nil, nil))
	defer server.Close()

	ctx := context.Background()
	sc := NewSearchController(New(server.URL))
	sc.SetQueryText(ctx, "something")
	sc.SubmitSearch(ctx)

	sc.Reset()

	if sc.State() != StateIdle {
		t.Errorf("Expected idle state after reset, got %s", sc.State())
	}
	if sc.QueryText() != "" {
		t.Errorf("Expected empty query after reset, got %q", sc.QueryText())
	}
	if sc.Result() != nil {
		t.Error("Expected no result after reset")
	}
}
