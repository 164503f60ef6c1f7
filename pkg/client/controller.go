package client

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// minSuggestionRunes is the query length below which no suggestion
// fetch is issued
const minSuggestionRunes = 2

// ViewState is the search view's display state
type ViewState int

const (
	// StateIdle means no search has been submitted yet
	StateIdle ViewState = iota
	// StateSearching means a search is in flight
	StateSearching
	// StatePopulated means the last search returned results
	StatePopulated
	// StateEmpty means the last search returned nothing or failed
	StateEmpty
)

func (s ViewState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StatePopulated:
		return "populated"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Filters are the active search filters. Empty fields are not sent.
type Filters struct {
	SectionID string
	Author    string
	Tags      []string
	FromDate  string
	ToDate    string
	SortBy    string
}

// Logger receives diagnostics for failures the controller absorbs
// instead of returning. The standard library's *log.Logger satisfies
// it.
type Logger interface {
	Printf(format string, args ...interface{})
}

// SearchController drives the search view: it tracks the query text
// and filters, submits searches, fetches typeahead suggestions, and
// keeps only the newest in-flight request's outcome when responses
// arrive out of order.
type SearchController struct {
	client *Client

	mu          sync.Mutex
	logger      Logger
	queryText   string
	filters     Filters
	state       ViewState
	result      *SearchResult
	suggestions []string
	searchSeq   uint64
	suggestSeq  uint64
}

// NewSearchController creates a controller bound to a client
func NewSearchController(client *Client) *SearchController {
	return &SearchController{
		client: client,
		state:  StateIdle,
	}
}

// SetLogger directs diagnostics for absorbed failures, such as a
// search request that was coalesced into an empty result. A nil
// logger silences them.
func (sc *SearchController) SetLogger(logger Logger) {
	sc.mu.Lock()
	sc.logger = logger
	sc.mu.Unlock()
}

func (sc *SearchController) logf(format string, args ...interface{}) {
	sc.mu.Lock()
	logger := sc.logger
	sc.mu.Unlock()
	if logger != nil {
		logger.Printf(format, args...)
	}
}

// SetQueryText updates the query text. Text of at least two runes
// fires a suggestion fetch; shorter text clears the suggestions
// without a request. A search is not submitted.
func (sc *SearchController) SetQueryText(ctx context.Context, text string) {
	sc.mu.Lock()
	sc.queryText = text
	sc.mu.Unlock()

	sc.FetchSuggestions(ctx)
}

// QueryText returns the current query text
func (sc *SearchController) QueryText() string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.queryText
}

// SetFilters replaces the active filters
func (sc *SearchController) SetFilters(filters Filters) {
	sc.mu.Lock()
	sc.filters = filters
	sc.mu.Unlock()
}

// UpdateFilter merges a single filter change and re-submits the search
// with the full merged set. Keys match the search query parameters;
// tags take a comma-separated list. An empty value removes the filter.
func (sc *SearchController) UpdateFilter(ctx context.Context, key, value string) {
	sc.mu.Lock()
	switch key {
	case "section_id":
		sc.filters.SectionID = value
	case "author":
		sc.filters.Author = value
	case "tags":
		sc.filters.Tags = nil
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				sc.filters.Tags = append(sc.filters.Tags, tag)
			}
		}
	case "from_date":
		sc.filters.FromDate = value
	case "to_date":
		sc.filters.ToDate = value
	case "sort_by":
		sc.filters.SortBy = value
	}
	sc.mu.Unlock()

	sc.SubmitSearch(ctx)
}

// Filters returns a copy of the active filters
func (sc *SearchController) Filters() Filters {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	filters := sc.filters
	filters.Tags = append([]string(nil), sc.filters.Tags...)
	return filters
}

// State returns the current view state
func (sc *SearchController) State() ViewState {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.state
}

// Result returns the last search result, nil before the first search
func (sc *SearchController) Result() *SearchResult {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.result
}

// Suggestions returns the current typeahead suggestions
func (sc *SearchController) Suggestions() []string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return append([]string(nil), sc.suggestions...)
}

// SubmitSearch runs a search for the current query text and filters.
// Blank query text is a no-op. A failed request yields an empty result
// echoing the query rather than an error, matching how the view treats
// failures. When searches overlap, only the newest submission's
// outcome is kept.
func (sc *SearchController) SubmitSearch(ctx context.Context) {
	sc.mu.Lock()
	text := strings.TrimSpace(sc.queryText)
	if text == "" {
		sc.mu.Unlock()
		return
	}

	sc.searchSeq++
	seq := sc.searchSeq
	sc.state = StateSearching
	req := &SearchRequest{
		Query:     text,
		SectionID: sc.filters.SectionID,
		Author:    sc.filters.Author,
		Tags:      append([]string(nil), sc.filters.Tags...),
		FromDate:  sc.filters.FromDate,
		ToDate:    sc.filters.ToDate,
		SortBy:    sc.filters.SortBy,
	}
	sc.mu.Unlock()

	result, err := sc.client.Search(ctx, req)
	if err != nil {
		sc.logf("search %q failed, showing empty results: %v", text, err)
		result = &SearchResult{
			Articles: []*ArticleSummary{},
			Sections: []*Section{},
			Query:    text,
		}
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	// A newer search was submitted while this one was in flight
	if seq != sc.searchSeq {
		return
	}

	sortResults(result.Articles, req.SortBy)

	sc.result = result
	if len(result.Articles) == 0 && len(result.Sections) == 0 {
		sc.state = StateEmpty
	} else {
		sc.state = StatePopulated
	}
}

// sortResults applies a client-side date ordering so the view stays
// consistent even when the server ranked by relevance. The sort is
// stable: equal timestamps keep their server order.
func sortResults(articles []*ArticleSummary, sortBy string) {
	switch sortBy {
	case "date_asc":
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].CreatedAt.Before(articles[j].CreatedAt)
		})
	case "date_desc":
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[j].CreatedAt.Before(articles[i].CreatedAt)
		})
	}
}

// FetchSuggestions fetches typeahead suggestions for the current query
// text. Queries shorter than two runes clear the suggestions without a
// request. Overlapping fetches keep only the newest request's outcome.
func (sc *SearchController) FetchSuggestions(ctx context.Context) {
	sc.mu.Lock()
	text := strings.TrimSpace(sc.queryText)

	sc.suggestSeq++
	seq := sc.suggestSeq

	if utf8.RuneCountInString(text) < minSuggestionRunes {
		sc.suggestions = nil
		sc.mu.Unlock()
		return
	}
	sc.mu.Unlock()

	suggestions, err := sc.client.Suggestions(ctx, text)
	if err != nil {
		sc.logf("suggestion fetch %q failed, keeping previous: %v", text, err)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if seq != sc.suggestSeq {
		return
	}
	if err != nil {
		// Keep the last good suggestions when a fetch fails
		return
	}
	sc.suggestions = suggestions
}

// SelectSuggestion adopts a suggestion as the query text, clears the
// suggestion list, and submits a search
func (sc *SearchController) SelectSuggestion(ctx context.Context, suggestion string) {
	sc.mu.Lock()
	sc.queryText = suggestion
	sc.suggestions = nil
	sc.suggestSeq++ // Invalidate any in-flight suggestion fetch
	sc.mu.Unlock()

	sc.SubmitSearch(ctx)
}

// Reset returns the controller to its initial state, keeping the
// filters
func (sc *SearchController) Reset() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.queryText = ""
	sc.state = StateIdle
	sc.result = nil
	sc.suggestions = nil
	sc.searchSeq++
	sc.suggestSeq++
}
