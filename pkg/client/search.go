package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// SearchRequest carries a search query and its filters. Zero-valued
// fields are left out of the request entirely.
type SearchRequest struct {
	Query     string
	SectionID string
	Author    string
	Tags      []string
	FromDate  string // YYYY-MM-DD or RFC3339
	ToDate    string
	SortBy    string // relevance, date_asc, date_desc
	Page      int
	Limit     int
}

// values encodes the request as query parameters, skipping empty
// fields
func (r *SearchRequest) values() url.Values {
	query := url.Values{}
	if r.Query != "" {
		query.Set("q", r.Query)
	}
	if r.SectionID != "" {
		query.Set("section_id", r.SectionID)
	}
	if r.Author != "" {
		query.Set("author", r.Author)
	}
	if len(r.Tags) > 0 {
		query.Set("tags", strings.Join(r.Tags, ","))
	}
	if r.FromDate != "" {
		query.Set("from_date", r.FromDate)
	}
	if r.ToDate != "" {
		query.Set("to_date", r.ToDate)
	}
	if r.SortBy != "" {
		query.Set("sort_by", r.SortBy)
	}
	if r.Page > 0 {
		query.Set("page", strconv.Itoa(r.Page))
	}
	if r.Limit > 0 {
		query.Set("limit", strconv.Itoa(r.Limit))
	}
	return query
}

// Search runs a search with the given query and filters
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	var result SearchResult
	if err := c.get(ctx, "/api/search", req.values(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Suggestions fetches typeahead suggestions for a partial query
func (c *Client) Suggestions(ctx context.Context, q string) ([]string, error) {
	query := url.Values{}
	query.Set("q", q)

	var result struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.get(ctx, "/api/search/suggestions", query, &result); err != nil {
		return nil, err
	}
	return result.Suggestions, nil
}
