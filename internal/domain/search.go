package domain

// SearchResponse is the wire shape of a search request's result
type SearchResponse struct {
	Articles     []*ArticleSummary `json:"articles"`
	Sections     []*SectionSummary `json:"sections"`
	TotalResults int               `json:"total_results"`
	Query        string            `json:"query"`
}

// SuggestionsResponse is the wire shape of the suggestion endpoint
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// TagInfo pairs a tag name with its usage count and display weight
type TagInfo struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Weight int    `json:"weight"`
}

// TagsResponse is the wire shape of the tag listing endpoint
type TagsResponse struct {
	Tags []*TagInfo `json:"tags"`
}
