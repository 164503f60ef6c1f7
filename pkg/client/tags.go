package client

import (
	"context"
	"net/url"

	"github.com/minbar-press/minbar/pkg/tags"
)

// Tags fetches every tag with its usage count
func (c *Client) Tags(ctx context.Context) ([]*TagInfo, error) {
	var result struct {
		Tags []*TagInfo `json:"tags"`
	}
	if err := c.get(ctx, "/api/tags", nil, &result); err != nil {
		return nil, err
	}
	return result.Tags, nil
}

// TagArticles fetches all articles carrying a tag
func (c *Client) TagArticles(ctx context.Context, name string) ([]*ArticleSummary, error) {
	var result struct {
		Articles []*ArticleSummary `json:"articles"`
	}
	if err := c.get(ctx, "/api/tags/"+url.PathEscape(name)+"/articles", nil, &result); err != nil {
		return nil, err
	}
	return result.Articles, nil
}

// TagCloud fetches the tag listing and computes display tiers locally
// from the counts, so the cloud renders the same against any server
// version
func (c *Client) TagCloud(ctx context.Context) (map[string]int, error) {
	infos, err := c.Tags(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(infos))
	for _, info := range infos {
		counts[info.Name] = info.Count
	}
	return tags.ComputeWeights(counts), nil
}
