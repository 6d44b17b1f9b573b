// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed fetches recent-paper Atom feeds from the arXiv API and
// parses them into paper records.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// apiBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

const defaultMaxResults = 100

// Client fetches category feeds from the arXiv API.
type Client struct {
	HTTP   *http.Client
	Config types.FeedConfig
}

// queryURL builds the category query, sorted by last-updated date
// descending so the newest revisions come first.
func (c *Client) queryURL(category string) string {
	maxResults := c.Config.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	v := url.Values{}
	v.Set("search_query", "cat:"+category)
	v.Set("start", strconv.Itoa(c.Config.Start))
	v.Set("max_results", strconv.Itoa(maxResults))
	v.Set("sortBy", "lastUpdatedDate")
	v.Set("sortOrder", "descending")
	return apiBase + "?" + v.Encode()
}

// Fetch issues one GET for the category feed and returns the raw Atom
// XML body as UTF-8 text. Network and protocol errors propagate to the
// caller; there is no retry.
func (c *Client) Fetch(ctx context.Context, category string) (string, error) {
	if category == "" {
		return "", fmt.Errorf("empty category")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL(category), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}

// Recent fetches and parses the feed for one category.
func (c *Client) Recent(ctx context.Context, category string) ([]types.PaperRecord, error) {
	raw, err := c.Fetch(ctx, category)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}
