package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

func testCfg() types.FeedConfig {
	return types.FeedConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
	}
}

func TestClientFetchQueryParameters(t *testing.T) {
	var gotQuery map[string]string
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, sampleFeedXML)
	}))
	defer ts.Close()

	old := apiBase
	apiBase = ts.URL
	defer func() { apiBase = old }()

	c := &Client{HTTP: ts.Client(), Config: testCfg()}
	body, err := c.Fetch(context.Background(), "cs.SE")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(body, "<feed") {
		t.Error("body should contain the raw feed text")
	}

	want := map[string]string{
		"search_query": "cat:cs.SE",
		"start":        "0",
		"max_results":  "100",
		"sortBy":       "lastUpdatedDate",
		"sortOrder":    "descending",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query[%q] = %q, want %q", k, gotQuery[k], v)
		}
	}
	if gotUA != "test/0.1" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "test/0.1")
	}
}

func TestClientFetchMaxResultsAndStart(t *testing.T) {
	var gotStart, gotMax string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStart = r.URL.Query().Get("start")
		gotMax = r.URL.Query().Get("max_results")
		fmt.Fprint(w, sampleFeedXML)
	}))
	defer ts.Close()

	old := apiBase
	apiBase = ts.URL
	defer func() { apiBase = old }()

	cfg := testCfg()
	cfg.MaxResults = 50
	cfg.Start = 200
	c := &Client{HTTP: ts.Client(), Config: cfg}
	if _, err := c.Fetch(context.Background(), "cs.SE"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotStart != "200" {
		t.Errorf("start = %q, want %q", gotStart, "200")
	}
	if gotMax != "50" {
		t.Errorf("max_results = %q, want %q", gotMax, "50")
	}
}

func TestClientFetchEmptyCategory(t *testing.T) {
	c := &Client{HTTP: http.DefaultClient, Config: testCfg()}
	_, err := c.Fetch(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "empty category") {
		t.Errorf("expected empty category error, got: %v", err)
	}
}

func TestClientFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := apiBase
	apiBase = ts.URL
	defer func() { apiBase = old }()

	c := &Client{HTTP: ts.Client(), Config: testCfg()}
	_, err := c.Fetch(context.Background(), "cs.SE")
	if err == nil || !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("expected HTTP 500 error, got: %v", err)
	}
}

func TestClientRecent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, sampleFeedXML)
	}))
	defer ts.Close()

	old := apiBase
	apiBase = ts.URL
	defer func() { apiBase = old }()

	c := &Client{HTTP: ts.Client(), Config: testCfg()}
	records, err := c.Recent(context.Background(), "cs.SE")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Title == nil || *records[0].Title != "A Study of Build Systems" {
		t.Errorf("records[0].Title = %v", records[0].Title)
	}
}

func TestClientRecentMalformedFeed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<feed><entry>`)
	}))
	defer ts.Close()

	old := apiBase
	apiBase = ts.URL
	defer func() { apiBase = old }()

	c := &Client{HTTP: ts.Client(), Config: testCfg()}
	_, err := c.Recent(context.Background(), "cs.SE")
	if err == nil || !strings.Contains(err.Error(), "parsing feed") {
		t.Errorf("expected parse error, got: %v", err)
	}
}
