package collector

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"StockAdvisor/internal/model"
)

const gnewsURL = "https://gnews.io"

// GNewsFetcher implements NewsFetcher using the GNews search API.
type GNewsFetcher struct {
	httpSource
	BaseURL string
	APIKey  string
}

// NewGNewsFetcher creates a GNews fetcher.
func NewGNewsFetcher(apiKey, proxyURL string, limiter *rate.Limiter) *GNewsFetcher {
	return &GNewsFetcher{
		httpSource: newHTTPSource("gnews", proxyURL, limiter),
		BaseURL:    gnewsURL,
		APIKey:     apiKey,
	}
}

func (f *GNewsFetcher) Name() string { return "gnews" }

type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (f *GNewsFetcher) FetchHeadlines(ctx context.Context, symbol string, limit int) ([]model.Headline, error) {
	q := url.Values{}
	q.Set("q", symbol)
	q.Set("lang", "en")
	q.Set("max", fmt.Sprint(limit))
	q.Set("apikey", f.APIKey)
	endpoint := f.BaseURL + "/api/v4/search?" + q.Encode()

	var resp gnewsResponse
	if err := f.getJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("gnews search: %w", err)
	}
	headlines := make([]model.Headline, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" {
			continue
		}
		h := model.Headline{Title: a.Title, Source: a.Source.Name}
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			h.Published = t.Unix()
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
