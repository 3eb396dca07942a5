package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"StockAdvisor/internal/model"
)

// RESTFetcher implements PriceFetcher against a generic bars REST API
// authenticated with a bearer token.
type RESTFetcher struct {
	httpSource
	BaseURL string
	APIKey  string
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, limiter *rate.Limiter) *RESTFetcher {
	return &RESTFetcher{
		httpSource: newHTTPSource("rest", proxyURL, limiter),
		BaseURL:    baseURL,
		APIKey:     apiKey,
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTFetcher) FetchBars(ctx context.Context, symbol, period string) ([]model.PriceBar, error) {
	limit, err := PeriodBars(period)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d", f.BaseURL, url.QueryEscape(symbol), limit)

	var header http.Header
	if f.APIKey != "" {
		header = http.Header{"Authorization": {"Bearer " + f.APIKey}}
	}
	var raw []restBar
	if err := f.getJSON(ctx, endpoint, header, &raw); err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	bars := make([]model.PriceBar, len(raw))
	for i, rb := range raw {
		bars[i] = model.PriceBar{
			Time:   time.Unix(rb.Timestamp, 0).UTC(),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	return NormalizeBars(bars), nil
}
