package collector

import (
	"context"

	"StockAdvisor/internal/model"
)

// PriceFetcher supplies daily bars for a symbol over a lookback period such as "1y" or "6mo".
type PriceFetcher interface {
	FetchBars(ctx context.Context, symbol, period string) ([]model.PriceBar, error)
	Name() string
}

// FundamentalsFetcher supplies point-in-time ratios; unpublished ratios are left null.
type FundamentalsFetcher interface {
	FetchRatios(ctx context.Context, symbol string) (model.FundamentalRatios, error)
	Name() string
}

// NewsFetcher supplies recent headlines, in no guaranteed order.
type NewsFetcher interface {
	FetchHeadlines(ctx context.Context, symbol string, limit int) ([]model.Headline, error)
	Name() string
}
