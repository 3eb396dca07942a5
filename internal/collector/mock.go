package collector

import (
	"context"
	"time"

	"StockAdvisor/internal/model"
)

// mockEpoch anchors generated bars so repeated runs produce identical series.
var mockEpoch = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// MockFetcher returns controllable fixed data for development and testing.
// It implements PriceFetcher, FundamentalsFetcher and NewsFetcher.
type MockFetcher struct {
	Price     float64
	Bars      []model.PriceBar
	Ratios    *model.FundamentalRatios
	Headlines []model.Headline

	BarsErr      error
	RatiosErr    error
	HeadlinesErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, _ string, period string) ([]model.PriceBar, error) {
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	n, err := PeriodBars(period)
	if err != nil {
		return nil, err
	}
	return generateMockBars(m.Price, n), nil
}

func (m *MockFetcher) FetchRatios(_ context.Context, _ string) (model.FundamentalRatios, error) {
	if m.RatiosErr != nil {
		return model.FundamentalRatios{}, m.RatiosErr
	}
	if m.Ratios != nil {
		return *m.Ratios, nil
	}
	return model.FundamentalRatios{}, nil
}

func (m *MockFetcher) FetchHeadlines(_ context.Context, _ string, limit int) ([]model.Headline, error) {
	if m.HeadlinesErr != nil {
		return nil, m.HeadlinesErr
	}
	if limit > 0 && len(m.Headlines) > limit {
		return m.Headlines[:limit], nil
	}
	return m.Headlines, nil
}

// generateMockBars builds a gently rising series of count daily bars.
func generateMockBars(basePrice float64, count int) []model.PriceBar {
	if basePrice <= 0 {
		basePrice = 100
	}
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Time:   mockEpoch.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
