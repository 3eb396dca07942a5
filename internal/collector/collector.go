package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"StockAdvisor/internal/model"
)

// ErrNoProvider is recorded when no fetcher is configured for a required input.
var ErrNoProvider = errors.New("no provider configured")

// Collector gathers the three scoring inputs for a symbol.
type Collector struct {
	Prices       PriceFetcher
	Fundamentals FundamentalsFetcher
	News         NewsFetcher
	Period       string
	NewsLimit    int

	now func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(prices PriceFetcher, fundamentals FundamentalsFetcher, news NewsFetcher, period string, newsLimit int) *Collector {
	return &Collector{
		Prices:       prices,
		Fundamentals: fundamentals,
		News:         news,
		Period:       period,
		NewsLimit:    newsLimit,
		now:          time.Now,
	}
}

// Collect fetches bars, ratios and headlines concurrently. A failing provider
// is recorded on the matching error field and never aborts the other fetches.
// Fundamentals are not requested for index symbols.
func (c *Collector) Collect(ctx context.Context, symbol string) *model.MarketData {
	data := &model.MarketData{Symbol: symbol}
	logger := log.With().Str("symbol", symbol).Logger()

	var g errgroup.Group
	g.Go(func() error {
		if c.Prices == nil {
			data.SeriesErr = ErrNoProvider
			return nil
		}
		bars, err := c.Prices.FetchBars(ctx, symbol, c.Period)
		if err != nil {
			logger.Warn().Err(err).Str("provider", c.Prices.Name()).Msg("price fetch failed")
			data.SeriesErr = fmt.Errorf("%s: %w", c.Prices.Name(), err)
			return nil
		}
		data.Series = model.PriceSeries{Symbol: symbol, Bars: NormalizeBars(bars), FetchedAt: c.clock()}
		logger.Debug().Int("bars", len(data.Series.Bars)).Str("provider", c.Prices.Name()).Msg("bars fetched")
		return nil
	})
	g.Go(func() error {
		if model.IsIndex(symbol) {
			return nil
		}
		if c.Fundamentals == nil {
			data.RatiosErr = ErrNoProvider
			return nil
		}
		ratios, err := c.Fundamentals.FetchRatios(ctx, symbol)
		if err != nil {
			logger.Warn().Err(err).Str("provider", c.Fundamentals.Name()).Msg("fundamentals fetch failed")
			data.RatiosErr = fmt.Errorf("%s: %w", c.Fundamentals.Name(), err)
			return nil
		}
		data.Ratios = ratios
		return nil
	})
	g.Go(func() error {
		if c.News == nil {
			return nil
		}
		headlines, err := c.News.FetchHeadlines(ctx, symbol, c.NewsLimit)
		if err != nil {
			logger.Warn().Err(err).Str("provider", c.News.Name()).Msg("news fetch failed")
			data.HeadlinesErr = fmt.Errorf("%s: %w", c.News.Name(), err)
			return nil
		}
		data.Headlines = headlines
		logger.Debug().Int("headlines", len(headlines)).Str("provider", c.News.Name()).Msg("news fetched")
		return nil
	})
	_ = g.Wait()
	return data
}

func (c *Collector) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// NormalizeBars returns the bars sorted by time with NaN or infinite values,
// non-positive prices, negative volumes and duplicate timestamps removed. The last bar wins on
// duplicates. The input slice is not modified.
func NormalizeBars(bars []model.PriceBar) []model.PriceBar {
	out := make([]model.PriceBar, 0, len(bars))
	for _, b := range bars {
		if !b.Finite() || b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 || b.Volume < 0 {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })

	deduped := out[:0]
	for _, b := range out {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(b.Time) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	return deduped
}
