package collector

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/guregu/null/v6"
	"golang.org/x/time/rate"

	"StockAdvisor/internal/model"
)

const (
	yahooChartURL   = "https://query1.finance.yahoo.com"
	yahooSummaryURL = "https://query2.finance.yahoo.com"
)

// YahooFetcher implements PriceFetcher, FundamentalsFetcher and NewsFetcher
// using the Yahoo Finance public API. Symbols are sent as given, so indexes
// must use the Yahoo form such as ^GSPC.
type YahooFetcher struct {
	httpSource
	ChartURL   string
	SummaryURL string
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string, limiter *rate.Limiter) *YahooFetcher {
	return &YahooFetcher{
		httpSource: newHTTPSource("yahoo", proxyURL, limiter),
		ChartURL:   yahooChartURL,
		SummaryURL: yahooSummaryURL,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func at(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

// FetchBars returns daily bars for period, oldest first. Holiday rows that
// Yahoo reports as nulls are skipped.
func (f *YahooFetcher) FetchBars(ctx context.Context, symbol, period string) ([]model.PriceBar, error) {
	if _, err := PeriodBars(period); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.ChartURL, url.PathEscape(symbol), url.QueryEscape(period))

	var chart yahooChart
	if err := f.getJSON(ctx, u, nil, &chart); err != nil {
		return nil, fmt.Errorf("yahoo chart: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if o == 0 || h == 0 || l == 0 || c == 0 {
			continue
		}
		bars = append(bars, model.PriceBar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: at(quote.Volume, i),
		})
	}
	return NormalizeBars(bars), nil
}

type yahooValue struct {
	Raw *float64 `json:"raw"`
}

func (v yahooValue) Float() null.Float { return null.FloatFromPtr(v.Raw) }

type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE    yahooValue `json:"trailingPE"`
				DividendYield yahooValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			FinancialData struct {
				ReturnOnEquity yahooValue `json:"returnOnEquity"`
				ProfitMargins  yahooValue `json:"profitMargins"`
				DebtToEquity   yahooValue `json:"debtToEquity"`
			} `json:"financialData"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"quoteSummary"`
}

// FetchRatios returns the ratios Yahoo publishes for symbol. Debt to equity is
// reported as a percentage.
func (f *YahooFetcher) FetchRatios(ctx context.Context, symbol string) (model.FundamentalRatios, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryDetail,financialData",
		f.SummaryURL, url.PathEscape(symbol))

	var summary yahooSummary
	if err := f.getJSON(ctx, u, nil, &summary); err != nil {
		return model.FundamentalRatios{}, fmt.Errorf("yahoo quote summary: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return model.FundamentalRatios{}, fmt.Errorf("yahoo api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return model.FundamentalRatios{}, nil
	}
	r := summary.QuoteSummary.Result[0]
	return model.FundamentalRatios{
		PriceToEarnings: r.SummaryDetail.TrailingPE.Float(),
		ReturnOnEquity:  r.FinancialData.ReturnOnEquity.Float(),
		ProfitMargin:    r.FinancialData.ProfitMargins.Float(),
		DebtToEquity:    r.FinancialData.DebtToEquity.Float(),
		DividendYield:   r.SummaryDetail.DividendYield.Float(),
	}, nil
}

type yahooSearch struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// FetchHeadlines returns up to limit news titles from the Yahoo search API.
func (f *YahooFetcher) FetchHeadlines(ctx context.Context, symbol string, limit int) ([]model.Headline, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=0&newsCount=%d",
		f.ChartURL, url.QueryEscape(symbol), limit)

	var search yahooSearch
	if err := f.getJSON(ctx, u, nil, &search); err != nil {
		return nil, fmt.Errorf("yahoo search: %w", err)
	}
	headlines := make([]model.Headline, 0, len(search.News))
	for _, n := range search.News {
		if n.Title == "" {
			continue
		}
		headlines = append(headlines, model.Headline{Title: n.Title, Source: n.Publisher, Published: n.ProviderPublishTime})
		if limit > 0 && len(headlines) == limit {
			break
		}
	}
	return headlines, nil
}
