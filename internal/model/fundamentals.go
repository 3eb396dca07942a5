package model

import "github.com/guregu/null/v6"

// FundamentalRatios holds point-in-time financial ratios for a symbol.
// Any field may be null when the provider does not publish it; null is
// distinct from zero.
type FundamentalRatios struct {
	PriceToEarnings null.Float `json:"price_to_earnings"`
	ReturnOnEquity  null.Float `json:"return_on_equity"`
	ProfitMargin    null.Float `json:"profit_margin"`
	DebtToEquity    null.Float `json:"debt_to_equity"` // percent, e.g. 150 = 1.5x
	DividendYield   null.Float `json:"dividend_yield"`
}

// Headline is a single news item title used for sentiment scoring.
type Headline struct {
	Title     string `json:"title"`
	Source    string `json:"source,omitempty"`
	Published int64  `json:"published,omitempty"`
}
