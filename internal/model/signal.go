package model

import (
	"strings"
	"time"
)

// Factor names one of the three independent sub-scores.
type Factor string

const (
	FactorTechnical   Factor = "technical"
	FactorFundamental Factor = "fundamental"
	FactorSentiment   Factor = "sentiment"
)

// Outcome distinguishes how a sub-score was produced.
type Outcome string

const (
	OutcomeScored           Outcome = "SCORED"
	OutcomeInsufficientData Outcome = "INSUFFICIENT_DATA"
	OutcomeProviderFailure  Outcome = "PROVIDER_FAILURE"
	OutcomeNotApplicable    Outcome = "NOT_APPLICABLE"
)

// ScoreResult is one factor's bounded [0,100] score with its justifications.
type ScoreResult struct {
	Factor  Factor   `json:"factor"`
	Outcome Outcome  `json:"outcome"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Tier is the qualitative recommendation level.
type Tier string

const (
	TierHigh     Tier = "High"
	TierModerate Tier = "Moderate"
	TierLow      Tier = "Low"
)

// Summary returns a one-line recommendation for the tier.
func (t Tier) Summary() string {
	switch t {
	case TierHigh:
		return "High investment recommendation"
	case TierModerate:
		return "Moderate recommendation, review in detail"
	default:
		return "Low investment recommendation"
	}
}

// ConsolidatedResult combines the three sub-scores.
type ConsolidatedResult struct {
	FinalScore int  `json:"final_score"`
	Tier       Tier `json:"tier"`
}

// MarketData is everything the providers returned for one symbol.
// A non-nil *Err field means that provider failed.
type MarketData struct {
	Symbol       string
	Series       PriceSeries
	SeriesErr    error
	Ratios       FundamentalRatios
	RatiosErr    error
	Headlines    []Headline
	HeadlinesErr error
}

// IsIndex reports whether the symbol names an index rather than a single equity.
func IsIndex(symbol string) bool {
	return strings.HasPrefix(symbol, "^")
}

// Analysis is the full output of one evaluation.
type Analysis struct {
	Symbol       string             `json:"symbol"`
	Close        float64            `json:"close"`
	Technical    ScoreResult        `json:"technical"`
	Fundamental  ScoreResult        `json:"fundamental"`
	Sentiment    ScoreResult        `json:"sentiment"`
	Consolidated ConsolidatedResult `json:"consolidated"`
	Indicators   *IndicatorSnapshot `json:"indicators,omitempty"`
	Stats        *MarketStats       `json:"stats,omitempty"`
	AnalyzedAt   time.Time          `json:"analyzed_at"`
}

// SubScores returns the three sub-scores in fixed order.
func (a *Analysis) SubScores() []ScoreResult {
	return []ScoreResult{a.Technical, a.Fundamental, a.Sentiment}
}
