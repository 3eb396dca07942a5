package strategy

import (
	"golang.org/x/sync/errgroup"

	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/sentiment"
)

// Scorer produces one bounded sub-score from market data.
type Scorer interface {
	Factor() model.Factor
	Evaluate(data *model.MarketData) model.ScoreResult
}

var (
	_ Scorer = (*TechnicalScorer)(nil)
	_ Scorer = (*FundamentalScorer)(nil)
	_ Scorer = (*SentimentScorer)(nil)
)

// Tiers maps consolidated scores to recommendation tiers, highest first.
// Each lower bound is inclusive.
var Tiers = []struct {
	MinScore int
	Tier     model.Tier
}{
	{75, model.TierHigh},
	{50, model.TierModerate},
}

// DefaultTier is the tier for scores below every bound in Tiers.
var DefaultTier = model.TierLow

// mapTier maps a final score to a Tier.
func mapTier(finalScore int) model.Tier {
	for _, t := range Tiers {
		if finalScore >= t.MinScore {
			return t.Tier
		}
	}
	return DefaultTier
}

// Aggregate combines three sub-scores into the truncated mean and its tier.
func Aggregate(technical, fundamental, sentiment model.ScoreResult) model.ConsolidatedResult {
	sum := clampScore(technical.Score) + clampScore(fundamental.Score) + clampScore(sentiment.Score)
	final := sum / 3
	return model.ConsolidatedResult{FinalScore: final, Tier: mapTier(final)}
}

// Engine evaluates the three independent scorers and aggregates them.
// It holds no mutable state and may be shared between goroutines.
type Engine struct {
	Technical   *TechnicalScorer
	Fundamental *FundamentalScorer
	Sentiment   *SentimentScorer
}

// NewEngine creates an Engine from a calibration, indicator windows, and an analyzer.
func NewEngine(th Thresholds, params calculator.Params, analyzer *sentiment.Analyzer) *Engine {
	return &Engine{
		Technical:   NewTechnicalScorer(th.Technical, params, th.NeutralScore),
		Fundamental: NewFundamentalScorer(th.Fundamental, th.NeutralScore),
		Sentiment:   NewSentimentScorer(analyzer, th.Sentiment, th.NeutralScore),
	}
}

// Evaluate scores data. The three scorers run concurrently; aggregation waits
// for all of them. AnalyzedAt is left for the caller to stamp.
func (e *Engine) Evaluate(data *model.MarketData) *model.Analysis {
	a := &model.Analysis{Symbol: data.Symbol}

	var g errgroup.Group
	g.Go(func() error {
		a.Technical, a.Indicators = e.Technical.Assess(data)
		return nil
	})
	g.Go(func() error {
		a.Fundamental = e.Fundamental.Evaluate(data)
		return nil
	})
	g.Go(func() error {
		a.Sentiment = e.Sentiment.Evaluate(data)
		return nil
	})
	_ = g.Wait()

	a.Consolidated = Aggregate(a.Technical, a.Fundamental, a.Sentiment)

	if data.SeriesErr == nil && data.Series.Validate() == nil {
		if last, ok := data.Series.Last(); ok {
			a.Close = last.Close
		}
		if st, err := calculator.Stats(data.Series); err == nil {
			a.Stats = &st
		}
	}
	return a
}
