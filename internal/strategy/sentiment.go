package strategy

import (
	"fmt"

	"StockAdvisor/internal/model"
	"StockAdvisor/internal/sentiment"
)

// ReasonNoSentimentData is the reason emitted for an empty headline batch.
const ReasonNoSentimentData = "no data available"

// SentimentScorer maps the share of positive headlines to a score.
type SentimentScorer struct {
	Analyzer     *sentiment.Analyzer
	Thresholds   SentimentThresholds
	NeutralScore int
}

// NewSentimentScorer creates a sentiment scorer around an explicitly constructed analyzer.
func NewSentimentScorer(a *sentiment.Analyzer, t SentimentThresholds, neutral int) *SentimentScorer {
	return &SentimentScorer{Analyzer: a, Thresholds: t, NeutralScore: neutral}
}

// Factor returns FactorSentiment.
func (s *SentimentScorer) Factor() model.Factor { return model.FactorSentiment }

// Evaluate scores the headlines held in data.
func (s *SentimentScorer) Evaluate(data *model.MarketData) model.ScoreResult {
	if data.HeadlinesErr != nil {
		return providerFailure(model.FactorSentiment, s.NeutralScore, "news data", data.HeadlinesErr)
	}
	texts := make([]string, 0, len(data.Headlines))
	for _, h := range data.Headlines {
		texts = append(texts, h.Title)
	}
	return s.Score(texts)
}

// Score classifies each text and applies the step mapping: share strictly above
// HighShare scores high, strictly below LowShare scores low, anything else is mixed.
func (s *SentimentScorer) Score(texts []string) model.ScoreResult {
	t := s.Thresholds
	if len(texts) == 0 {
		return model.ScoreResult{
			Factor:  model.FactorSentiment,
			Outcome: model.OutcomeInsufficientData,
			Score:   clampScore(s.NeutralScore),
			Reasons: []string{ReasonNoSentimentData},
		}
	}

	var pos, neg, neu int
	for _, text := range texts {
		switch sentiment.Classify(s.Analyzer.Polarity(text), t.Polarity) {
		case sentiment.Positive:
			pos++
		case sentiment.Negative:
			neg++
		default:
			neu++
		}
	}
	share := float64(pos) / float64(len(texts))
	counts := fmt.Sprintf("%d positive, %d negative, %d neutral of %d", pos, neg, neu, len(texts))

	var score int
	var reason string
	switch {
	case share > t.HighShare:
		score, reason = t.HighScore, "predominantly positive sentiment ("+counts+")"
	case share < t.LowShare:
		score, reason = t.LowScore, "predominantly negative sentiment ("+counts+")"
	default:
		score, reason = t.MidScore, "mixed sentiment ("+counts+")"
	}

	return model.ScoreResult{
		Factor:  model.FactorSentiment,
		Outcome: model.OutcomeScored,
		Score:   clampScore(score),
		Reasons: []string{reason},
	}
}
