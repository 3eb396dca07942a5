// Package sentiment scores short texts such as news headlines with the VADER
// compound polarity in [-1, 1].
package sentiment

import (
	"math"

	"github.com/jonreiter/govader"
)

// Polarity classes.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Analyzer wraps a VADER intensity analyzer. It is built once and only read
// afterwards, so it is safe for concurrent use.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer creates an analyzer with the stock VADER lexicon.
func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the compound score of text in [-1, 1].
func (a *Analyzer) Polarity(text string) float64 {
	if text == "" {
		return 0
	}
	c := a.vader.PolarityScores(text).Compound
	if math.IsNaN(c) {
		return 0
	}
	return math.Max(-1, math.Min(1, c))
}

// Classify maps a compound score to a polarity class using a symmetric dead zone.
func Classify(compound, threshold float64) string {
	switch {
	case compound > threshold:
		return Positive
	case compound < -threshold:
		return Negative
	default:
		return Neutral
	}
}
