package strategy

import (
	"errors"
	"fmt"

	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/model"
)

// ReasonInsufficientTechnical is the single reason emitted when the series is too short.
const ReasonInsufficientTechnical = "insufficient technical data"

// TechnicalScorer scores the latest indicator snapshot of a price series.
type TechnicalScorer struct {
	Weights      TechnicalWeights
	Params       calculator.Params
	NeutralScore int
}

// NewTechnicalScorer creates a technical scorer.
func NewTechnicalScorer(w TechnicalWeights, p calculator.Params, neutral int) *TechnicalScorer {
	return &TechnicalScorer{Weights: w, Params: p, NeutralScore: neutral}
}

// Factor returns FactorTechnical.
func (s *TechnicalScorer) Factor() model.Factor { return model.FactorTechnical }

// Evaluate scores the price series held in data.
func (s *TechnicalScorer) Evaluate(data *model.MarketData) model.ScoreResult {
	res, _ := s.Assess(data)
	return res
}

// Assess scores the price series and also returns the snapshot it was scored on.
// The snapshot is nil unless the outcome is SCORED.
func (s *TechnicalScorer) Assess(data *model.MarketData) (model.ScoreResult, *model.IndicatorSnapshot) {
	if data.SeriesErr != nil {
		return providerFailure(model.FactorTechnical, s.NeutralScore, "price data", data.SeriesErr), nil
	}
	if err := data.Series.Validate(); err != nil {
		return providerFailure(model.FactorTechnical, s.NeutralScore, "price data", err), nil
	}
	snap, err := calculator.Snapshot(data.Series.Bars, s.Params)
	if errors.Is(err, calculator.ErrInsufficientData) {
		return model.ScoreResult{
			Factor:  model.FactorTechnical,
			Outcome: model.OutcomeInsufficientData,
			Score:   0,
			Reasons: []string{ReasonInsufficientTechnical},
		}, nil
	}
	if err != nil {
		return providerFailure(model.FactorTechnical, s.NeutralScore, "indicators", err), nil
	}
	return s.ScoreSnapshot(snap), &snap
}

// ScoreSnapshot applies the five technical rules in fixed order. Every rule
// contributes exactly one reason, pass or fail.
func (s *TechnicalScorer) ScoreSnapshot(snap model.IndicatorSnapshot) model.ScoreResult {
	w := s.Weights
	score := 0
	reasons := make([]string, 0, 5)

	if snap.Close > snap.SMAShort {
		score += w.CloseAboveShort
		reasons = append(reasons, fmt.Sprintf("price above SMA%d (%.2f > %.2f)", s.Params.ShortSMA, snap.Close, snap.SMAShort))
	} else {
		reasons = append(reasons, fmt.Sprintf("price not above SMA%d (%.2f <= %.2f)", s.Params.ShortSMA, snap.Close, snap.SMAShort))
	}

	if snap.Close > snap.SMALong {
		score += w.CloseAboveLong
		reasons = append(reasons, fmt.Sprintf("price above SMA%d (%.2f > %.2f)", s.Params.LongSMA, snap.Close, snap.SMALong))
	} else {
		reasons = append(reasons, fmt.Sprintf("price not above SMA%d (%.2f <= %.2f)", s.Params.LongSMA, snap.Close, snap.SMALong))
	}

	switch {
	case snap.RSI >= w.RSILow && snap.RSI <= w.RSIHigh:
		score += w.RSINeutral
		reasons = append(reasons, fmt.Sprintf("RSI %.1f in neutral zone [%.0f, %.0f]", snap.RSI, w.RSILow, w.RSIHigh))
	case snap.RSI < w.RSILow:
		score += w.RSIOversold
		reasons = append(reasons, fmt.Sprintf("RSI %.1f oversold (< %.0f)", snap.RSI, w.RSILow))
	default:
		reasons = append(reasons, fmt.Sprintf("RSI %.1f overbought (> %.0f)", snap.RSI, w.RSIHigh))
	}

	if snap.MACD > 0 {
		score += w.MACDPositive
		reasons = append(reasons, fmt.Sprintf("MACD positive (%.3f)", snap.MACD))
	} else {
		reasons = append(reasons, fmt.Sprintf("MACD not positive (%.3f)", snap.MACD))
	}

	if snap.Volume > snap.VolumeAvg {
		score += w.VolumeAboveAvg
		reasons = append(reasons, fmt.Sprintf("volume above %d-day average (%.0f > %.0f)", s.Params.VolumeSMA, snap.Volume, snap.VolumeAvg))
	} else {
		reasons = append(reasons, fmt.Sprintf("volume not above %d-day average (%.0f <= %.0f)", s.Params.VolumeSMA, snap.Volume, snap.VolumeAvg))
	}

	return model.ScoreResult{
		Factor:  model.FactorTechnical,
		Outcome: model.OutcomeScored,
		Score:   clampScore(score),
		Reasons: reasons,
	}
}

func providerFailure(f model.Factor, neutral int, what string, err error) model.ScoreResult {
	return model.ScoreResult{
		Factor:  f,
		Outcome: model.OutcomeProviderFailure,
		Score:   clampScore(neutral),
		Reasons: []string{fmt.Sprintf("%s unavailable: %v", what, err)},
	}
}
