package strategy

import (
	"errors"
	"fmt"
)

// TechnicalWeights holds the point allotment of each technical rule.
type TechnicalWeights struct {
	CloseAboveShort int     `yaml:"close_above_short"`
	CloseAboveLong  int     `yaml:"close_above_long"`
	RSINeutral      int     `yaml:"rsi_neutral"`
	RSIOversold     int     `yaml:"rsi_oversold"`
	MACDPositive    int     `yaml:"macd_positive"`
	VolumeAboveAvg  int     `yaml:"volume_above_avg"`
	RSILow          float64 `yaml:"rsi_low"`
	RSIHigh         float64 `yaml:"rsi_high"`
}

// FundamentalThresholds holds the bands and point allotment of each fundamental rule.
type FundamentalThresholds struct {
	PEMin           float64 `yaml:"pe_min"`
	PEMax           float64 `yaml:"pe_max"`
	PEPoints        int     `yaml:"pe_points"`
	ROEMin          float64 `yaml:"roe_min"`
	ROEPoints       int     `yaml:"roe_points"`
	MarginMin       float64 `yaml:"margin_min"`
	MarginPoints    int     `yaml:"margin_points"`
	DebtToEquityMax float64 `yaml:"debt_to_equity_max"`
	DebtPoints      int     `yaml:"debt_points"`
	DividendPoints  int     `yaml:"dividend_points"`
}

// SentimentThresholds holds the classification dead zone and the step mapping
// from positive-headline share to score.
type SentimentThresholds struct {
	Polarity  float64 `yaml:"polarity"`
	HighShare float64 `yaml:"high_share"`
	LowShare  float64 `yaml:"low_share"`
	HighScore int     `yaml:"high_score"`
	MidScore  int     `yaml:"mid_score"`
	LowScore  int     `yaml:"low_score"`
}

// Thresholds is the full scoring calibration.
type Thresholds struct {
	Technical    TechnicalWeights      `yaml:"technical"`
	Fundamental  FundamentalThresholds `yaml:"fundamental"`
	Sentiment    SentimentThresholds   `yaml:"sentiment"`
	NeutralScore int                   `yaml:"neutral_score"`
}

// DefaultThresholds returns the 5-rule technical scheme (20 points each,
// 10 for oversold RSI) and the 25/25/20/20/10 fundamental scheme.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Technical: TechnicalWeights{
			CloseAboveShort: 20,
			CloseAboveLong:  20,
			RSINeutral:      20,
			RSIOversold:     10,
			MACDPositive:    20,
			VolumeAboveAvg:  20,
			RSILow:          40,
			RSIHigh:         60,
		},
		Fundamental: FundamentalThresholds{
			PEMin:           5,
			PEMax:           25,
			PEPoints:        25,
			ROEMin:          0.15,
			ROEPoints:       25,
			MarginMin:       0.15,
			MarginPoints:    20,
			DebtToEquityMax: 100,
			DebtPoints:      20,
			DividendPoints:  10,
		},
		Sentiment: SentimentThresholds{
			Polarity:  0.05,
			HighShare: 0.60,
			LowShare:  0.40,
			HighScore: 85,
			MidScore:  55,
			LowScore:  30,
		},
		NeutralScore: 50,
	}
}

// Validate checks the calibration for internally inconsistent values.
func (t Thresholds) Validate() error {
	var errs []error
	tw := t.Technical
	for name, v := range map[string]int{
		"close_above_short": tw.CloseAboveShort, "close_above_long": tw.CloseAboveLong,
		"rsi_neutral": tw.RSINeutral, "rsi_oversold": tw.RSIOversold,
		"macd_positive": tw.MACDPositive, "volume_above_avg": tw.VolumeAboveAvg,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("technical.%s must not be negative", name))
		}
	}
	if tw.RSILow > tw.RSIHigh {
		errs = append(errs, fmt.Errorf("technical.rsi_low %.1f above rsi_high %.1f", tw.RSILow, tw.RSIHigh))
	}
	if t.Fundamental.PEMin >= t.Fundamental.PEMax {
		errs = append(errs, errors.New("fundamental.pe_min must be below pe_max"))
	}
	s := t.Sentiment
	if s.Polarity < 0 || s.Polarity >= 1 {
		errs = append(errs, errors.New("sentiment.polarity must be in [0, 1)"))
	}
	if s.LowShare > s.HighShare {
		errs = append(errs, errors.New("sentiment.low_share must not exceed high_share"))
	}
	if t.NeutralScore < 0 || t.NeutralScore > 100 {
		errs = append(errs, errors.New("neutral_score must be in [0, 100]"))
	}
	return errors.Join(errs...)
}

func clampScore(score int) int {
	return max(0, min(100, score))
}
