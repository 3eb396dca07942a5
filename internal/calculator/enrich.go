package calculator

import (
	"errors"
	"fmt"

	"github.com/guregu/null/v6"

	"StockAdvisor/internal/model"
)

// ErrInsufficientData is returned when the latest bar lacks a complete indicator row.
var ErrInsufficientData = errors.New("insufficient data for indicators")

// Params holds the indicator window lengths.
type Params struct {
	ShortSMA  int `yaml:"short_sma"`
	LongSMA   int `yaml:"long_sma"`
	FastEMA   int `yaml:"fast_ema"`
	SlowEMA   int `yaml:"slow_ema"`
	SignalEMA int `yaml:"signal_ema"`
	RSI       int `yaml:"rsi"`
	VolumeSMA int `yaml:"volume_sma"`
}

// DefaultParams returns the standard 20/50 SMA, 12/26/9 MACD, RSI(14), 10-day volume windows.
func DefaultParams() Params {
	return Params{
		ShortSMA:  20,
		LongSMA:   50,
		FastEMA:   12,
		SlowEMA:   26,
		SignalEMA: 9,
		RSI:       14,
		VolumeSMA: 10,
	}
}

// Warmup returns the minimum number of bars needed for a complete row.
func (p Params) Warmup() int {
	return max(p.ShortSMA, p.LongSMA, p.RSI+1, p.VolumeSMA, 1)
}

// Validate checks that every window is positive.
func (p Params) Validate() error {
	for name, v := range map[string]int{
		"short_sma": p.ShortSMA, "long_sma": p.LongSMA, "fast_ema": p.FastEMA,
		"slow_ema": p.SlowEMA, "signal_ema": p.SignalEMA, "rsi": p.RSI, "volume_sma": p.VolumeSMA,
	} {
		if v <= 0 {
			return fmt.Errorf("indicator window %s must be positive, got %d", name, v)
		}
	}
	return nil
}

// Enrich derives every indicator column for each bar. The input is not modified.
func Enrich(bars []model.PriceBar, p Params) ([]model.IndicatorRow, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	smaShort, err := RollingSMA(closes, p.ShortSMA)
	if err != nil {
		return nil, fmt.Errorf("short sma: %w", err)
	}
	smaLong, err := RollingSMA(closes, p.LongSMA)
	if err != nil {
		return nil, fmt.Errorf("long sma: %w", err)
	}
	volAvg, err := RollingSMA(volumes, p.VolumeSMA)
	if err != nil {
		return nil, fmt.Errorf("volume sma: %w", err)
	}
	emaFast, err := EMA(closes, p.FastEMA)
	if err != nil {
		return nil, fmt.Errorf("fast ema: %w", err)
	}
	emaSlow, err := EMA(closes, p.SlowEMA)
	if err != nil {
		return nil, fmt.Errorf("slow ema: %w", err)
	}
	macd := make([]float64, len(bars))
	for i := range macd {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	signal, err := EMA(macd, p.SignalEMA)
	if err != nil {
		return nil, fmt.Errorf("macd signal: %w", err)
	}
	rsi, err := RSI(closes, p.RSI)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}

	rows := make([]model.IndicatorRow, len(bars))
	for i, b := range bars {
		rows[i] = model.IndicatorRow{
			Bar:        b,
			SMAShort:   smaShort[i],
			SMALong:    smaLong[i],
			EMAFast:    null.FloatFrom(emaFast[i]),
			EMASlow:    null.FloatFrom(emaSlow[i]),
			MACD:       null.FloatFrom(macd[i]),
			MACDSignal: null.FloatFrom(signal[i]),
			RSI:        rsi[i],
			VolumeAvg:  volAvg[i],
		}
	}
	return rows, nil
}

// Snapshot returns the indicator values at the most recent bar, or
// ErrInsufficientData when that row is incomplete.
func Snapshot(bars []model.PriceBar, p Params) (model.IndicatorSnapshot, error) {
	if len(bars) == 0 {
		return model.IndicatorSnapshot{}, fmt.Errorf("%w: empty series", ErrInsufficientData)
	}
	if len(bars) < p.Warmup() {
		return model.IndicatorSnapshot{}, fmt.Errorf("%w: have %d bars, need %d",
			ErrInsufficientData, len(bars), p.Warmup())
	}
	rows, err := Enrich(bars, p)
	if err != nil {
		return model.IndicatorSnapshot{}, err
	}
	last := rows[len(rows)-1]
	if !last.Complete() {
		return model.IndicatorSnapshot{}, fmt.Errorf("%w: latest row incomplete", ErrInsufficientData)
	}
	return model.IndicatorSnapshot{
		Close:      last.Bar.Close,
		Volume:     last.Bar.Volume,
		SMAShort:   last.SMAShort.Float64,
		SMALong:    last.SMALong.Float64,
		RSI:        last.RSI.Float64,
		MACD:       last.MACD.Float64,
		MACDSignal: last.MACDSignal.Float64,
		VolumeAvg:  last.VolumeAvg.Float64,
	}, nil
}
