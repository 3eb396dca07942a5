package model

import "github.com/guregu/null/v6"

// IndicatorRow is a price bar enriched with derived indicator columns.
// A column is invalid (null) until its trailing window is filled.
type IndicatorRow struct {
	Bar        PriceBar
	SMAShort   null.Float
	SMALong    null.Float
	EMAFast    null.Float
	EMASlow    null.Float
	MACD       null.Float
	MACDSignal null.Float
	RSI        null.Float
	VolumeAvg  null.Float
}

// Complete reports whether every indicator column is available for this row.
func (r IndicatorRow) Complete() bool {
	return r.SMAShort.Valid && r.SMALong.Valid && r.EMAFast.Valid && r.EMASlow.Valid &&
		r.MACD.Valid && r.MACDSignal.Valid && r.RSI.Valid && r.VolumeAvg.Valid
}

// IndicatorSnapshot holds the indicator values at the most recent bar.
type IndicatorSnapshot struct {
	Close      float64 `json:"close"`
	Volume     float64 `json:"volume"`
	SMAShort   float64 `json:"sma_short"`
	SMALong    float64 `json:"sma_long"`
	RSI        float64 `json:"rsi"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
	VolumeAvg  float64 `json:"volume_avg_short"`
}

// MarketStats holds descriptive statistics reported next to the scores.
// They do not feed any scoring rule.
type MarketStats struct {
	High52w     float64 `json:"high_52w"`
	Low52w      float64 `json:"low_52w"`
	Position52w float64 `json:"position_52w"` // 0.0 ~ 1.0
	Volatility  float64 `json:"volatility"`   // annualized
}
