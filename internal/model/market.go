package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidSeries is returned when a price series breaks ordering or value rules.
var ErrInvalidSeries = errors.New("invalid price series")

// PriceBar represents a single daily OHLCV bar.
type PriceBar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Finite reports whether every price and the volume of b is a finite number.
func (b PriceBar) Finite() bool {
	for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// PriceSeries holds raw price data for analysis, ordered ascending by time.
type PriceSeries struct {
	Symbol    string     `json:"symbol"`
	Bars      []PriceBar `json:"bars"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.Bars) }

// Last returns the most recent bar. ok is false for an empty series.
func (s PriceSeries) Last() (PriceBar, bool) {
	if len(s.Bars) == 0 {
		return PriceBar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Closes returns the closing prices in bar order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes returns the traded volumes in bar order.
func (s PriceSeries) Volumes() []float64 {
	vols := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		vols[i] = b.Volume
	}
	return vols
}

// Validate checks ordering and value rules of every bar.
func (s PriceSeries) Validate() error {
	for i, b := range s.Bars {
		if !b.Finite() {
			return fmt.Errorf("%w: bar %d has a non-finite value", ErrInvalidSeries, i)
		}
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return fmt.Errorf("%w: bar %d has non-positive price", ErrInvalidSeries, i)
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: bar %d has negative volume", ErrInvalidSeries, i)
		}
		if i > 0 && !b.Time.After(s.Bars[i-1].Time) {
			return fmt.Errorf("%w: bar %d at %s is not after %s",
				ErrInvalidSeries, i, b.Time.Format(time.DateOnly), s.Bars[i-1].Time.Format(time.DateOnly))
		}
	}
	return nil
}
