package strategy

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/guregu/null/v6"

	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/sentiment"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultThresholds(), calculator.DefaultParams(), sentiment.NewAnalyzer())
}

// bullishSeries rises for 46 bars, then alternates +1/-1 for 14 bars so the
// trailing RSI window is exactly balanced. The last bar trades double volume.
func bullishSeries() model.PriceSeries {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 0, 60)
	for i := 0; i < 46; i++ {
		closes = append(closes, 100+float64(i))
	}
	for i := 0; i < 14; i++ {
		prev := closes[len(closes)-1]
		if i%2 == 0 {
			closes = append(closes, prev+1)
		} else {
			closes = append(closes, prev-1)
		}
	}
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		vol := 1000.0
		if i == len(closes)-1 {
			vol = 2000
		}
		bars[i] = model.PriceBar{Time: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: vol}
	}
	return model.PriceSeries{Symbol: "TEST", Bars: bars}
}

func TestAggregate_Truncation(t *testing.T) {
	tests := []struct {
		a, b, c int
		final   int
		tier    model.Tier
	}{
		{74, 74, 74, 74, model.TierModerate},
		{75, 75, 75, 75, model.TierHigh},
		{100, 100, 26, 75, model.TierHigh},
		{100, 100, 24, 74, model.TierModerate},
		{50, 50, 50, 50, model.TierModerate},
		{50, 50, 49, 49, model.TierLow},
		{0, 0, 0, 0, model.TierLow},
		{100, 100, 100, 100, model.TierHigh},
		{1, 1, 0, 0, model.TierLow},
	}
	for _, tt := range tests {
		got := Aggregate(
			model.ScoreResult{Score: tt.a},
			model.ScoreResult{Score: tt.b},
			model.ScoreResult{Score: tt.c},
		)
		if got.FinalScore != tt.final || got.Tier != tt.tier {
			t.Errorf("Aggregate(%d,%d,%d) = %d/%s, want %d/%s", tt.a, tt.b, tt.c, got.FinalScore, got.Tier, tt.final, tt.tier)
		}
	}
}

func TestAggregate_MatchesIntegerDivisionEverywhere(t *testing.T) {
	for a := 0; a <= 100; a += 7 {
		for b := 0; b <= 100; b += 11 {
			for c := 0; c <= 100; c += 3 {
				got := Aggregate(model.ScoreResult{Score: a}, model.ScoreResult{Score: b}, model.ScoreResult{Score: c})
				if want := (a + b + c) / 3; got.FinalScore != want {
					t.Fatalf("Aggregate(%d,%d,%d) = %d, want %d", a, b, c, got.FinalScore, want)
				}
			}
		}
	}
}

func TestMapTier_AllBoundaries(t *testing.T) {
	tests := []struct {
		score int
		tier  model.Tier
	}{
		{100, model.TierHigh},
		{75, model.TierHigh},
		{74, model.TierModerate},
		{50, model.TierModerate},
		{49, model.TierLow},
		{0, model.TierLow},
	}
	for _, tt := range tests {
		if got := mapTier(tt.score); got != tt.tier {
			t.Errorf("score %d: expected %q, got %q", tt.score, tt.tier, got)
		}
	}
}

func TestEvaluate_AllRulesPass(t *testing.T) {
	data := &model.MarketData{
		Symbol: "TEST",
		Series: bullishSeries(),
		Ratios: model.FundamentalRatios{
			PriceToEarnings: null.FloatFrom(18),
			ReturnOnEquity:  null.FloatFrom(0.25),
			ProfitMargin:    null.FloatFrom(0.22),
			DebtToEquity:    null.FloatFrom(45),
			DividendYield:   null.FloatFrom(0.012),
		},
		Headlines: []model.Headline{
			{Title: "Great quarter as investors cheer record profit"},
			{Title: "Analysts thrilled by strong growth"},
			{Title: "Company delivers amazing results"},
		},
	}
	a := newTestEngine().Evaluate(data)

	if a.Technical.Score != 100 {
		t.Fatalf("expected technical score 100, got %d: %v", a.Technical.Score, a.Technical.Reasons)
	}
	if a.Indicators == nil || a.Indicators.RSI != 50 {
		t.Fatalf("expected RSI 50 snapshot, got %+v", a.Indicators)
	}
	if a.Fundamental.Score != 100 {
		t.Errorf("expected fundamental score 100, got %d: %v", a.Fundamental.Score, a.Fundamental.Reasons)
	}
	if a.Sentiment.Score != 85 {
		t.Errorf("expected sentiment score 85, got %d: %v", a.Sentiment.Score, a.Sentiment.Reasons)
	}
	if a.Consolidated.FinalScore != 95 || a.Consolidated.Tier != model.TierHigh {
		t.Errorf("unexpected consolidated result %+v", a.Consolidated)
	}
	if a.Close != 145 {
		t.Errorf("expected close 145, got %.2f", a.Close)
	}
	if a.Stats == nil {
		t.Error("expected market stats")
	}
}

func TestEvaluate_ProviderFailuresDegradeIndependently(t *testing.T) {
	data := &model.MarketData{
		Symbol:       "FAIL",
		SeriesErr:    errors.New("timeout"),
		RatiosErr:    errors.New("http 500"),
		HeadlinesErr: errors.New("quota exceeded"),
	}
	a := newTestEngine().Evaluate(data)
	for _, r := range a.SubScores() {
		if r.Outcome != model.OutcomeProviderFailure {
			t.Errorf("%s: expected provider failure, got %s", r.Factor, r.Outcome)
		}
		if r.Score != 50 || len(r.Reasons) != 1 {
			t.Errorf("%s: expected neutral score with one reason, got %d %v", r.Factor, r.Score, r.Reasons)
		}
	}
	if a.Consolidated.FinalScore != 50 || a.Consolidated.Tier != model.TierModerate {
		t.Errorf("unexpected consolidated result %+v", a.Consolidated)
	}
	if a.Stats != nil || a.Indicators != nil {
		t.Error("expected no stats or indicators without price data")
	}
}

func TestEvaluate_IndexSkipsFundamentals(t *testing.T) {
	a := newTestEngine().Evaluate(&model.MarketData{Symbol: "^GSPC", Series: bullishSeries()})
	if a.Fundamental.Outcome != model.OutcomeNotApplicable || a.Fundamental.Score != 50 {
		t.Errorf("expected neutral not-applicable fundamentals, got %+v", a.Fundamental)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	data := &model.MarketData{
		Symbol:    "TEST",
		Series:    bullishSeries(),
		Headlines: []model.Headline{{Title: "Stock falls on weak guidance"}, {Title: "New product launch"}},
	}
	e := newTestEngine()
	first := e.Evaluate(data)
	second := e.Evaluate(data)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical analyses:\n%+v\n%+v", first, second)
	}
}
