package strategy

import (
	"fmt"

	"github.com/guregu/null/v6"

	"StockAdvisor/internal/model"
)

// FundamentalScorer scores point-in-time financial ratios.
type FundamentalScorer struct {
	Thresholds   FundamentalThresholds
	NeutralScore int
}

// NewFundamentalScorer creates a fundamental scorer.
func NewFundamentalScorer(t FundamentalThresholds, neutral int) *FundamentalScorer {
	return &FundamentalScorer{Thresholds: t, NeutralScore: neutral}
}

// Factor returns FactorFundamental.
func (s *FundamentalScorer) Factor() model.Factor { return model.FactorFundamental }

// Evaluate scores the ratios held in data. Indexes have no company
// fundamentals and receive the neutral score.
func (s *FundamentalScorer) Evaluate(data *model.MarketData) model.ScoreResult {
	if model.IsIndex(data.Symbol) {
		return model.ScoreResult{
			Factor:  model.FactorFundamental,
			Outcome: model.OutcomeNotApplicable,
			Score:   clampScore(s.NeutralScore),
			Reasons: []string{fmt.Sprintf("%s is an index; fundamentals not applicable", data.Symbol)},
		}
	}
	if data.RatiosErr != nil {
		return providerFailure(model.FactorFundamental, s.NeutralScore, "fundamental data", data.RatiosErr)
	}
	return s.Score(data.Ratios)
}

type ratioRule struct {
	value  null.Float
	label  string
	points int
	pass   func(float64) bool
	passed func(float64) string
	failed func(float64) string
}

// Score applies the five fundamental rules in fixed order. A null ratio earns
// no points and an "unavailable" reason.
func (s *FundamentalScorer) Score(r model.FundamentalRatios) model.ScoreResult {
	t := s.Thresholds
	peBand := fmtNum(t.PEMin) + "-" + fmtNum(t.PEMax)

	rules := []ratioRule{
		{
			value: r.PriceToEarnings, label: "P/E ratio", points: t.PEPoints,
			pass:   func(v float64) bool { return v > t.PEMin && v < t.PEMax },
			passed: func(v float64) string { return fmt.Sprintf("P/E %.1f in healthy range (%s)", v, peBand) },
			failed: func(v float64) string { return fmt.Sprintf("P/E %.1f outside healthy range (%s)", v, peBand) },
		},
		{
			value: r.ReturnOnEquity, label: "return on equity", points: t.ROEPoints,
			pass:   func(v float64) bool { return v > t.ROEMin },
			passed: func(v float64) string { return fmt.Sprintf("ROE %.1f%% high (> %s)", v*100, fmtPct(t.ROEMin)) },
			failed: func(v float64) string { return fmt.Sprintf("ROE %.1f%% low (<= %s)", v*100, fmtPct(t.ROEMin)) },
		},
		{
			value: r.ProfitMargin, label: "profit margin", points: t.MarginPoints,
			pass:   func(v float64) bool { return v > t.MarginMin },
			passed: func(v float64) string { return fmt.Sprintf("profit margin %.1f%% above %s", v*100, fmtPct(t.MarginMin)) },
			failed: func(v float64) string { return fmt.Sprintf("profit margin %.1f%% not above %s", v*100, fmtPct(t.MarginMin)) },
		},
		{
			value: r.DebtToEquity, label: "debt to equity", points: t.DebtPoints,
			pass:   func(v float64) bool { return v < t.DebtToEquityMax },
			passed: func(v float64) string { return fmt.Sprintf("debt to equity %.1f below %s", v, fmtNum(t.DebtToEquityMax)) },
			failed: func(v float64) string { return fmt.Sprintf("debt to equity %.1f elevated (>= %s)", v, fmtNum(t.DebtToEquityMax)) },
		},
		{
			value: r.DividendYield, label: "dividend yield", points: t.DividendPoints,
			pass:   func(v float64) bool { return v > 0 },
			passed: func(v float64) string { return fmt.Sprintf("pays a dividend (yield %.2f%%)", v*100) },
			failed: func(v float64) string { return fmt.Sprintf("no dividend (yield %.2f%%)", v*100) },
		},
	}

	score := 0
	reasons := make([]string, 0, len(rules))
	for _, rule := range rules {
		switch {
		case !rule.value.Valid:
			reasons = append(reasons, rule.label+" unavailable")
		case rule.pass(rule.value.Float64):
			score += rule.points
			reasons = append(reasons, rule.passed(rule.value.Float64))
		default:
			reasons = append(reasons, rule.failed(rule.value.Float64))
		}
	}

	return model.ScoreResult{
		Factor:  model.FactorFundamental,
		Outcome: model.OutcomeScored,
		Score:   clampScore(score),
		Reasons: reasons,
	}
}

func fmtNum(v float64) string { return fmt.Sprintf("%.4g", v) }

func fmtPct(v float64) string { return fmt.Sprintf("%.4g%%", v*100) }
