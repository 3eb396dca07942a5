package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockAdvisor/internal/model"
)

// Format selects the markup of a report.
type Format int

const (
	// HTML is Telegram's HTML parse mode.
	HTML Format = iota
	// Plain is unmarked text for terminals.
	Plain
)

func (f Format) bold(s string) string {
	if f == HTML {
		return "<b>" + html.EscapeString(s) + "</b>"
	}
	return s
}

func (f Format) text(s string) string {
	if f == HTML {
		return html.EscapeString(s)
	}
	return s
}

var outcomeMarks = map[model.Outcome]string{
	model.OutcomeInsufficientData: " [insufficient data]",
	model.OutcomeProviderFailure:  " [provider failure]",
	model.OutcomeNotApplicable:    " [n/a]",
}

var factorTitles = map[model.Factor]string{
	model.FactorTechnical:   "Technical",
	model.FactorFundamental: "Fundamental",
	model.FactorSentiment:   "Sentiment",
}

var tierIcons = map[model.Tier]string{
	model.TierHigh:     "🟢",
	model.TierModerate: "🟡",
	model.TierLow:      "🔴",
}

// FormatAnalysis renders one analysis with every sub-score and its reasons.
func FormatAnalysis(a *model.Analysis, f Format) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 %s | %s\n\n", f.bold("StockAdvisor "+a.Symbol), a.AnalyzedAt.Format("2006-01-02 15:04"))
	if a.Close > 0 {
		fmt.Fprintf(&b, "Close: %.2f\n", a.Close)
	}
	if st := a.Stats; st != nil {
		fmt.Fprintf(&b, "52w range: %.2f - %.2f (position %.0f%%)\n", st.Low52w, st.High52w, st.Position52w*100)
		fmt.Fprintf(&b, "Volatility: %.1f%% annualized\n", st.Volatility*100)
	}
	if ind := a.Indicators; ind != nil {
		fmt.Fprintf(&b, "SMA20: %.2f | SMA50: %.2f | RSI: %.1f | MACD: %.3f\n", ind.SMAShort, ind.SMALong, ind.RSI, ind.MACD)
	}
	b.WriteString("\n")

	for _, s := range a.SubScores() {
		fmt.Fprintf(&b, "%s: %d/100%s\n", f.bold(factorTitles[s.Factor]), s.Score, outcomeMarks[s.Outcome])
		for _, r := range s.Reasons {
			fmt.Fprintf(&b, "  • %s\n", f.text(r))
		}
	}
	b.WriteString("  ─────────────────\n")
	fmt.Fprintf(&b, "%s %s: %d/100 (%s)\n", tierIcons[a.Consolidated.Tier], f.bold("Final score"),
		a.Consolidated.FinalScore, a.Consolidated.Tier)
	b.WriteString(a.Consolidated.Tier.Summary())
	return b.String()
}

// FormatScan renders a ranked one-line-per-symbol summary.
func FormatScan(results []*model.Analysis, f Format) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s (%d symbols)\n\n", f.bold("StockAdvisor scan"), len(results))
	for i, a := range results {
		fmt.Fprintf(&b, "%2d. %s %-6s %3d  T%d F%d S%d\n", i+1, tierIcons[a.Consolidated.Tier],
			f.text(a.Symbol), a.Consolidated.FinalScore, a.Technical.Score, a.Fundamental.Score, a.Sentiment.Score)
	}
	return b.String()
}

// FormatHistory renders recorded analyses of one symbol, newest first.
func FormatHistory(symbol string, runs []*model.Analysis, f Format) string {
	if len(runs) == 0 {
		return fmt.Sprintf("No recorded analyses for %s", f.text(symbol))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🕘 %s\n\n", f.bold("History "+symbol))
	for _, a := range runs {
		fmt.Fprintf(&b, "%s  %3d %-8s T%d F%d S%d\n", a.AnalyzedAt.Format("2006-01-02 15:04"),
			a.Consolidated.FinalScore, a.Consolidated.Tier, a.Technical.Score, a.Fundamental.Score, a.Sentiment.Score)
	}
	return b.String()
}
