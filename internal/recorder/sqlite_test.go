package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/model"
)

func sampleAnalysis(symbol string, final int, at time.Time) *model.Analysis {
	return &model.Analysis{
		Symbol: symbol,
		Close:  187.25,
		Technical: model.ScoreResult{
			Factor: model.FactorTechnical, Outcome: model.OutcomeScored, Score: 80,
			Reasons: []string{"price above SMA20 (180.10)", "MACD positive"},
		},
		Fundamental: model.ScoreResult{
			Factor: model.FactorFundamental, Outcome: model.OutcomeProviderFailure, Score: 50,
			Reasons: []string{"fundamentals unavailable: timeout"},
		},
		Sentiment: model.ScoreResult{
			Factor: model.FactorSentiment, Outcome: model.OutcomeInsufficientData, Score: 50,
			Reasons: []string{"no data available"},
		},
		Consolidated: model.ConsolidatedResult{FinalScore: final, Tier: model.TierModerate},
		Indicators:   &model.IndicatorSnapshot{Close: 187.25, RSI: 55.5},
		AnalyzedAt:   at,
	}
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "nested", "advisor.db"))
	require.NoError(t, err)
	defer r.Close()

	base := time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC)
	require.NoError(t, r.RecordAnalysis(sampleAnalysis("AAPL", 60, base)))
	require.NoError(t, r.RecordAnalysis(sampleAnalysis("AAPL", 61, base.Add(24*time.Hour))))
	require.NoError(t, r.RecordAnalysis(sampleAnalysis("MSFT", 70, base)))

	got, err := r.Recent("AAPL", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 61, got[0].Consolidated.FinalScore, "newest first")
	assert.Equal(t, 60, got[1].Consolidated.FinalScore)
	assert.True(t, got[0].AnalyzedAt.Equal(base.Add(24*time.Hour)))

	want := sampleAnalysis("AAPL", 61, base.Add(24*time.Hour))
	assert.Equal(t, want.Technical, got[0].Technical)
	assert.Equal(t, want.Fundamental, got[0].Fundamental)
	assert.Equal(t, want.Sentiment, got[0].Sentiment)
	assert.Equal(t, want.Indicators, got[0].Indicators)
	assert.Nil(t, got[0].Stats)

	limited, err := r.Recent("AAPL", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := r.Recent("TSLA", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteRecorder_RecentDefaultLimit(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "advisor.db"))
	require.NoError(t, err)

	base := time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC)
	for i := range 12 {
		require.NoError(t, r.RecordAnalysis(sampleAnalysis("AAPL", 50+i, base.Add(time.Duration(i)*time.Hour))))
	}
	got, err := r.Recent("AAPL", 0)
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, 61, got[0].Consolidated.FinalScore)

	require.NoError(t, r.Close())
	_, err = r.Recent("AAPL", 1)
	assert.Error(t, err, "closed recorder")
}

func TestNoopRecorder(t *testing.T) {
	r := NewNoopRecorder()
	assert.NoError(t, r.RecordAnalysis(sampleAnalysis("AAPL", 1, time.Now())))
	got, err := r.Recent("AAPL", 5)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, r.Close())
}
