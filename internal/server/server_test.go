package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/advisor"
	"StockAdvisor/internal/model"
)

type fakeAdvisor struct {
	analyzeErr error
	lastLimit  int
	history    []*model.Analysis
}

func (f *fakeAdvisor) Analyze(_ context.Context, symbol string) (*model.Analysis, error) {
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &model.Analysis{
		Symbol:       symbol,
		Consolidated: model.ConsolidatedResult{FinalScore: 77, Tier: model.TierHigh},
	}, nil
}

func (f *fakeAdvisor) History(_ string, limit int) ([]*model.Analysis, error) {
	f.lastLimit = limit
	return f.history, nil
}

func newTestServer(a Analyzer) http.Handler {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
	return New(Config{Addr: ":0", Log: zerolog.Nop(), Advisor: a, Metrics: metrics}).Handler()
}

func do(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(&fakeAdvisor{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalysis(t *testing.T) {
	rec := do(t, newTestServer(&fakeAdvisor{}), "/api/v1/analysis/AAPL")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var a model.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, "AAPL", a.Symbol)
	assert.Equal(t, 77, a.Consolidated.FinalScore)
	assert.Equal(t, model.TierHigh, a.Consolidated.Tier)
}

func TestAnalysis_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{advisor.ErrEmptySymbol, http.StatusBadRequest},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := do(t, newTestServer(&fakeAdvisor{analyzeErr: tt.err}), "/api/v1/analysis/AAPL")
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
		assert.Contains(t, rec.Body.String(), `"error"`)
	}
}

func TestHistory(t *testing.T) {
	f := &fakeAdvisor{}
	h := newTestServer(f)

	rec := do(t, h, "/api/v1/history/AAPL")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, 10, f.lastLimit)

	rec = do(t, h, "/api/v1/history/AAPL?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, f.lastLimit)

	rec = do(t, h, "/api/v1/history/AAPL?limit=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	rec := do(t, newTestServer(&fakeAdvisor{}), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	rec := httptest.NewRecorder()
	newTestServer(&fakeAdvisor{}).ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
