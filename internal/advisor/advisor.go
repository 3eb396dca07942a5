// Package advisor ties data collection, scoring, persistence and metrics into
// the analyze and scan operations used by the CLI, scheduler and HTTP server.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/metrics"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/recorder"
	"StockAdvisor/internal/strategy"
)

// ErrEmptySymbol is returned when Analyze is called without a symbol.
var ErrEmptySymbol = errors.New("symbol is required")

// DefaultScanWorkers bounds concurrent analyses during a scan.
const DefaultScanWorkers = 4

// Service runs analyses.
type Service struct {
	Collector *collector.Collector
	Engine    *strategy.Engine
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics // optional
	Workers   int

	now func() time.Time
}

// NewService creates a Service. rec may be nil, in which case nothing is persisted.
func NewService(c *collector.Collector, e *strategy.Engine, rec recorder.Recorder, m *metrics.Metrics) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Service{
		Collector: c,
		Engine:    e,
		Recorder:  rec,
		Metrics:   m,
		Workers:   DefaultScanWorkers,
		now:       time.Now,
	}
}

// NormalizeSymbol upper-cases and trims a user-supplied ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Analyze collects data for symbol, scores it and records the result.
// Provider failures are reflected in the sub-score outcomes, not returned
// as errors. A recording failure is logged and does not fail the analysis.
func (s *Service) Analyze(ctx context.Context, symbol string) (*model.Analysis, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrEmptySymbol
	}
	start := s.now()

	data := s.Collector.Collect(ctx, symbol)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}
	a := s.Engine.Evaluate(data)
	a.AnalyzedAt = s.now()

	if err := s.Recorder.RecordAnalysis(a); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("failed to record analysis")
	}
	if s.Metrics != nil {
		s.Metrics.ObserveAnalysis(a, a.AnalyzedAt.Sub(start))
	}

	log.Info().
		Str("symbol", symbol).
		Int("technical", a.Technical.Score).
		Int("fundamental", a.Fundamental.Score).
		Int("sentiment", a.Sentiment.Score).
		Int("final", a.Consolidated.FinalScore).
		Str("tier", string(a.Consolidated.Tier)).
		Msg("analysis complete")
	return a, nil
}

// Scan analyzes every symbol and returns the analyses ordered by final score,
// highest first, ties broken by symbol. Duplicate symbols are analyzed once.
func (s *Service) Scan(ctx context.Context, symbols []string) ([]*model.Analysis, error) {
	unique := dedupe(symbols)
	results := make([]*model.Analysis, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.Workers))
	for i, sym := range unique {
		g.Go(func() error {
			a, err := s.Analyze(gctx, sym)
			if err != nil {
				return err
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Consolidated.FinalScore != results[j].Consolidated.FinalScore {
			return results[i].Consolidated.FinalScore > results[j].Consolidated.FinalScore
		}
		return results[i].Symbol < results[j].Symbol
	})
	return results, nil
}

// History returns up to limit recorded analyses of symbol, newest first.
func (s *Service) History(symbol string, limit int) ([]*model.Analysis, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrEmptySymbol
	}
	return s.Recorder.Recent(symbol, limit)
}

func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
