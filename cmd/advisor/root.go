package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockAdvisor/internal/advisor"
	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/config"
	"StockAdvisor/internal/metrics"
	"StockAdvisor/internal/recorder"
	"StockAdvisor/internal/sentiment"
	"StockAdvisor/internal/strategy"
)

// Execute builds the command tree and runs it.
func Execute(ctx context.Context) error {
	var cfgPath string
	root := &cobra.Command{
		Use:           "advisor",
		Short:         "Multi-factor stock scoring: technical, fundamental and news sentiment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultPath, "path to the YAML config file")

	load := func() (*app, error) { return newApp(cfgPath) }
	root.AddCommand(analyzeCmd(load), scanCmd(load), historyCmd(load), serveCmd(load))
	return root.ExecuteContext(ctx)
}

// app holds the wired components shared by every command.
type app struct {
	cfg      *config.Config
	service  *advisor.Service
	recorder recorder.Recorder
	metrics  *metrics.Metrics
}

func newApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	setupLogging(cfg.Log.Level, cfg.Log.Format)

	col := newCollector(cfg)
	log.Info().
		Str("prices", col.Prices.Name()).
		Str("fundamentals", col.Fundamentals.Name()).
		Str("news", col.News.Name()).
		Msg("data sources")

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	engine := strategy.NewEngine(cfg.Scoring.Thresholds, cfg.Scoring.Indicators, sentiment.NewAnalyzer())
	m := metrics.New()
	return &app{
		cfg:      cfg,
		service:  advisor.NewService(col, engine, rec, m),
		recorder: rec,
		metrics:  m,
	}, nil
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		log.Warn().Err(err).Msg("close recorder")
	}
}

func newCollector(cfg *config.Config) *collector.Collector {
	ds := cfg.DataSource
	limiter := collector.NewLimiter(ds.RequestsPerSecond)

	var (
		prices       collector.PriceFetcher
		fundamentals collector.FundamentalsFetcher
		news         collector.NewsFetcher
	)
	switch ds.Provider {
	case "mock":
		m := &collector.MockFetcher{Price: 100}
		prices, fundamentals, news = m, m, m
	case "rest":
		y := collector.NewYahooFetcher(cfg.Proxy, limiter)
		prices = collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, cfg.Proxy, limiter)
		fundamentals, news = y, y
	default:
		y := collector.NewYahooFetcher(cfg.Proxy, limiter)
		prices, fundamentals, news = y, y, y
	}
	if ds.GNewsAPIKey != "" && ds.Provider != "mock" {
		news = collector.NewGNewsFetcher(ds.GNewsAPIKey, cfg.Proxy, collector.NewLimiter(ds.RequestsPerSecond))
	}
	return collector.NewCollector(prices, fundamentals, news, ds.Period, ds.NewsLimit)
}

func setupLogging(level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}
