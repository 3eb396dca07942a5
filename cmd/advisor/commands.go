package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/notifier"
	"StockAdvisor/internal/scheduler"
	"StockAdvisor/internal/server"
)

type loader func() (*app, error)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func analyzeCmd(load loader) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Score one stock or index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.service.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(res)
			}
			fmt.Println(notifier.FormatAnalysis(res, notifier.Plain))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}

func scanCmd(load loader) *cobra.Command {
	var (
		sp500  bool
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "scan [SYMBOL...]",
		Short: "Score many symbols and rank them by final score",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()

			symbols := args
			if sp500 {
				symbols, err = collector.NewUniverseFetcher(a.cfg.Proxy).FetchSP500(cmd.Context())
				if err != nil {
					return err
				}
			}
			if len(symbols) == 0 {
				symbols = a.cfg.DataSource.Symbols
			}
			if limit > 0 && len(symbols) > limit {
				symbols = symbols[:limit]
			}
			if len(symbols) == 0 {
				return errors.New("no symbols to scan")
			}

			results, err := a.service.Scan(cmd.Context(), symbols)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(results)
			}
			fmt.Println(notifier.FormatScan(results, notifier.Plain))
			return nil
		},
	}
	cmd.Flags().BoolVar(&sp500, "sp500", false, "scan the current S&P 500 constituents")
	cmd.Flags().IntVar(&limit, "limit", 0, "scan at most N symbols (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the results as JSON")
	return cmd
}

func historyCmd(load loader) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history SYMBOL",
		Short: "Show recorded analyses of a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()

			runs, err := a.service.History(args[0], limit)
			if err != nil {
				return err
			}
			fmt.Println(notifier.FormatHistory(args[0], runs, notifier.Plain))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to show")
	return cmd
}

func serveCmd(load loader) *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the scheduled scan and the Telegram bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()
			cfg := a.cfg

			var n notifier.Notifier
			var tn *notifier.TelegramNotifier
			if cfg.TelegramEnabled() {
				tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
				n = tn
			} else {
				log.Warn().Msg("telegram not configured, notifications disabled")
			}

			sched := scheduler.NewScheduler(ctx, a.service, n, cfg.DataSource.Symbols)
			if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if tn != nil {
				go tn.StartPolling(ctx, sched.HandleCommand)
				log.Info().Msg("telegram polling started")
			}
			if runOnStart || os.Getenv("RUN_ON_START") == "true" {
				log.Info().Msg("running scan on start")
				go sched.RunScanNow()
			}

			srv := server.New(server.Config{
				Addr:    cfg.Server.Addr,
				Log:     log.Logger,
				Advisor: a.service,
				Metrics: a.metrics.Handler(),
			})
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutdown signal received, stopping...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "run the watchlist scan immediately")
	return cmd
}
