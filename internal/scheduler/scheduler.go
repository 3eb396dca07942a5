package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"StockAdvisor/internal/model"
	"StockAdvisor/internal/notifier"
)

// Advisor is the subset of advisor.Service the scheduler drives.
type Advisor interface {
	Analyze(ctx context.Context, symbol string) (*model.Analysis, error)
	Scan(ctx context.Context, symbols []string) ([]*model.Analysis, error)
	History(symbol string, limit int) ([]*model.Analysis, error)
}

// historyLimit is the number of runs shown by /history.
const historyLimit = 10

const helpText = "Available commands:\n" +
	"• /analyze SYMBOL - score a stock or index now\n" +
	"• /history SYMBOL - recent recorded scores\n" +
	"• /scan - score the configured watchlist\n" +
	"• /help - this message"

// Scheduler manages the cron scan and answers chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Advisor  Advisor
	Notifier notifier.Notifier // nil disables notifications
	Symbols  []string
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, adv Advisor, n notifier.Notifier, symbols []string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Advisor:  adv,
		Notifier: n,
		Symbols:  symbols,
		Ctx:      ctx,
	}
}

// Register registers the scan task on scanCron (six fields, seconds first).
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("symbols", len(s.Symbols)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunScanNow executes the scan task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Info().Int("symbols", len(s.Symbols)).Msg("running scheduled scan")
	results, err := s.Advisor.Scan(s.Ctx, s.Symbols)
	if err != nil {
		log.Error().Err(err).Msg("scheduled scan")
		s.trySend(fmt.Sprintf("❌ Scheduled scan failed: %v", err))
		return
	}
	s.trySend(notifier.FormatScan(results, notifier.HTML))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Telegram appends @botname to commands in group chats.
	cmd, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch cmd {
	case "/analyze":
		if len(args) != 1 {
			return "Usage: /analyze SYMBOL"
		}
		a, err := s.Advisor.Analyze(ctx, args[0])
		if err != nil {
			return fmt.Sprintf("❌ Analysis failed: %v", err)
		}
		return notifier.FormatAnalysis(a, notifier.HTML)
	case "/history":
		if len(args) != 1 {
			return "Usage: /history SYMBOL"
		}
		symbol := strings.ToUpper(args[0])
		runs, err := s.Advisor.History(symbol, historyLimit)
		if err != nil {
			return fmt.Sprintf("❌ History lookup failed: %v", err)
		}
		return notifier.FormatHistory(symbol, runs, notifier.HTML)
	case "/scan":
		results, err := s.Advisor.Scan(ctx, s.Symbols)
		if err != nil {
			return fmt.Sprintf("❌ Scan failed: %v", err)
		}
		return notifier.FormatScan(results, notifier.HTML)
	default:
		return helpText
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
