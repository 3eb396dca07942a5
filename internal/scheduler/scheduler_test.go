package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/model"
)

type fakeAdvisor struct {
	analyzed []string
	scanned  [][]string
	scanErr  error
}

func (f *fakeAdvisor) Analyze(_ context.Context, symbol string) (*model.Analysis, error) {
	f.analyzed = append(f.analyzed, symbol)
	return &model.Analysis{Symbol: symbol, Consolidated: model.ConsolidatedResult{FinalScore: 80, Tier: model.TierHigh}}, nil
}

func (f *fakeAdvisor) Scan(_ context.Context, symbols []string) ([]*model.Analysis, error) {
	f.scanned = append(f.scanned, symbols)
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	out := make([]*model.Analysis, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, &model.Analysis{Symbol: s})
	}
	return out, nil
}

func (f *fakeAdvisor) History(symbol string, _ int) ([]*model.Analysis, error) {
	return nil, nil
}

type fakeNotifier struct{ sent []string }

func (n *fakeNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	n.sent = append(n.sent, text)
	return nil
}

func TestHandleCommand(t *testing.T) {
	adv := &fakeAdvisor{}
	s := NewScheduler(context.Background(), adv, nil, []string{"AAPL", "MSFT"})
	ctx := context.Background()

	reply := s.HandleCommand(ctx, "/analyze@StockAdvisorBot aapl")
	assert.Equal(t, []string{"aapl"}, adv.analyzed)
	assert.Contains(t, reply, "80/100 (High)")

	assert.Equal(t, "Usage: /analyze SYMBOL", s.HandleCommand(ctx, "/analyze"))
	assert.Equal(t, "No recorded analyses for TSLA", s.HandleCommand(ctx, "/history tsla"))
	assert.Contains(t, s.HandleCommand(ctx, "/scan"), "(2 symbols)")
	assert.Equal(t, helpText, s.HandleCommand(ctx, "hello"))
	assert.Equal(t, helpText, s.HandleCommand(ctx, "   "))
}

func TestScanTask_Notifies(t *testing.T) {
	adv := &fakeAdvisor{}
	n := &fakeNotifier{}
	s := NewScheduler(context.Background(), adv, n, []string{"AAPL"})

	s.RunScanNow()
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "(1 symbols)")
	assert.Equal(t, [][]string{{"AAPL"}}, adv.scanned)

	adv.scanErr = errors.New("rate limited")
	s.RunScanNow()
	require.Len(t, n.sent, 2)
	assert.Contains(t, n.sent[1], "rate limited")
}

func TestRegister(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeAdvisor{}, nil, nil)
	assert.NoError(t, s.Register("0 0 22 * * 1-5"))
	assert.Error(t, s.Register("not a cron"))
	assert.Len(t, s.Cron.Entries(), 1)
}
