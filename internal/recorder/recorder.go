package recorder

import "StockAdvisor/internal/model"

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) error
	// Recent returns up to limit analyses of symbol, newest first.
	Recent(symbol string, limit int) ([]*model.Analysis, error)
	Close() error
}
