package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"StockAdvisor/internal/model"
)

// SQLiteRecorder persists analyses to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

var (
	_ Recorder = (*SQLiteRecorder)(nil)
	_ Recorder = (*NoopRecorder)(nil)
)

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the HTTP server can read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id              TEXT NOT NULL UNIQUE,
			timestamp           INTEGER NOT NULL,
			symbol              TEXT NOT NULL,
			close               REAL,
			technical_score     INTEGER,
			technical_outcome   TEXT,
			fundamental_score   INTEGER,
			fundamental_outcome TEXT,
			sentiment_score     INTEGER,
			sentiment_outcome   TEXT,
			final_score         INTEGER,
			tier                TEXT,
			payload             TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol_ts ON analysis_runs(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordAnalysis stores the scores as columns and the full analysis, reasons
// included, as a JSON payload.
func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.Exec(`INSERT INTO analysis_runs
		(run_id, timestamp, symbol, close,
		 technical_score, technical_outcome,
		 fundamental_score, fundamental_outcome,
		 sentiment_score, sentiment_outcome,
		 final_score, tier, payload)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), a.AnalyzedAt.UnixNano(), a.Symbol, a.Close,
		a.Technical.Score, string(a.Technical.Outcome),
		a.Fundamental.Score, string(a.Fundamental.Outcome),
		a.Sentiment.Score, string(a.Sentiment.Outcome),
		a.Consolidated.FinalScore, string(a.Consolidated.Tier), string(payload),
	)
	return err
}

// Recent returns up to limit stored analyses for symbol, newest first. A
// non-positive limit means 10.
func (r *SQLiteRecorder) Recent(symbol string, limit int) ([]*model.Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(`SELECT payload FROM analysis_runs
		WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []*model.Analysis
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		a := &model.Analysis{}
		if err := json.Unmarshal([]byte(payload), a); err != nil {
			return nil, fmt.Errorf("decode analysis: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
