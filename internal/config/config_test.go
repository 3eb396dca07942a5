package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, "1y", cfg.DataSource.Period)
	assert.Equal(t, 50, cfg.Scoring.Thresholds.NeutralScore)
	assert.Equal(t, 20, cfg.Scoring.Indicators.ShortSMA)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesKeepOtherDefaults(t *testing.T) {
	path := writeConfig(t, `
data_source:
  provider: mock
  symbols: [TSLA, NVDA]
scoring:
  thresholds:
    fundamental:
      pe_max: 30
  indicators:
    rsi: 10
log:
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.DataSource.Provider)
	assert.Equal(t, []string{"TSLA", "NVDA"}, cfg.DataSource.Symbols)
	assert.Equal(t, 30.0, cfg.Scoring.Thresholds.Fundamental.PEMax)
	assert.Equal(t, 5.0, cfg.Scoring.Thresholds.Fundamental.PEMin)
	assert.Equal(t, 10, cfg.Scoring.Indicators.RSI)
	assert.Equal(t, 50, cfg.Scoring.Indicators.LongSMA)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATA_PROVIDER", "rest")
	t.Setenv("DATA_BASE_URL", "http://bars.local")
	t.Setenv("SYMBOLS", " aapl, msft ,,")
	t.Setenv("REQUESTS_PER_SECOND", "5")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(writeConfig(t, "data_source:\n  provider: yahoo\n"))
	require.NoError(t, err)
	assert.Equal(t, "rest", cfg.DataSource.Provider)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.DataSource.Symbols)
	assert.Equal(t, 5.0, cfg.DataSource.RequestsPerSecond)
	assert.True(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "data_source: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DataSource.Provider = "rest"
	cfg.DataSource.Period = "10y"
	cfg.Scoring.Thresholds.NeutralScore = 120
	cfg.Scoring.Indicators.RSI = 0
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"base_url", "period", "neutral_score", "rsi", "log.format"} {
		assert.Contains(t, err.Error(), want)
	}
}
