package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider          string   `yaml:"provider"` // yahoo, rest or mock
		BaseURL           string   `yaml:"base_url"`
		APIKey            string   `yaml:"api_key"`
		Symbols           []string `yaml:"symbols"`
		Period            string   `yaml:"period"`
		NewsLimit         int      `yaml:"news_limit"`
		GNewsAPIKey       string   `yaml:"gnews_api_key"`
		RequestsPerSecond float64  `yaml:"requests_per_second"`
	} `yaml:"data_source"`
	Scoring struct {
		Thresholds strategy.Thresholds `yaml:"thresholds"`
		Indicators calculator.Params   `yaml:"indicators"`
	} `yaml:"scoring"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json or console
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Default returns the configuration used when no file or environment overrides are present.
func Default() *Config {
	cfg := &Config{}
	cfg.DataSource.Provider = "yahoo"
	cfg.DataSource.Symbols = []string{"AAPL", "MSFT", "^GSPC"}
	cfg.DataSource.Period = "1y"
	cfg.DataSource.NewsLimit = 10
	cfg.DataSource.RequestsPerSecond = 2
	cfg.Scoring.Thresholds = strategy.DefaultThresholds()
	cfg.Scoring.Indicators = calculator.DefaultParams()
	cfg.Schedule.ScanCron = "0 0 22 * * 1-5"
	cfg.Database.SQLitePath = "data/stock_advisor.db"
	cfg.Server.Addr = ":8080"
	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	return cfg
}

// Load reads an optional .env file and the YAML config at path, then applies
// environment variable overrides. A missing config file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Environment variable overrides
func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.DataSource.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("GNEWS_API_KEY"); v != "" {
		c.DataSource.GNewsAPIKey = v
	}
	if v := os.Getenv("REQUESTS_PER_SECOND"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			c.DataSource.RequestsPerSecond = rps
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		c.Schedule.ScanCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func splitSymbols(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToUpper(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks that the configuration is usable for scoring.
func (c *Config) Validate() error {
	var errs []error
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "rest":
		if c.DataSource.BaseURL == "" {
			errs = append(errs, errors.New("data_source.base_url is required for the rest provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("data_source.provider %q is not one of yahoo, rest, mock", c.DataSource.Provider))
	}
	if _, err := collector.PeriodBars(c.DataSource.Period); err != nil {
		errs = append(errs, fmt.Errorf("data_source.period: %w", err))
	}
	if c.DataSource.NewsLimit < 0 {
		errs = append(errs, errors.New("data_source.news_limit must not be negative"))
	}
	if err := c.Scoring.Thresholds.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scoring.thresholds: %w", err))
	}
	if err := c.Scoring.Indicators.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scoring.indicators: %w", err))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not json or console", c.Log.Format))
	}
	return errors.Join(errs...)
}

// TelegramEnabled reports whether both Telegram credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
