package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"signal_bot/internal/helper"
	"signal_bot/internal/strategy"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDirENV      = "CONFIG_DIR"

	tokenTelegramENV   = "TELEGRAM_TOKEN"
	destinationENV     = "NOTIFICATION_DESTINATION"
	priceAPIKeyENV     = "PRICE_API_KEY"
	databaseDSN        = "DATABASE_DSN"
	logLevelENV        = "LOG_LEVEL"
	defaultConfigFile  = "values_local.yaml"
	defaultConfigDir   = "configs"
	defaultCandlesURL  = "https://api.coinex.com/v1/market/kline"
	defaultPriceURL    = "https://pro-api.coinmarketcap.com/v1/cryptocurrency/quotes/latest"
	defaultHealthAddr  = ":8080"
	defaultWindow      = 50
	defaultWorkers     = 4
	defaultIntervalSec = 60
)

// ConfigError reports a required setting that is missing or invalid.
// It is fatal at startup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("config: %s is required", e.Field)
	}
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// Config ...
type Config struct {
	Telegram struct {
		Token string `yaml:"token"`
	} `yaml:"telegram"`

	Symbols                 []string `yaml:"symbols"`
	Interval                string   `yaml:"interval"`
	MonitoringInterval      int      `yaml:"monitoring_interval"` // seconds
	PriceAPIKey             string   `yaml:"price_api_key"`
	NotificationDestination string   `yaml:"notification_destination"`

	Strategy Strategy `yaml:"strategy"`
	Risk     Risk     `yaml:"risk"`
	Runner   Runner   `yaml:"runner"`

	Endpoints struct {
		Candles string `yaml:"candles"`
		Price   string `yaml:"price"`
	} `yaml:"endpoints"`

	DB     string `yaml:"db_dsn"`
	Health struct {
		Addr string `yaml:"addr"`
	} `yaml:"health"`
	Tracing struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"tracing"`

	LogLevel string `yaml:"log_level"`

	// DryRun logs alerts instead of sending them; telegram settings become optional.
	DryRun bool `yaml:"dry_run"`
}

// Strategy holds the oscillator knobs.
type Strategy struct {
	Window  int     `yaml:"window"`
	Alpha1  float64 `yaml:"alpha1"`
	K1      float64 `yaml:"k1"`
	K2      float64 `yaml:"k2"`
	Trigger float64 `yaml:"trigger"`
}

// Risk percentages per direction. Sell values are negative on purpose.
type Risk struct {
	BuyTakeProfitPct  float64 `yaml:"buy_take_profit_pct"`
	BuyStopLossPct    float64 `yaml:"buy_stop_loss_pct"`
	SellTakeProfitPct float64 `yaml:"sell_take_profit_pct"`
	SellStopLossPct   float64 `yaml:"sell_stop_loss_pct"`
}

type Runner struct {
	Workers        int           `yaml:"workers"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	TickDeadline   time.Duration `yaml:"tick_deadline"` // 0 means the tick interval
}

// Default returns a config with every optional field filled in.
func Default() Config {
	cfg := Config{
		Interval:           "1hour",
		MonitoringInterval: defaultIntervalSec,
		Strategy: Strategy{
			Window:  defaultWindow,
			Alpha1:  strategy.DefaultAlpha1,
			K1:      strategy.DefaultK1,
			K2:      strategy.DefaultK2,
			Trigger: strategy.DefaultTrigger,
		},
		Risk: Risk{
			BuyTakeProfitPct:  strategy.BuyTakeProfitPct,
			BuyStopLossPct:    strategy.BuyStopLossPct,
			SellTakeProfitPct: strategy.SellTakeProfitPct,
			SellStopLossPct:   strategy.SellStopLossPct,
		},
		Runner: Runner{
			Workers:        defaultWorkers,
			RequestTimeout: 10 * time.Second,
		},
		LogLevel: "info",
	}
	cfg.Endpoints.Candles = defaultCandlesURL
	cfg.Endpoints.Price = defaultPriceURL
	cfg.Health.Addr = defaultHealthAddr
	return cfg
}

// NewConfig reads configs/$CONFIG_FILE (values_local.yaml by default), applies
// env overrides and validates the result.
func NewConfig() (*Config, error) {
	dir := getenvDefault(configDirENV, defaultConfigDir)
	name := getenvDefault(configFilePathENV, defaultConfigFile)
	return Load(filepath.Join(dir, name))
}

// Load decodes the file at path on top of Default.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyEnv is the complete list of environment overrides.
func (c *Config) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{tokenTelegramENV, &c.Telegram.Token},
		{destinationENV, &c.NotificationDestination},
		{priceAPIKeyENV, &c.PriceAPIKey},
		{databaseDSN, &c.DB},
		{logLevelENV, &c.LogLevel},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// Validate returns a *ConfigError for the first missing required setting.
func (c *Config) Validate() error {
	cleaned := c.Symbols[:0]
	for _, s := range c.Symbols {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	c.Symbols = cleaned
	c.Interval = helper.NormInterval(c.Interval)

	switch {
	case len(c.Symbols) == 0:
		return &ConfigError{Field: "symbols"}
	case strings.TrimSpace(c.Interval) == "":
		return &ConfigError{Field: "interval"}
	case c.MonitoringInterval <= 0:
		return &ConfigError{Field: "monitoring_interval", Reason: "must be a positive number of seconds"}
	case c.PriceAPIKey == "":
		return &ConfigError{Field: "price_api_key"}
	case c.NotificationDestination == "" && !c.DryRun:
		return &ConfigError{Field: "notification_destination"}
	case c.Telegram.Token == "" && !c.DryRun:
		return &ConfigError{Field: "telegram.token"}
	case c.Strategy.Window <= 0:
		return &ConfigError{Field: "strategy.window", Reason: "must be positive"}
	case c.Runner.Workers <= 0:
		return &ConfigError{Field: "runner.workers", Reason: "must be positive"}
	}
	return nil
}

// TickInterval is monitoring_interval as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.MonitoringInterval) * time.Second
}

func (c *Config) StrategyParams() strategy.Params {
	return strategy.Params{
		Alpha1:  c.Strategy.Alpha1,
		K1:      c.Strategy.K1,
		K2:      c.Strategy.K2,
		Trigger: c.Strategy.Trigger,
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
