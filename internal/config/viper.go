// Package config loads quickspend's configuration with viper: defaults, then an
// optional config.yaml, then QUICKSPEND_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/quickspend/internal/logging"
)

// EnvPrefix is prepended to every configuration key read from the environment.
const EnvPrefix = "QUICKSPEND"

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AIConfig selects and tunes the remote categorization providers.
// API keys are only ever read from GEMINI_API_KEY and CLAUDE_API_KEY.
type AIConfig struct {
	UseClaude     bool   `mapstructure:"use_claude" yaml:"use_claude"`
	TimeoutMS     int    `mapstructure:"timeout_ms" yaml:"timeout_ms"`
	GeminiModel   string `mapstructure:"gemini_model" yaml:"gemini_model"`
	ClaudeModel   string `mapstructure:"claude_model" yaml:"claude_model"`
	ClaudeBaseURL string `mapstructure:"claude_base_url" yaml:"claude_base_url"`
	WarmUp        bool   `mapstructure:"warm_up" yaml:"warm_up"`
	GeminiAPIKey  string `mapstructure:"gemini_api_key" yaml:"-"`
	ClaudeAPIKey  string `mapstructure:"claude_api_key" yaml:"-"`
}

// Timeout is TimeoutMS as a duration.
func (a AIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

type CacheConfig struct {
	BaseTTL         time.Duration `mapstructure:"base_ttl" yaml:"base_ttl"`
	MaxTTL          time.Duration `mapstructure:"max_ttl" yaml:"max_ttl"`
	Capacity        int           `mapstructure:"capacity" yaml:"capacity"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval"`
}

type MatchingConfig struct {
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" yaml:"fuzzy_threshold"`
}

// DataConfig locates the local stores. Relative file names are resolved against Directory.
type DataConfig struct {
	Directory      string `mapstructure:"directory" yaml:"directory"`
	CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
	CommonFile     string `mapstructure:"common_file" yaml:"common_file"`
	LedgerFile     string `mapstructure:"ledger_file" yaml:"ledger_file"`
}

// BudgetConfig drives the summary report. Currency is an ISO code such as
// INR, EUR or CHF and only affects display.
type BudgetConfig struct {
	Monthly  float64 `mapstructure:"monthly" yaml:"monthly"`
	Currency string  `mapstructure:"currency" yaml:"currency"`
}

type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// Config is the complete application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	AI       AIConfig       `mapstructure:"ai" yaml:"ai"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Matching MatchingConfig `mapstructure:"matching" yaml:"matching"`
	Data     DataConfig     `mapstructure:"data" yaml:"data"`
	Budget   BudgetConfig   `mapstructure:"budget" yaml:"budget"`
	CSV      CSVConfig      `mapstructure:"csv" yaml:"csv"`
}

// InitializeConfig builds the configuration. When configFile is empty the usual
// locations are searched ($HOME/.quickspend, .quickspend, .) and a missing file is fine.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.quickspend")
		v.AddConfigPath(".quickspend")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Provider keys keep their conventional, unprefixed names.
	if err := v.BindEnv("ai.gemini_api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}
	if err := v.BindEnv("ai.claude_api_key", "CLAUDE_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind CLAUDE_API_KEY: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.use_claude", false)
	v.SetDefault("ai.timeout_ms", 3500)
	v.SetDefault("ai.gemini_model", "gemini-2.0-flash-lite")
	v.SetDefault("ai.claude_model", "claude-3-haiku-20240307")
	v.SetDefault("ai.claude_base_url", "https://api.anthropic.com/v1/")
	v.SetDefault("ai.warm_up", true)
	v.SetDefault("ai.gemini_api_key", "")
	v.SetDefault("ai.claude_api_key", "")

	v.SetDefault("cache.base_ttl", 15*time.Minute)
	v.SetDefault("cache.max_ttl", 24*time.Hour)
	v.SetDefault("cache.capacity", 0)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)

	v.SetDefault("matching.fuzzy_threshold", 0.8)

	v.SetDefault("data.directory", "")
	v.SetDefault("data.categories_file", "categories.yaml")
	v.SetDefault("data.common_file", "common_transactions.yaml")
	v.SetDefault("data.ledger_file", "ledger.db")

	v.SetDefault("budget.monthly", 0.0)
	v.SetDefault("budget.currency", "INR")

	v.SetDefault("csv.delimiter", ",")
}

func validateConfig(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}
	if cfg.AI.TimeoutMS <= 0 {
		return fmt.Errorf("ai.timeout_ms must be positive, got: %d", cfg.AI.TimeoutMS)
	}
	if cfg.Cache.BaseTTL <= 0 || cfg.Cache.MaxTTL < cfg.Cache.BaseTTL {
		return fmt.Errorf("cache ttl must satisfy 0 < base_ttl <= max_ttl, got: %s / %s", cfg.Cache.BaseTTL, cfg.Cache.MaxTTL)
	}
	if cfg.Cache.Capacity < 0 {
		return fmt.Errorf("cache.capacity must not be negative, got: %d", cfg.Cache.Capacity)
	}
	if cfg.Matching.FuzzyThreshold <= 0 || cfg.Matching.FuzzyThreshold > 1 {
		return fmt.Errorf("matching.fuzzy_threshold must be in (0, 1], got: %f", cfg.Matching.FuzzyThreshold)
	}
	if cfg.Budget.Monthly < 0 {
		return fmt.Errorf("budget.monthly must not be negative, got: %f", cfg.Budget.Monthly)
	}
	if len([]rune(cfg.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", cfg.CSV.Delimiter)
	}
	return nil
}

// DataDir returns the configured data directory, defaulting to $HOME/.quickspend.
func (c *Config) DataDir() string {
	if c.Data.Directory != "" {
		return c.Data.Directory
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quickspend"
	}
	return filepath.Join(home, ".quickspend")
}

// DataPath resolves a data file name against DataDir unless it is already absolute.
func (c *Config) DataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir(), name)
}

// NewLogger builds the application logger described by the log section.
func (c *Config) NewLogger() logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(c.Log.Level), strings.ToLower(c.Log.Format))
}
