// Package config loads application configuration from config.yaml and the
// environment, and owns the global logger lifecycle.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig              `yaml:"store" mapstructure:"store"`
	Fetch    FetchConfig              `yaml:"fetch" mapstructure:"fetch"`
	Pipeline PipelineConfig           `yaml:"pipeline" mapstructure:"pipeline"`
	Scrapers map[string]ScraperConfig `yaml:"scrapers" mapstructure:"scrapers"`
	Server   ServerConfig             `yaml:"server" mapstructure:"server"`
	Log      LogConfig                `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// FetchConfig configures the shared HTTP fetcher.
type FetchConfig struct {
	UserAgent     string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs   int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries    int    `yaml:"max_retries" mapstructure:"max_retries"`
	CacheTTLMins  int    `yaml:"cache_ttl_mins" mapstructure:"cache_ttl_mins"`
	RespectRobots bool   `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// PipelineConfig configures the collection run.
type PipelineConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// ScraperConfig is the per-unit configuration block. Priority 0 means "use
// the unit's declared default". ReliabilityScore is configured per source
// but deliberately not consumed by scoring or matching; it is reserved.
type ScraperConfig struct {
	Enabled          bool    `yaml:"enabled" mapstructure:"enabled"`
	Priority         int     `yaml:"priority" mapstructure:"priority"`
	RateLimit        float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	MaxPages         int     `yaml:"max_pages" mapstructure:"max_pages"`
	ReliabilityScore float64 `yaml:"reliability_score" mapstructure:"reliability_score"`
}

// ServerConfig configures the status API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEMINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "lemina.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("pipeline.workers", 5)
	v.SetDefault("fetch.user_agent", "lemina-intel/1.0")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.cache_ttl_mins", 60)
	v.SetDefault("fetch.respect_robots", true)
	v.SetDefault("scrapers.techcabal.enabled", true)
	v.SetDefault("scrapers.techcabal.rate_limit", 0.5)
	v.SetDefault("scrapers.techcabal.max_pages", 30)
	v.SetDefault("scrapers.techpoint.enabled", true)
	v.SetDefault("scrapers.techpoint.rate_limit", 0.5)
	v.SetDefault("scrapers.techpoint.max_pages", 30)
	v.SetDefault("scrapers.seed.enabled", true)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Scraper returns the configuration block for the named unit, with ok=false
// when no block exists (the unit then runs with its declared defaults).
func (c *Config) Scraper(name string) (ScraperConfig, bool) {
	sc, ok := c.Scrapers[name]
	return sc, ok
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
