// Package config loads settings from flags, environment, and config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	ListenAddr     string
	BaseURL        string
	APIKey         string
	ChainID        int64
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	PriceCacheTTL  time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	MaxEnrich      int
	BatchSize      int
	FetchTimeout   time.Duration
	ListLimit      int
	SnapshotPath   string
	SnapshotDSN    string
	LogLevel       string
}

// Load merges config file, environment variables, and flags into Config.
// Environment variables use the DEXSCOPE_ prefix with dashes as underscores.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DEXSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen", ":8080")
	v.SetDefault("base-url", "https://opabinia.cambrian.org/api/v1")
	v.SetDefault("chain-id", int64(8453))
	v.SetDefault("request-timeout", 15*time.Second)
	v.SetDefault("cache-ttl", 60*time.Second)
	v.SetDefault("price-cache-ttl", 10*time.Second)
	v.SetDefault("max-retries", 2)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("max-enrich", 30)
	v.SetDefault("batch-size", 10)
	v.SetDefault("fetch-timeout", 10*time.Second)
	v.SetDefault("list-limit", 100)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		ListenAddr:     v.GetString("listen"),
		BaseURL:        v.GetString("base-url"),
		APIKey:         v.GetString("api-key"),
		ChainID:        v.GetInt64("chain-id"),
		RequestTimeout: v.GetDuration("request-timeout"),
		CacheTTL:       v.GetDuration("cache-ttl"),
		PriceCacheTTL:  v.GetDuration("price-cache-ttl"),
		MaxRetries:     v.GetInt("max-retries"),
		RetryBackoff:   v.GetDuration("retry-backoff"),
		MaxEnrich:      v.GetInt("max-enrich"),
		BatchSize:      v.GetInt("batch-size"),
		FetchTimeout:   v.GetDuration("fetch-timeout"),
		ListLimit:      v.GetInt("list-limit"),
		SnapshotPath:   v.GetString("snapshot-path"),
		SnapshotDSN:    v.GetString("snapshot-dsn"),
		LogLevel:       v.GetString("log-level"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base-url is required")
	}
	if c.ChainID <= 0 {
		return fmt.Errorf("chain-id must be positive")
	}
	if c.MaxEnrich < 0 || c.BatchSize < 0 {
		return fmt.Errorf("max-enrich and batch-size must be non-negative")
	}
	if c.SnapshotPath != "" && c.SnapshotDSN != "" {
		return fmt.Errorf("snapshot-path and snapshot-dsn are mutually exclusive")
	}
	return nil
}
