package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"sip-planner/report"
	"sip-planner/service"
)

const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr            string        `yaml:"addr"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		IdleTimeout     time.Duration `yaml:"idle_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	Cache struct {
		Backend   string        `yaml:"backend"` // memory, redis or none
		RedisAddr string        `yaml:"redis_addr"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	History struct {
		Size int `yaml:"size"`
	} `yaml:"history"`
	Currency string         `yaml:"currency"`
	LogLevel string         `yaml:"log_level"`
	Bounds   service.Bounds `yaml:"bounds"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 15 * time.Second
	cfg.Server.IdleTimeout = 60 * time.Second
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.RateLimit.RPS = 1
	cfg.RateLimit.Burst = 5
	cfg.Cache.Backend = "memory"
	cfg.Cache.RedisAddr = "localhost:6379"
	cfg.Cache.TTL = time.Hour
	cfg.History.Size = 50
	cfg.Currency = "INR"
	cfg.LogLevel = "info"
	cfg.Bounds = service.DefaultBounds()
	return cfg
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
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

	// Environment variable overrides
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("SIP_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimit.RPS = rps
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "memory", "none":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend must be memory, redis or none, got %q", c.Cache.Backend)
	}
	if c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate_limit.rps must be positive")
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be positive")
	}
	if c.History.Size <= 0 {
		return fmt.Errorf("history.size must be positive")
	}
	if _, err := report.NewFormatter(c.Currency); err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	b := c.Bounds
	if b.MinYears < 1 || b.MaxYears < b.MinYears || b.MaxYears > service.MaxSimulationYears {
		return fmt.Errorf("bounds: years range [%d, %d] is invalid", b.MinYears, b.MaxYears)
	}
	if b.MinAnnualReturn > b.MaxAnnualReturn || 1+b.MinAnnualReturn/12 <= 0 {
		return fmt.Errorf("bounds: annual return range [%g, %g] is invalid", b.MinAnnualReturn, b.MaxAnnualReturn)
	}
	if b.MaxLumpsum < 0 || b.MaxMonthlyContribution < 0 || b.MaxStepUpRate < 0 || b.MaxStepUpAmount < 0 || b.MaxInflation < 0 {
		return fmt.Errorf("bounds: maxima must not be negative")
	}
	return nil
}
