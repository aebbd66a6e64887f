// Package config loads the application configuration.
//
// Sources are applied in order: .env file, YAML file, environment variables, defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the YAML file when no path is passed to Load.
const EnvConfigPath = "CONFIG_PATH"

// ValidIntervals are the intraday bucket widths the provider accepts.
var ValidIntervals = []string{"1min", "5min", "15min", "30min", "60min"}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Provider struct {
		APIKey     string        `yaml:"api_key"`
		BaseURL    string        `yaml:"base_url"`
		Interval   string        `yaml:"interval"`
		OutputSize string        `yaml:"output_size"`
		Timeout    time.Duration `yaml:"timeout"`
		UserAgent  string        `yaml:"user_agent"`
	} `yaml:"provider"`
	Panel struct {
		DefaultSymbol string        `yaml:"default_symbol"`
		FetchTimeout  time.Duration `yaml:"fetch_timeout"`
		HistorySize   int           `yaml:"history_size"`
	} `yaml:"panel"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads .env, then the YAML file at path (or $CONFIG_PATH), then applies
// environment variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	// .env は任意。存在しなくてもエラーにしない
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	setString("HTTP_ADDR", &c.Server.Addr)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	setString("ALPHAVANTAGE_API_KEY", &c.Provider.APIKey)
	setString("ALPHAVANTAGE_BASE_URL", &c.Provider.BaseURL)
	setString("ALPHAVANTAGE_INTERVAL", &c.Provider.Interval)
	if err := setDuration("PROVIDER_TIMEOUT", &c.Provider.Timeout); err != nil {
		return err
	}
	setString("DEFAULT_SYMBOL", &c.Panel.DefaultSymbol)
	if err := setDuration("FETCH_TIMEOUT", &c.Panel.FetchTimeout); err != nil {
		return err
	}
	setString("DB_DRIVER", &c.Database.Driver)
	setString("DB_DSN", &c.Database.DSN)
	setString("REDIS_HOST", &c.Redis.Host)
	setString("REDIS_PORT", &c.Redis.Port)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Redis.DB = n
	}
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if c.Provider.APIKey == "" {
		c.Provider.APIKey = "demo"
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = "https://www.alphavantage.co"
	}
	if c.Provider.Interval == "" {
		c.Provider.Interval = "5min"
	}
	if c.Provider.OutputSize == "" {
		c.Provider.OutputSize = "full"
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 10 * time.Second
	}
	if c.Panel.DefaultSymbol == "" {
		c.Panel.DefaultSymbol = "IBM"
	}
	if c.Panel.FetchTimeout == 0 {
		c.Panel.FetchTimeout = 15 * time.Second
	}
	if c.Panel.HistorySize == 0 {
		c.Panel.HistorySize = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = ":memory:"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if !slices.Contains(ValidIntervals, c.Provider.Interval) {
		return fmt.Errorf("provider.interval must be one of %s, got %q", strings.Join(ValidIntervals, ", "), c.Provider.Interval)
	}
	if c.Provider.OutputSize != "full" && c.Provider.OutputSize != "compact" {
		return fmt.Errorf("provider.output_size must be full or compact, got %q", c.Provider.OutputSize)
	}
	if c.Provider.Timeout < 0 {
		return fmt.Errorf("provider.timeout must not be negative")
	}
	if c.Panel.FetchTimeout <= 0 {
		return fmt.Errorf("panel.fetch_timeout must be positive")
	}
	if strings.TrimSpace(c.Panel.DefaultSymbol) == "" {
		return fmt.Errorf("panel.default_symbol is required")
	}
	if c.Panel.HistorySize < 0 {
		return fmt.Errorf("panel.history_size must not be negative")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for %s", c.Database.Driver)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// UsesDemoKey reports whether requests go out with the provider's demo key.
func (c *Config) UsesDemoKey() bool {
	return c.Provider.APIKey == "demo"
}

// parseDuration accepts Go durations ("15s") and bare seconds ("15").
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
