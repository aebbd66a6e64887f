// Package alphavantage provides a client for the Alpha Vantage intraday time-series API.
package alphavantage

import "time"

const (
	// DefaultBaseURL is the public Alpha Vantage endpoint.
	DefaultBaseURL = "https://www.alphavantage.co"
	// DefaultInterval is the bucket width requested from the provider.
	DefaultInterval = "5min"
	// DefaultOutputSize asks for the full intraday history.
	DefaultOutputSize = "full"
	// DemoAPIKey is accepted by the provider for the IBM demo series only.
	DemoAPIKey = "demo"
)

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey     string        // API key sent as the apikey query parameter
	BaseURL    string        // Base URL for the API (e.g., "https://www.alphavantage.co")
	Interval   string        // Intraday interval, e.g. "5min"
	OutputSize string        // "compact" or "full"
	Timeout    time.Duration // HTTP request timeout
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.APIKey == "" {
		c.APIKey = DemoAPIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Interval == "" {
		c.Interval = DefaultInterval
	}
	if c.OutputSize == "" {
		c.OutputSize = DefaultOutputSize
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	return c
}
