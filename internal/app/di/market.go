// Package di provides dependency injection factories for creating application components.
package di

import (
	"quotepanel/internal/platform/config"
	"quotepanel/internal/platform/externalapi/alphavantage"
	infrahttp "quotepanel/internal/platform/http"
)

// NewMarket creates a fully configured AlphaVantageMarket with HTTP client.
func NewMarket(cfg *config.Config) *alphavantage.AlphaVantageMarket {
	avCfg := alphavantage.Config{
		APIKey:     cfg.Provider.APIKey,
		BaseURL:    cfg.Provider.BaseURL,
		Interval:   cfg.Provider.Interval,
		OutputSize: cfg.Provider.OutputSize,
		Timeout:    cfg.Provider.Timeout,
	}
	httpClient := infrahttp.NewHTTPClient(avCfg.Timeout, cfg.Provider.UserAgent)
	return alphavantage.NewAlphaVantageMarket(avCfg, httpClient)
}
