package alphavantage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"quotepanel/internal/feature/quotes/domain"
	"quotepanel/internal/feature/quotes/domain/entity"
	"quotepanel/internal/feature/quotes/usecase"
)

const (
	intradayFunction = "TIME_SERIES_INTRADAY"
	maxBodyBytes     = 32 << 20
)

// AlphaVantageMarket is the MarketRepository backed by the Alpha Vantage HTTP API.
type AlphaVantageMarket struct {
	cfg    Config
	client HTTPClient
}

// Compile-time check that AlphaVantageMarket implements MarketRepository.
var _ usecase.MarketRepository = (*AlphaVantageMarket)(nil)

// NewAlphaVantageMarket creates a market client. Unset config fields take the package defaults.
func NewAlphaVantageMarket(cfg Config, client HTTPClient) *AlphaVantageMarket {
	if client == nil {
		client = http.DefaultClient
	}
	return &AlphaVantageMarket{cfg: cfg.withDefaults(), client: client}
}

// Config returns the effective configuration.
func (a *AlphaVantageMarket) Config() Config {
	return a.cfg
}

// GetIntraday issues one TIME_SERIES_INTRADAY request for symbol and normalizes the answer.
// A body without the series field yields domain.ErrNoTimeSeries, wrapped with the
// provider's message when it sent one.
func (a *AlphaVantageMarket) GetIntraday(ctx context.Context, symbol string) (entity.Series, error) {
	q := url.Values{}
	q.Set("function", intradayFunction)
	q.Set("symbol", symbol)
	q.Set("interval", a.cfg.Interval)
	q.Set("outputsize", a.cfg.OutputSize)
	q.Set("apikey", a.cfg.APIKey)

	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(a.cfg.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: alphavantage http %d", domain.ErrUnexpectedStatus, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	series, ok, err := Normalize(body, a.cfg.Interval)
	if err != nil {
		return nil, err
	}
	if !ok {
		if msg := ProviderMessage(body); msg != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoTimeSeries, msg)
		}
		return nil, domain.ErrNoTimeSeries
	}
	return series, nil
}
