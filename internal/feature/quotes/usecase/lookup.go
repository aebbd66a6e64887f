package usecase

import (
	"context"
	"strings"
	"time"

	"quotepanel/internal/feature/quotes/domain"
	"quotepanel/internal/feature/quotes/domain/entity"
)

// Lookup runs a single stateless fetch cycle, outside any panel.
type Lookup struct {
	market  MarketRepository
	timeout time.Duration
}

// NewLookup creates a Lookup. A non-positive timeout falls back to DefaultFetchTimeout.
func NewLookup(market MarketRepository, timeout time.Duration) *Lookup {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Lookup{market: market, timeout: timeout}
}

// Intraday fetches symbol and returns the state it settles into.
// The error is non-nil for blank symbols and for the failed branch; an empty
// provider answer is not an error.
func (l *Lookup) Intraday(ctx context.Context, symbol string) (entity.FetchState, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return entity.FetchState{}, domain.ErrBlankSymbol
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	series, err := l.market.GetIntraday(ctx, symbol)
	st := settle(symbol, series, err)
	st.UpdatedAt = time.Now()
	if st.Status == entity.StatusFailed {
		return st, err
	}
	return st, nil
}
