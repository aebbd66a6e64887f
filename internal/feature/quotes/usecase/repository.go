// Package usecase implements the quote panel: the fetch controller, the symbol input and one-shot lookups.
package usecase

import (
	"context"

	"quotepanel/internal/feature/quotes/domain/entity"
)

// MarketRepository fetches the intraday series for one symbol from the quote provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetIntraday(ctx context.Context, symbol string) (entity.Series, error)
}

// FetchJournal stores the outcome of each fetch cycle.
type FetchJournal interface {
	Record(ctx context.Context, rec entity.FetchRecord) error
	List(ctx context.Context, limit int) ([]entity.FetchRecord, error)
}

// SymbolHistory remembers recently committed symbols, most recent first.
type SymbolHistory interface {
	Push(ctx context.Context, symbol string) error
	Recent(ctx context.Context, n int) ([]string, error)
}
