package usecase

import (
	"errors"

	"quotepanel/internal/feature/quotes/domain"
	"quotepanel/internal/feature/quotes/domain/entity"
)

// NoDataNotice is shown when the provider has no series for the symbol.
const NoDataNotice = "No data available for the provided symbol."

// settle maps the result of one provider call onto the state it selects.
func settle(symbol string, series entity.Series, err error) entity.FetchState {
	switch {
	case err == nil:
		if series == nil {
			series = entity.Series{}
		}
		return entity.FetchState{Symbol: symbol, Status: entity.StatusPopulated, Series: series}
	case errors.Is(err, domain.ErrNoTimeSeries):
		return entity.FetchState{Symbol: symbol, Status: entity.StatusEmpty, Series: entity.Series{}, Notice: NoDataNotice}
	default:
		return entity.FetchState{Symbol: symbol, Status: entity.StatusFailed, Err: err.Error()}
	}
}
