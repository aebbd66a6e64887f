// Package entity defines the domain models for the quotes feature.
package entity

import "github.com/guregu/null/v6"

// Quote is one time-bucketed OHLCV observation exactly as the provider sent it.
// Prices and volume are never parsed; a sub-field the provider omitted stays invalid.
type Quote struct {
	Time   string      `json:"time"`   // provider bucket key, e.g. "2024-01-05 19:55:00"
	Open   null.String `json:"open"`   // "1. open"
	High   null.String `json:"high"`   // "2. high"
	Low    null.String `json:"low"`    // "3. low"
	Close  null.String `json:"close"`  // "4. close"
	Volume null.String `json:"volume"` // "5. volume"
}

// Series is an ordered run of quotes in provider enumeration order.
type Series []Quote

// Head returns at most n leading quotes without reordering.
func (s Series) Head(n int) Series {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}
