// Package domain defines domain-level errors for the quotes feature.
package domain

import "errors"

var (
	// ErrBlankSymbol is returned when a symbol is empty after trimming whitespace.
	ErrBlankSymbol = errors.New("symbol is blank")

	// ErrNoTimeSeries indicates the provider answered without the expected time-series field.
	// It selects the empty branch rather than the failed one.
	ErrNoTimeSeries = errors.New("no time series in provider response")

	// ErrUnexpectedStatus is wrapped around non-success HTTP answers from the provider.
	ErrUnexpectedStatus = errors.New("unexpected provider status")

	// ErrMalformedResponse is returned when the provider body is not JSON.
	ErrMalformedResponse = errors.New("malformed provider response")
)
