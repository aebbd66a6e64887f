package entity

import "time"

// OutcomeSuperseded marks a cycle whose result arrived after a newer symbol was committed.
const OutcomeSuperseded = "superseded"

// FetchRecord is one journaled fetch cycle.
type FetchRecord struct {
	ID        string        `json:"id"`
	Symbol    string        `json:"symbol"`
	Outcome   string        `json:"outcome"` // populated, empty, failed or superseded
	Records   int           `json:"records"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}
