package entity

import "time"

// Status is the lifecycle stage of the current data-retrieval attempt.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusPopulated
	StatusEmpty
	StatusFailed
)

var statusNames = map[Status]string{
	StatusIdle:      "idle",
	StatusLoading:   "loading",
	StatusPopulated: "populated",
	StatusEmpty:     "empty",
	StatusFailed:    "failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the status by name in JSON payloads.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FetchState is the snapshot the display surfaces render from.
type FetchState struct {
	Symbol    string    `json:"symbol"`
	Status    Status    `json:"status"`
	Series    Series    `json:"series"`
	Notice    string    `json:"notice,omitempty"` // user-visible notification for the empty branch
	Err       string    `json:"error,omitempty"`  // failure description for the failed branch
	UpdatedAt time.Time `json:"updated_at"`
}
