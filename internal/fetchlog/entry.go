// Package fetchlog persists a history of design token fetch attempts in the
// local SQLite database.
package fetchlog

import "time"

// Outcome values stored with each entry. Data and error mirror the terminal
// outcome labels of a fetch sequence.
const (
	OutcomeData      = "data"
	OutcomeError     = "error"
	OutcomeFatal     = "fatal"
	OutcomeAbandoned = "abandoned"
)

// Entry is one recorded fetch attempt.
type Entry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Variant    string    `json:"variant,omitempty"`
	URL        string    `json:"url,omitempty"`
	Outcome    string    `json:"outcome"`
	Kind       string    `json:"kind,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Message    string    `json:"message,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}

// Succeeded reports whether the attempt produced token data.
func (e Entry) Succeeded() bool { return e.Outcome == OutcomeData }
