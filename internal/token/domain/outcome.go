package domain

import "fmt"

// Kind classifies a recoverable fetch failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindConnection
	KindNoInternet
	KindServer
	KindAuthRequired
	KindClient
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "ConnectionError"
	case KindNoInternet:
		return "NoInternet"
	case KindServer:
		return "ServerError"
	case KindAuthRequired:
		return "AuthRequired"
	case KindClient:
		return "ClientError"
	default:
		return "Unknown"
	}
}

// Outcome is one element of a fetch sequence. It is exactly one of Loading,
// Data or Failure.
type Outcome interface {
	isOutcome()
}

// Loading is always the first outcome of a fetch.
type Loading struct{}

// Data carries a successfully decoded token.
type Data struct {
	Record Record
}

// Failure is a classified, recoverable fetch failure. StatusCode is zero when
// the failure happened below the HTTP layer.
type Failure struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (Loading) isOutcome() {}
func (Data) isOutcome()    {}
func (Failure) isOutcome() {}

// Error lets a Failure travel through error-returning APIs such as retry
// loops.
func (f Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", f.Kind, f.StatusCode, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Terminal reports whether o ends a fetch sequence.
func Terminal(o Outcome) bool {
	switch o.(type) {
	case Data, Failure:
		return true
	default:
		return false
	}
}

// Label is a short lowercase name for o, used in logs and persisted history.
func Label(o Outcome) string {
	switch o.(type) {
	case Loading:
		return "loading"
	case Data:
		return "data"
	case Failure:
		return "error"
	default:
		return "none"
	}
}
