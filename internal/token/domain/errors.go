package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthRequired is raised, never reported as a Failure, when the token
// endpoint rejects the request's credentials. It terminates the current fetch
// and is expected to send the user back through authentication.
//
//	if errors.Is(err, domain.ErrAuthRequired) { ... }
var ErrAuthRequired = errors.New("authentication required")

// TransportFailure is the closed set of ways a Source can fail. The
// classifier switches over these exhaustively.
type TransportFailure interface {
	error
	isTransportFailure()
}

// TimeoutFailure means a connect, read or write phase exceeded its timeout.
type TimeoutFailure struct {
	Err error
}

// DNSFailure means the endpoint host could not be resolved.
type DNSFailure struct {
	Host string
	Err  error
}

// RefusedFailure means the connection was refused or the host was
// unreachable.
type RefusedFailure struct {
	Addr string
	Err  error
}

// StatusFailure is a complete HTTP response with a non-2xx status.
type StatusFailure struct {
	StatusCode int
	Body       []byte
}

// OtherFailure wraps anything the source could not place in a more specific
// category.
type OtherFailure struct {
	Err error
}

func (TimeoutFailure) isTransportFailure() {}
func (DNSFailure) isTransportFailure()     {}
func (RefusedFailure) isTransportFailure() {}
func (StatusFailure) isTransportFailure()  {}
func (OtherFailure) isTransportFailure()   {}

func (f TimeoutFailure) Error() string { return "timeout: " + errString(f.Err) }
func (f TimeoutFailure) Unwrap() error { return f.Err }

func (f DNSFailure) Error() string {
	return fmt.Sprintf("cannot resolve host %q: %s", f.Host, errString(f.Err))
}
func (f DNSFailure) Unwrap() error { return f.Err }

func (f RefusedFailure) Error() string {
	return fmt.Sprintf("cannot connect to %s: %s", f.Addr, errString(f.Err))
}
func (f RefusedFailure) Unwrap() error { return f.Err }

func (f StatusFailure) Error() string {
	return fmt.Sprintf("HTTP %d %s", f.StatusCode, http.StatusText(f.StatusCode))
}

func (f OtherFailure) Error() string { return errString(f.Err) }
func (f OtherFailure) Unwrap() error { return f.Err }

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
