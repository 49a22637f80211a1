// Package fetch turns one token-source read into an ordered sequence of
// domain.Outcome values: Loading, then exactly one of Data or Failure.
//
// A 401 from the endpoint is the single exception: the sequence yields
// domain.ErrAuthRequired on its error channel and ends without a terminal
// outcome.
//
//	for outcome, err := range machine.Observe(ctx) {
//		if err != nil {
//			return err // fatal, re-authenticate
//		}
//		render(outcome)
//	}
package fetch

import (
	"context"
	"errors"
	"io"
	"iter"
	"sync/atomic"
	"time"

	"nathanbeddoewebdev/tint/internal/token/classify"
	"nathanbeddoewebdev/tint/internal/token/decode"
	"nathanbeddoewebdev/tint/internal/token/domain"

	"github.com/charmbracelet/log"
)

// Machine runs fetch invocations against a single source. It holds no
// per-invocation state, so concurrent Observe calls are fully isolated.
type Machine struct {
	source domain.Source
	logger *log.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// New returns a Machine reading from src.
func New(src domain.Source, opts ...Option) *Machine {
	m := &Machine{source: src, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Observe returns a new, lazy fetch sequence. Nothing happens until the
// sequence is ranged over; the source is read once Loading has been accepted.
//
// The sequence is single use. Ranging it again yields nothing; call Observe
// again to retry.
//
// If ctx is done by the time the source returns, the result is dropped and the
// sequence ends after Loading.
func (m *Machine) Observe(ctx context.Context) iter.Seq2[domain.Outcome, error] {
	var used atomic.Bool
	return func(yield func(domain.Outcome, error) bool) {
		if !used.CompareAndSwap(false, true) {
			return
		}
		if !yield(domain.Loading{}, nil) {
			return
		}

		start := time.Now()
		m.logger.Debug("fetching design token")
		raw, err := m.source.Fetch(ctx)

		if ctx.Err() != nil {
			m.logger.Debug("discarding late fetch result", "elapsed", time.Since(start), "reason", ctx.Err())
			return
		}

		outcome, err := m.resolve(raw, err)
		if err != nil {
			m.logger.Warn("token endpoint rejected credentials", "elapsed", time.Since(start))
			yield(nil, err)
			return
		}

		if f, ok := outcome.(domain.Failure); ok {
			m.logger.Debug("token fetch failed", "kind", f.Kind, "status", f.StatusCode, "message", f.Message, "elapsed", time.Since(start))
		} else {
			m.logger.Debug("token fetch succeeded", "elapsed", time.Since(start))
		}
		yield(outcome, nil)
	}
}

// resolve maps a source result onto the terminal outcome, or the fatal auth
// error.
func (m *Machine) resolve(raw []byte, fetchErr error) (domain.Outcome, error) {
	if fetchErr != nil {
		var tf domain.TransportFailure
		if !errors.As(fetchErr, &tf) {
			tf = domain.OtherFailure{Err: fetchErr}
		}
		failure, err := classify.Classify(tf)
		if err != nil {
			return nil, err
		}
		return failure, nil
	}

	rec, err := decode.Decode(raw)
	if err != nil {
		return domain.Failure{Kind: domain.KindUnknown, Message: err.Error()}, nil
	}
	return domain.Data{Record: rec}, nil
}

// Event pairs an outcome with the sequence's error channel for consumers that
// read from a Go channel instead of ranging.
type Event struct {
	Outcome domain.Outcome
	Err     error
}

// Subscribe runs one Observe invocation on its own goroutine and delivers its
// events on the returned channel, which is closed when the sequence ends. The
// channel is buffered for the whole sequence so the producer never blocks on
// an abandoned consumer.
func (m *Machine) Subscribe(ctx context.Context) <-chan Event {
	return Stream(m.Observe(ctx))
}

// Stream adapts any outcome sequence onto a channel, as Subscribe does.
func Stream(seq iter.Seq2[domain.Outcome, error]) <-chan Event {
	ch := make(chan Event, 2)
	go func() {
		defer close(ch)
		for o, err := range seq {
			ch <- Event{Outcome: o, Err: err}
		}
	}()
	return ch
}
