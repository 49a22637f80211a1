// Package services provides the theming service: the single point that
// consumes a fetch sequence, derives schemes from it and applies them to the
// theme store.
//
// CLI commands and the TUI construct a Service per endpoint and range over
// Observe (or call Refresh) rather than driving the fetch machine and store
// themselves.
package services

import (
	"context"
	"iter"
	"time"

	"nathanbeddoewebdev/tint/internal/fetchlog"
	"nathanbeddoewebdev/tint/internal/logging"
	"nathanbeddoewebdev/tint/internal/theme/scheme"
	"nathanbeddoewebdev/tint/internal/theme/store"
	"nathanbeddoewebdev/tint/internal/token/domain"
	"nathanbeddoewebdev/tint/internal/token/fetch"

	"github.com/charmbracelet/log"
)

// Recorder persists fetch attempts. fetchlog.Repository satisfies it.
type Recorder interface {
	Save(entry *fetchlog.Entry) error
}

// Service applies fetch outcomes to a theme store.
type Service struct {
	machine  *fetch.Machine
	store    *store.Store
	recorder Recorder
	logger   *log.Logger
	variant  string
	url      string
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder records every completed, fatal or abandoned attempt.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithTarget labels recorded attempts with the variant name and endpoint URL.
func WithTarget(variant, url string) Option {
	return func(s *Service) {
		s.variant = variant
		s.url = url
	}
}

// New returns a Service that feeds outcomes from machine into st.
func New(machine *fetch.Machine, st *store.Store, opts ...Option) *Service {
	s := &Service{machine: machine, store: st, logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the theme store the service writes to.
func (s *Service) Store() *store.Store { return s.store }

// Observe starts one fetch invocation. Each terminal outcome is derived and
// written to the store before it is yielded, so a consumer that sees Data or
// Failure can immediately read the matching schemes. Loading never touches
// the store. A fatal auth error is yielded as-is and leaves the store
// unchanged, as does any result arriving after ctx is done.
func (s *Service) Observe(ctx context.Context) iter.Seq2[domain.Outcome, error] {
	return func(yield func(domain.Outcome, error) bool) {
		start := time.Now()
		terminal := false

		for o, err := range s.machine.Observe(ctx) {
			if err != nil {
				s.record(fetchlog.OutcomeFatal, nil, err.Error(), start)
				yield(nil, err)
				return
			}

			if domain.Terminal(o) {
				terminal = true
				if ctx.Err() != nil {
					s.logger.Debug("consumer gone, not applying outcome", "outcome", domain.Label(o))
					s.record(fetchlog.OutcomeAbandoned, nil, ctx.Err().Error(), start)
					return
				}
				snap := s.store.Update(scheme.Derive(o))
				s.logger.Debug("theme updated", "outcome", domain.Label(o), "version", snap.Version)
				s.record(domain.Label(o), o, "", start)
			}

			if !yield(o, nil) {
				return
			}
		}

		if !terminal && ctx.Err() != nil {
			s.record(fetchlog.OutcomeAbandoned, nil, ctx.Err().Error(), start)
		}
	}
}

// Refresh runs one invocation to completion and returns its terminal outcome.
// It returns ctx.Err() if the invocation was abandoned.
func (s *Service) Refresh(ctx context.Context) (domain.Outcome, error) {
	var last domain.Outcome
	for o, err := range s.Observe(ctx) {
		if err != nil {
			return nil, err
		}
		last = o
	}
	if !domain.Terminal(last) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return last, nil
}

func (s *Service) record(outcome string, o domain.Outcome, message string, start time.Time) {
	if s.recorder == nil {
		return
	}

	entry := &fetchlog.Entry{
		Variant:    s.variant,
		URL:        fetchlog.SanitizeURL(s.url),
		Outcome:    outcome,
		Message:    message,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if f, ok := o.(domain.Failure); ok {
		entry.Kind = f.Kind.String()
		entry.StatusCode = f.StatusCode
		entry.Message = f.Message
	}

	if err := s.recorder.Save(entry); err != nil {
		s.logger.Warn("failed to record fetch attempt", "err", err)
	}
}
