// Package source fetches raw design-token documents over HTTP.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"

	"nathanbeddoewebdev/tint/internal/token/domain"

	"github.com/charmbracelet/log"
)

const (
	// DefaultTimeout bounds each of the connect, read and write phases.
	DefaultTimeout = 60 * time.Second

	// DefaultAccessKeyHeader is the header jsonbin-style endpoints read an
	// access key from.
	DefaultAccessKeyHeader = "X-Access-Key"

	maxBodyBytes = 1 << 20
)

// Compile-time check that HTTPSource satisfies domain.Source.
var _ domain.Source = (*HTTPSource)(nil)

// Timeouts holds the per-phase limits. A zero value disables that limit.
type Timeouts struct {
	Connect time.Duration
	Read    time.Duration
	Write   time.Duration
}

// UniformTimeouts applies d to every phase.
func UniformTimeouts(d time.Duration) Timeouts {
	return Timeouts{Connect: d, Read: d, Write: d}
}

// HTTPSource performs one GET per Fetch call against a fixed URL. It never
// retries and never shares in-flight requests between callers.
type HTTPSource struct {
	url       string
	timeouts  Timeouts
	header    string
	accessKey string
	client    *http.Client
	logger    *log.Logger
}

// Option configures an HTTPSource.
type Option func(*HTTPSource)

// WithTimeouts overrides the default per-phase timeouts.
func WithTimeouts(t Timeouts) Option {
	return func(s *HTTPSource) { s.timeouts = t }
}

// WithAccessKey sends key in the named header on every request. An empty key
// sends nothing.
func WithAccessKey(header, key string) Option {
	return func(s *HTTPSource) {
		if header != "" {
			s.header = header
		}
		s.accessKey = key
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *HTTPSource) { s.logger = l }
}

// New returns an HTTPSource for url.
func New(url string, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		url:      url,
		timeouts: UniformTimeouts(DefaultTimeout),
		header:   DefaultAccessKeyHeader,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = &http.Client{Transport: newTransport(s.timeouts)}
	return s
}

// URL returns the endpoint this source reads from.
func (s *HTTPSource) URL() string { return s.url }

// Fetch issues the request and returns the response body of a 2xx reply.
// Every error it returns is a domain.TransportFailure.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, domain.OtherFailure{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if s.accessKey != "" {
		req.Header.Set(s.header, s.accessKey)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		f := Categorize(err)
		s.logger.Debug("token request failed", "url", s.url, "elapsed", time.Since(start), "err", f)
		return nil, f
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, Categorize(err)
	}

	s.logger.Debug("token response", "url", s.url, "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.StatusFailure{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

// Categorize places a client-side error in the transport failure taxonomy.
// Timeouts are checked first so that a resolver timeout counts as a timeout
// rather than a resolution failure.
func Categorize(err error) domain.TransportFailure {
	if f, ok := err.(domain.TransportFailure); ok {
		return f
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.TimeoutFailure{Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.DNSFailure{Host: dnsErr.Name, Err: err}
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		addr := ""
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Addr != nil {
			addr = opErr.Addr.String()
		}
		return domain.RefusedFailure{Addr: addr, Err: err}
	}

	return domain.OtherFailure{Err: err}
}

func newTransport(t Timeouts) *http.Transport {
	dialer := &net.Dialer{Timeout: t.Connect, KeepAlive: 30 * time.Second}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSHandshakeTimeout = t.Connect
	tr.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		return &deadlineConn{Conn: conn, read: t.Read, write: t.Write}, nil
	}
	return tr
}

// deadlineConn arms a fresh deadline before every read and write, so a slow
// peer trips the limit for that phase regardless of how long the request has
// been running overall.
type deadlineConn struct {
	net.Conn
	read  time.Duration
	write time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if c.read > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.read)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(p)
}

func (c *deadlineConn) Write(p []byte) (int, error) {
	if c.write > 0 {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.write)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Write(p)
}
