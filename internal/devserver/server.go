// Package devserver serves design tokens over HTTP in the same shape as the
// hosted endpoint, for local development and tests.
//
//	GET /v3/qs/:variant      token document for a variant
//	GET /health              liveness probe
//
// A token request may add ?status=NNN to force an error response or
// ?delay=DURATION to stall before answering.
package devserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"nathanbeddoewebdev/tint/internal/logging"
	"nathanbeddoewebdev/tint/internal/token/domain"
	"nathanbeddoewebdev/tint/internal/token/source"
	"nathanbeddoewebdev/tint/internal/util"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// DefaultAddr is the listen address used when none is given.
const DefaultAddr = "127.0.0.1:8787"

// TokenPath is the route prefix for token documents.
const TokenPath = "/v3/qs/"

// Server is a local design token endpoint.
type Server struct {
	addr      string
	header    string
	accessKey string
	logger    *log.Logger

	mu     sync.RWMutex
	tokens map[string]domain.Record

	server   *http.Server
	listener net.Listener
	started  time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithAccessKey requires every token request to carry key in header. An empty
// header means source.DefaultAccessKeyHeader.
func WithAccessKey(header, key string) Option {
	return func(s *Server) {
		if header != "" {
			s.header = header
		}
		s.accessKey = key
	}
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a server for the given tokens.
func NewServer(addr string, tokens map[string]domain.Record, opts ...Option) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	s := &Server{
		addr:   addr,
		header: source.DefaultAccessKeyHeader,
		logger: logging.Discard(),
		tokens: tokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetToken installs or replaces the record served for variant.
func (s *Server) SetToken(variant string, rec domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[util.NormalizeKey(variant)] = rec
}

// Handler returns the HTTP handler without starting a listener.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)

	r.GET("/health", s.handleHealth)
	r.GET(TokenPath+":variant", s.requireAccessKey, s.handleToken)
	return r
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.started = time.Now()
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("dev server stopped", "err", err)
		}
	}()
	return nil
}

// Addr returns the bound listen address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// URL returns the token URL for variant on this server.
func (s *Server) URL(variant string) string {
	return "http://" + s.Addr() + TokenPath + variant
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "elapsed", time.Since(start))
}

func (s *Server) requireAccessKey(c *gin.Context) {
	if s.accessKey == "" {
		return
	}
	if c.GetHeader(s.header) != s.accessKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid access key provided"})
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	s.mu.RLock()
	n := len(s.tokens)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"uptime":   time.Since(s.started).String(),
		"variants": n,
	})
}

func (s *Server) handleToken(c *gin.Context) {
	if raw := c.Query("delay"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid delay"})
			return
		}
		select {
		case <-time.After(d):
		case <-c.Request.Context().Done():
			return
		}
	}

	if raw := c.Query("status"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil || code < 400 || code > 599 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "status must be between 400 and 599"})
			return
		}
		c.JSON(code, gin.H{"message": http.StatusText(code)})
		return
	}

	variant := util.NormalizeKey(c.Param("variant"))
	s.mu.RLock()
	rec, ok := s.tokens[variant]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Bin not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     variant,
		"record": encodeRecord(rec),
		"metadata": gin.H{
			"name":               variant,
			"createdAt":          s.started.UTC().Format(time.RFC3339),
			"readCountRemaining": 0,
			"timeToExpire":       0,
		},
	})
}
