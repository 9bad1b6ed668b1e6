// Package server exposes the solver over HTTP.
//
// Routes:
//
//	POST /v1/solve   solve one instance, JSON in and out
//	GET  /healthz    liveness
//	GET  /metrics    Prometheus exposition
//
// Every response carries X-Request-ID (the caller's, or a fresh UUID).
// Requests beyond the configured token-bucket rate get 429.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/knapsack/internal/config"
	"github.com/katalvlaran/knapsack/internal/metrics"
	"github.com/katalvlaran/knapsack/solver"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
	shutdownGrace   = 5 * time.Second
)

// Server is the HTTP front end. Create it with New.
type Server struct {
	cfg     config.Server
	solver  solver.Config
	log     logr.Logger
	metrics *metrics.SolverMetrics
	limiter *rate.Limiter
	engine  *gin.Engine
}

// New wires routes and middleware. base is the solver configuration each
// request starts from; gatherer serves /metrics.
func New(cfg config.Server, base solver.Config, m *metrics.SolverMetrics, gatherer prometheus.Gatherer, log logr.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		solver:  base,
		log:     log.WithName("server"),
		metrics: m,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
	}
	s.solver.Recorder = m

	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.observe())
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	v1.Use(s.rateLimit())
	v1.POST("/solve", s.handleSolve)
	s.engine = r

	return s
}

// Handler returns the root handler, for tests and custom listeners.
func (s *Server) Handler() http.Handler { return s.engine }

// Run listens on the configured address until ctx ends, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("stopped")

	return nil
}

// requestID propagates or creates the request ID.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Set(ctxRequestID, id)
		c.Next()
	}
}

// observe counts served requests per route and status code.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveHTTP(route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// rateLimit rejects requests when the token bucket is empty.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow() {
			s.metrics.RateLimitedTotal.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
				Error: "rate limit exceeded",
				Code:  "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
