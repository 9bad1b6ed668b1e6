package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/knapsack/internal/config"
	"github.com/katalvlaran/knapsack/internal/logging"
	"github.com/katalvlaran/knapsack/internal/metrics"
	"github.com/katalvlaran/knapsack/internal/server"
	"github.com/katalvlaran/knapsack/solver"
)

const classicBody = `{"budget":50,"items":[{"value":60,"cost":10},{"value":100,"cost":20},{"value":120,"cost":30}]}`

type ServerSuite struct {
	suite.Suite
	metrics *metrics.SolverMetrics
	handler http.Handler
}

func TestServerSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	s.handler, s.metrics = s.newServer(config.Default().Server)
}

func (s *ServerSuite) newServer(cfg config.Server) (http.Handler, *metrics.SolverMetrics) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	srv := server.New(cfg, solver.DefaultConfig(), m, reg, logging.NewTestLogger(s.T()))

	return srv.Handler(), m
}

func (s *ServerSuite) do(method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&v))

	return v
}

type solveResponse struct {
	RequestID  string  `json:"request_id"`
	Algo       string  `json:"algo"`
	Variant    string  `json:"variant"`
	Value      int64   `json:"value"`
	Counts     []int64 `json:"counts"`
	Exhaustive bool    `json:"exhaustive"`
	Stop       string  `json:"stop"`
}

type errorResponse struct {
	Code string `json:"code"`
}

func (s *ServerSuite) TestSolveBounded() {
	w := s.do(http.MethodPost, "/v1/solve", classicBody)
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	resp := decode[solveResponse](s.T(), w)
	require.Equal(s.T(), int64(220), resp.Value)
	require.Equal(s.T(), []int64{0, 1, 1}, resp.Counts)
	require.True(s.T(), resp.Exhaustive)
	require.Equal(s.T(), "bnb", resp.Algo)
	require.NotEmpty(s.T(), resp.RequestID)
	require.Equal(s.T(), resp.RequestID, w.Header().Get("X-Request-ID"))

	require.Equal(s.T(), 1.0, testutil.ToFloat64(s.metrics.SolvesTotal.WithLabelValues("bnb", "bounded", "completed")))
	require.Equal(s.T(), 1.0, testutil.ToFloat64(s.metrics.HTTPRequestsTotal.WithLabelValues("/v1/solve", "200")))
}

func (s *ServerSuite) TestSolveUnboundedDP() {
	body := `{"budget":17,"items":[{"value":10,"cost":5}],"algo":"dp","variant":"unbounded"}`
	w := s.do(http.MethodPost, "/v1/solve", body, "X-Request-ID", "abc-123")
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	resp := decode[solveResponse](s.T(), w)
	require.Equal(s.T(), int64(30), resp.Value)
	require.Equal(s.T(), []int64{3}, resp.Counts)
	require.Equal(s.T(), "abc-123", resp.RequestID)
	require.Equal(s.T(), "abc-123", w.Header().Get("X-Request-ID"))
}

func (s *ServerSuite) TestBadRequests() {
	tests := map[string]string{
		"not json":       `{"budget":`,
		"negative cost":  `{"budget":5,"items":[{"value":1,"cost":-1}]}`,
		"unknown algo":   `{"budget":5,"items":[],"algo":"greedy"}`,
		"bad variant":    `{"budget":5,"items":[],"variant":"many"}`,
		"negative limit": `{"budget":5,"items":[],"timeout_ms":-3}`,
	}
	for name, body := range tests {
		w := s.do(http.MethodPost, "/v1/solve", body)
		require.Equal(s.T(), http.StatusBadRequest, w.Code, name)
		require.Equal(s.T(), "INVALID_REQUEST", decode[errorResponse](s.T(), w).Code, name)
	}
}

func (s *ServerSuite) TestHugeTimeoutIsCapped() {
	body := `{"budget":50,"items":[{"value":60,"cost":10},{"value":100,"cost":20}],"timeout_ms":9223372036854775807}`
	w := s.do(http.MethodPost, "/v1/solve", body)
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	resp := decode[solveResponse](s.T(), w)
	require.Equal(s.T(), int64(160), resp.Value)
	require.True(s.T(), resp.Exhaustive)
}

func (s *ServerSuite) TestTooManyItems() {
	cfg := config.Default().Server
	cfg.MaxItems = 2
	s.handler, s.metrics = s.newServer(cfg)

	w := s.do(http.MethodPost, "/v1/solve", classicBody)
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	require.Equal(s.T(), "TOO_MANY_ITEMS", decode[errorResponse](s.T(), w).Code)
}

func (s *ServerSuite) TestSolverRefusal() {
	body := `{"budget":5,"items":[{"value":3,"cost":0}],"variant":"unbounded"}`
	w := s.do(http.MethodPost, "/v1/solve", body)
	require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	require.Equal(s.T(), "UNBOUNDED_OBJECTIVE", decode[errorResponse](s.T(), w).Code)
	require.Equal(s.T(), 1.0,
		testutil.ToFloat64(s.metrics.FailuresTotal.WithLabelValues("bnb", "unbounded", "unbounded_objective")))
}

func (s *ServerSuite) TestRateLimit() {
	cfg := config.Default().Server
	cfg.RatePerSec, cfg.Burst = 0.001, 1
	s.handler, s.metrics = s.newServer(cfg)

	require.Equal(s.T(), http.StatusOK, s.do(http.MethodPost, "/v1/solve", classicBody).Code)
	w := s.do(http.MethodPost, "/v1/solve", classicBody)
	require.Equal(s.T(), http.StatusTooManyRequests, w.Code)
	require.Equal(s.T(), "RATE_LIMITED", decode[errorResponse](s.T(), w).Code)
	require.Equal(s.T(), 1.0, testutil.ToFloat64(s.metrics.RateLimitedTotal))

	// Health checks are not rate limited.
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/healthz", "").Code)
}

func (s *ServerSuite) TestMetricsEndpoint() {
	s.do(http.MethodPost, "/v1/solve", classicBody)
	w := s.do(http.MethodGet, "/metrics", "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.Contains(s.T(), w.Body.String(), "knapsack_solves_total")
	require.Contains(s.T(), w.Body.String(), "knapsack_http_requests_total")
}
