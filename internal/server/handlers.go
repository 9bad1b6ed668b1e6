package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/knapsack/bnb"
	"github.com/katalvlaran/knapsack/dp"
	"github.com/katalvlaran/knapsack/instance"
	"github.com/katalvlaran/knapsack/internal/metrics"
	"github.com/katalvlaran/knapsack/solver"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type itemDTO struct {
	Value int64 `json:"value" validate:"gte=0"`
	Cost  int64 `json:"cost" validate:"gte=0"`
}

// solveRequest is the POST /v1/solve body. Empty algo and variant fall back
// to the server's configuration; timeout_ms 0 means the server maximum.
type solveRequest struct {
	Budget     int64     `json:"budget" validate:"gte=0"`
	Items      []itemDTO `json:"items" validate:"dive"`
	Algo       string    `json:"algo" validate:"omitempty,oneof=bnb dp"`
	Variant    string    `json:"variant" validate:"omitempty,oneof=bounded unbounded"`
	TimeoutMS  int64     `json:"timeout_ms" validate:"gte=0"`
	RollingRow bool      `json:"rolling_row"`
}

type solveResponse struct {
	RequestID  string  `json:"request_id"`
	Algo       string  `json:"algo"`
	Variant    string  `json:"variant"`
	Value      int64   `json:"value"`
	Cost       int64   `json:"cost"`
	Counts     []int64 `json:"counts,omitempty"`
	Exhaustive bool    `json:"exhaustive"`
	Stop       string  `json:"stop"`
	ElapsedMS  float64 `json:"elapsed_ms"`
	Nodes      int64   `json:"nodes,omitempty"`
	Cells      int64   `json:"cells,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// handleSolve handles POST /v1/solve.
//
// Response:
//
//	200 OK: solveResponse (possibly partial: exhaustive=false)
//	400 Bad Request: malformed or invalid body
//	422 Unprocessable Entity: instance the solver refuses (overflow, ...)
//	504 Gateway Timeout: DP run that did not finish within the timeout
func (s *Server) handleSolve(c *gin.Context) {
	requestID := c.GetString(ctxRequestID)
	log := s.log.WithValues("request_id", requestID)

	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}
	if len(req.Items) > s.cfg.MaxItems {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("%d items exceeds the limit of %d", len(req.Items), s.cfg.MaxItems),
			Code:  "TOO_MANY_ITEMS",
		})
		return
	}

	cfg, timeout, err := s.requestConfig(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}
	items := make([]instance.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = instance.Item{Value: it.Value, Cost: it.Cost}
	}
	inst, err := instance.New(req.Budget, items...)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()
	cfg.Logger = log
	rep, err := solver.Solve(ctx, inst, cfg)
	if err != nil {
		status, code := classify(err)
		log.V(1).Info("solve rejected", "code", code, "error", err.Error())
		c.JSON(status, errorResponse{Error: err.Error(), Code: code})
		return
	}

	c.JSON(http.StatusOK, solveResponse{
		RequestID:  requestID,
		Algo:       rep.Algo.String(),
		Variant:    rep.Variant.String(),
		Value:      rep.Value,
		Cost:       rep.Cost,
		Counts:     rep.Counts,
		Exhaustive: rep.Exhaustive,
		Stop:       rep.Stop.String(),
		ElapsedMS:  float64(rep.Elapsed.Microseconds()) / 1000,
		Nodes:      rep.Stats.Nodes,
		Cells:      rep.Cells,
	})
}

// requestConfig derives the per-request solver configuration and timeout.
func (s *Server) requestConfig(req solveRequest) (solver.Config, time.Duration, error) {
	cfg := s.solver
	if req.Algo != "" {
		algo, err := solver.ParseAlgo(req.Algo)
		if err != nil {
			return cfg, 0, err
		}
		cfg.Algo = algo
	}
	if req.Variant != "" {
		v, err := instance.ParseVariant(req.Variant)
		if err != nil {
			return cfg, 0, err
		}
		cfg.Variant = v
	}
	if req.RollingRow {
		cfg.MemoryMode = dp.RollingRow
	}

	timeout := s.cfg.MaxTimeLimit
	// Compared in milliseconds so a huge timeout_ms cannot overflow Duration.
	if req.TimeoutMS > 0 && req.TimeoutMS < timeout.Milliseconds() {
		timeout = time.Duration(req.TimeoutMS) * time.Millisecond
	}
	// Branch-and-bound stops on its own and still returns its incumbent;
	// the context deadline only has to catch DP.
	cfg.TimeLimit = timeout

	return cfg, timeout + time.Second, nil
}

// classify maps solver errors to an HTTP status and a response code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, "TIMEOUT"
	case errors.Is(err, bnb.ErrOverflow), errors.Is(err, dp.ErrOverflow),
		errors.Is(err, bnb.ErrUnboundedObjective), errors.Is(err, dp.ErrUnboundedObjective),
		errors.Is(err, dp.ErrTableTooLarge):
		return http.StatusUnprocessableEntity, strings.ToUpper(metrics.Reason(err))
	default:
		return http.StatusInternalServerError, "SOLVE_FAILED"
	}
}
