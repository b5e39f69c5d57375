package handler

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"podcasts/internal/auth"
	"podcasts/internal/errors"
	"podcasts/internal/metrics"
	"podcasts/internal/model"
)

// Access tells which callers may run an operation.
type Access int

const (
	// Public operations run for anyone.
	Public Access = iota
	// Private operations need an authenticated caller.
	Private
	// HostOnly operations need an authenticated caller with the Host role.
	HostOnly
)

// Request is the body of the operation endpoint.
type Request struct {
	Operation string          `json:"operation"`
	Input     json.RawMessage `json:"input,omitempty"`
}

// GraphError is a top-level error entry.
type GraphError struct {
	Message string `json:"message"`
}

// Response is the envelope every operation is answered with.
type Response struct {
	Data   map[string]interface{} `json:"data"`
	Errors []GraphError           `json:"errors,omitempty"`
}

// Output is embedded by every payload that reports its own outcome.
type Output struct {
	OK    bool    `json:"ok"`
	Error *string `json:"error"`
}

func (o Output) succeeded() bool { return o.OK }

type outcomer interface {
	succeeded() bool
}

func success() Output {
	return Output{OK: true}
}

// failure converts err into a payload envelope. Non-domain errors are logged
// and masked.
func failure(err error) Output {
	if !errors.IsDomain(err) {
		log.Error("operation failed", "err", err)
	}
	msg := errors.Message(err)
	return Output{OK: false, Error: &msg}
}

type operation struct {
	access Access
	run    func(c echo.Context, user *model.User, raw json.RawMessage) (interface{}, error)
}

// handle builds an operation that decodes and validates its input into In
// before calling fn.
func handle[In any](access Access, fn func(ctx context.Context, user *model.User, in *In) interface{}) operation {
	return operation{
		access: access,
		run: func(c echo.Context, user *model.User, raw json.RawMessage) (interface{}, error) {
			in := new(In)
			if len(bytes.TrimSpace(raw)) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				if err := json.Unmarshal(raw, in); err != nil {
					return nil, inputError(err)
				}
			}
			if err := c.Validate(in); err != nil {
				return nil, inputError(err)
			}
			return fn(c.Request().Context(), user, in), nil
		},
	}
}

var errInvalidInput = stderrors.New("invalid input")

// inputError turns a decode or validation failure into a message that names
// the offending JSON field and nothing of the types behind it.
func inputError(err error) error {
	log.Debug("input rejected", "err", err)

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("invalid value for %q", fieldErrs[0].Field())
	}
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Errorf("invalid value for %q", typeErr.Field)
	}
	return errInvalidInput
}

// NoInput is the input of operations without arguments.
type NoInput struct{}

// GraphHandler serves every operation through a single endpoint.
type GraphHandler struct {
	operations map[string]operation
	metrics    *metrics.Metrics
}

// NewGraphHandler creates the endpoint handler from the given operation sets.
func NewGraphHandler(m *metrics.Metrics, sets ...map[string]operation) *GraphHandler {
	ops := make(map[string]operation)
	for _, set := range sets {
		for name, op := range set {
			ops[name] = op
		}
	}
	return &GraphHandler{operations: ops, metrics: m}
}

// Serve godoc
// @Summary Run a query or mutation
// @Description Runs the named operation. Private operations read the bearer token from the X-JWT header.
// @Tags operations
// @Accept json
// @Produce json
// @Param request body Request true "Operation name and input"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /graphql [post]
func (h *GraphHandler) Serve(c echo.Context) error {
	var req Request
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	op, ok := h.operations[req.Operation]
	if !ok {
		h.metrics.Observe("unknown", metrics.OutcomeRejected, 0)
		return c.JSON(http.StatusOK, Response{
			Data:   map[string]interface{}{},
			Errors: []GraphError{{Message: fmt.Sprintf("Unknown operation %q", req.Operation)}},
		})
	}

	start := time.Now()
	payload, err := h.run(c, op, req.Input)
	if err != nil {
		h.metrics.Observe(req.Operation, metrics.OutcomeRejected, time.Since(start))
		return c.JSON(http.StatusOK, Response{
			Data:   map[string]interface{}{req.Operation: nil},
			Errors: []GraphError{{Message: err.Error()}},
		})
	}

	outcome := metrics.OutcomeOK
	if o, ok := payload.(outcomer); ok && !o.succeeded() {
		outcome = metrics.OutcomeFailed
	}
	h.metrics.Observe(req.Operation, outcome, time.Since(start))

	return c.JSON(http.StatusOK, Response{
		Data: map[string]interface{}{req.Operation: payload},
	})
}

func (h *GraphHandler) run(c echo.Context, op operation, raw json.RawMessage) (interface{}, error) {
	var user *model.User
	switch op.access {
	case Private:
		u, err := auth.Authorize(c.Request().Context())
		if err != nil {
			return nil, err
		}
		user = u
	case HostOnly:
		u, err := auth.Authorize(c.Request().Context(), model.RoleHost)
		if err != nil {
			return nil, err
		}
		user = u
	}
	return op.run(c, user, raw)
}
