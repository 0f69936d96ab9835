package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/apperror"
	"github.com/suteetoe/kazi/internal/store"
	"github.com/suteetoe/kazi/pkg/jwtutil"
	"github.com/suteetoe/kazi/pkg/logger"
	"github.com/suteetoe/kazi/prometheus"
	"go.uber.org/zap"
)

// Handler serves the HTTP API on top of the store.
type Handler struct {
	store  *store.Store
	tokens *jwtutil.JWTUtil
}

// New creates a Handler.
func New(st *store.Store, tokens *jwtutil.JWTUtil) *Handler {
	return &Handler{store: st, tokens: tokens}
}

// fail renders err as {"error": msg} with its mapped status.
func fail(c echo.Context, resource, operation string, err error) error {
	code := apperror.CodeOf(err)
	status := apperror.HTTPStatus(code)
	prometheus.RecordResourceOperation(resource, operation, code)

	log := logger.FromContext(c)
	fields := []zap.Field{
		zap.String("resource", resource),
		zap.String("operation", operation),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", fields...)
	} else {
		log.Warn("Request rejected", fields...)
	}
	return c.JSON(status, echo.Map{"error": apperror.MessageOf(err)})
}

// ok renders a successful result.
func ok(c echo.Context, resource, operation string, status int, body interface{}) error {
	prometheus.RecordResourceOperation(resource, operation, "")
	return c.JSON(status, body)
}

// deleted renders the deletion acknowledgement.
func deleted(c echo.Context, resource, label string) error {
	return ok(c, resource, "delete", http.StatusOK, echo.Map{"status": label + " deleted"})
}

// bind decodes and validates the request body into dest.
func bind(c echo.Context, dest interface{}) error {
	if err := c.Bind(dest); err != nil {
		return apperror.Invalid("invalid request body", err)
	}
	if err := c.Validate(dest); err != nil {
		return apperror.Invalid("validation failed", err)
	}
	return nil
}

// idParam parses a numeric path parameter.
func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperror.Invalid("invalid "+name, nil)
	}
	return uint(id), nil
}

// optionalUint parses an optional numeric query parameter.
func optionalUint(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperror.Invalid("invalid "+name, nil)
	}
	id := uint(v)
	return &id, nil
}
