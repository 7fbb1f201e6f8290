package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"quill/internal/delivery/api/response"
	deliverycontext "quill/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const readinessTimeout = 2 * time.Second

// ReadinessProbe reports whether a dependency can serve traffic.
type ReadinessProbe func(ctx context.Context) error

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	Probe  ReadinessProbe
	Logger *slog.Logger
}

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	probe  ReadinessProbe
	logger *slog.Logger
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{probe: params.Probe, logger: params.Logger}
}

// HealthStatus is the payload of both probes.
type HealthStatus struct {
	Status string `json:"status"`
}

// Liveness always succeeds while the process serves HTTP.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return response.Success(c, http.StatusOK, HealthStatus{Status: "ok"})
}

// Readiness checks the database within readinessTimeout.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	if err := h.probe(ctx); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Warn("Readiness check failed", slog.Any("error", err))

		return response.Error(c, http.StatusServiceUnavailable, "NOT_READY", "Service is not ready", nil)
	}

	return response.Success(c, http.StatusOK, HealthStatus{Status: "ready"})
}
