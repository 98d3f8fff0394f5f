// Package health contiene el controller para health checks.
package health

import (
	"context"
	"net/http"
	"time"

	dto "github.com/hiredvalley/hired-backend/internal/http/dto/health"
	httperrors "github.com/hiredvalley/hired-backend/internal/http/errors"
	"github.com/hiredvalley/hired-backend/internal/observability/logger"
	"go.uber.org/zap"
)

// Checker verifica una dependencia para /readyz.
type Checker func(ctx context.Context) error

// HealthController maneja las rutas de health check.
type HealthController struct {
	version  string
	checkers map[string]Checker
}

// NewHealthController crea el controller. checkers puede ser nil.
func NewHealthController(version string, checkers map[string]Checker) *HealthController {
	return &HealthController{version: version, checkers: checkers}
}

// Health maneja GET /api/v1/auth/health. No consulta dependencias.
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	httperrors.WriteJSON(w, http.StatusOK, dto.HealthResponse{Status: "Auth routes are working"})
}

// Readyz maneja GET /readyz.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("HealthController.Readyz"))

	resp := dto.ReadyResponse{Status: "ready", Version: c.version}
	if len(c.checkers) > 0 {
		resp.Components = make(map[string]string, len(c.checkers))
	}
	for name, check := range c.checkers {
		if err := check(ctx); err != nil {
			log.Warn("readiness check failed", logger.Component(name), logger.Err(err))
			resp.Components[name] = "error"
			resp.Status = "unavailable"
			continue
		}
		resp.Components[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ready" {
		status = http.StatusServiceUnavailable
	}
	log.Debug("health check completed", logger.String("status", resp.Status), zap.Int("components", len(resp.Components)))
	httperrors.WriteJSON(w, status, resp)
}
