package auth

import (
	"errors"
	"net/http"

	dto "github.com/hiredvalley/hired-backend/internal/http/dto/auth"
	httperrors "github.com/hiredvalley/hired-backend/internal/http/errors"
	svc "github.com/hiredvalley/hired-backend/internal/http/services/auth"
	"github.com/hiredvalley/hired-backend/internal/observability/logger"
	"go.uber.org/zap"
)

// ProtectedController maneja GET /protected.
type ProtectedController struct {
	service svc.TokenService
}

// NewProtectedController crea el controller de la ruta protegida.
func NewProtectedController(service svc.TokenService) *ProtectedController {
	return &ProtectedController{service: service}
}

func (c *ProtectedController) Protected(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ProtectedController.Protected"))

	result, err := c.service.Verify(ctx, r.Header.Get("Authorization"))
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, dto.ProtectedResponse{
		Message: "Token is valid",
		UserID:  result.UserID,
		Email:   result.Email,
	})
}

func (c *ProtectedController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, svc.ErrTokenMissing):
		w.Header().Set("WWW-Authenticate", "Bearer")
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
	case errors.Is(err, svc.ErrTokenMalformed), errors.Is(err, svc.ErrTokenInvalid):
		log.Debug("token rejected", logger.Err(err))
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		httperrors.WriteError(w, httperrors.ErrTokenInvalid)
	case errors.Is(err, svc.ErrTokenRejected):
		log.Warn("platform returned no user for token")
		httperrors.WriteError(w, httperrors.ErrTokenRejected)
	default:
		log.Error("token verification error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrTokenInvalid.WithCause(err))
	}
}
