package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	httperrors "github.com/hiredvalley/hired-backend/internal/http/errors"
	svc "github.com/hiredvalley/hired-backend/internal/http/services/auth"
	"github.com/hiredvalley/hired-backend/internal/observability/logger"
	"go.uber.org/zap"
)

// ProfileController maneja GET /profile/{auth_uid}.
type ProfileController struct {
	service svc.ProfileService
}

// NewProfileController crea el controller de perfiles.
func NewProfileController(service svc.ProfileService) *ProfileController {
	return &ProfileController{service: service}
}

func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authUID := chi.URLParam(r, "auth_uid")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("ProfileController.GetProfile"),
		logger.AuthUID(authUID),
	)

	prof, err := c.service.Get(ctx, authUID)
	if err != nil {
		c.handleError(w, err, log)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, prof)
}

func (c *ProfileController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, svc.ErrProfileNotFound):
		httperrors.WriteError(w, httperrors.ErrProfileNotFound)
	default:
		log.Error("profile lookup error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
	}
}
