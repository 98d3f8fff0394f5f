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

// LoginController maneja POST /login.
type LoginController struct {
	service svc.LoginService
}

// NewLoginController crea el controller de login.
func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	var req dto.LoginRequest
	if !readJSON(w, r, &req) {
		return
	}

	result, err := c.service.Login(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, dto.LoginResponse{
		Message:     "Login successful",
		AccessToken: result.AccessToken,
		User:        result.User,
	})
	log.Info("user logged in", logger.AuthUID(result.User.AuthUID))
}

func (c *LoginController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingCredentials)
	case errors.Is(err, svc.ErrInvalidCredentials):
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
	case errors.Is(err, svc.ErrProfileNotFound):
		httperrors.WriteError(w, httperrors.ErrLoginProfileNotFound)
	default:
		log.Error("login error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
	}
}
