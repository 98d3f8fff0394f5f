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

// SignupController maneja POST /signup.
type SignupController struct {
	service svc.SignupService
}

// NewSignupController crea el controller de signup.
func NewSignupController(service svc.SignupService) *SignupController {
	return &SignupController{service: service}
}

func (c *SignupController) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("SignupController.Signup"))

	var req dto.SignupRequest
	if !readJSON(w, r, &req) {
		return
	}

	result, err := c.service.Signup(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	httperrors.WriteJSON(w, http.StatusCreated, dto.SignupResponse{
		Message: "User registered successfully",
		AuthUID: result.AuthUID,
	})
	log.Info("user registered", logger.AuthUID(result.AuthUID), zap.Bool("profile_created", result.Created))
}

func (c *SignupController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields)
	case errors.Is(err, svc.ErrInvalidRole):
		httperrors.WriteError(w, httperrors.ErrInvalidRole)
	case errors.Is(err, svc.ErrEmailTaken):
		log.Info("signup conflict", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrEmailAlreadyInUse)
	default:
		log.Error("registration error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrRegistrationFailed.WithCause(err))
	}
}
