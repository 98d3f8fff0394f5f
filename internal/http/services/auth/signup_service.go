package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/hiredvalley/hired-backend/internal/domain/repository"
	dto "github.com/hiredvalley/hired-backend/internal/http/dto/auth"
	"github.com/hiredvalley/hired-backend/internal/observability/logger"
	"github.com/hiredvalley/hired-backend/internal/platform"
	"github.com/hiredvalley/hired-backend/internal/validation"
)

type signupService struct {
	platform Platform
}

// NewSignupService crea el service de signup.
func NewSignupService(p Platform) SignupService {
	return &signupService{platform: p}
}

// Signup: validar → crear identidad → upsert del perfil.
// Un perfil preexistente para la identidad se actualiza; nunca se duplica.
func (s *signupService) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.signup"),
		logger.Op("Signup"),
	)

	norm, err := validation.NormalizeSignup(validation.SignupInput{
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
	})
	switch {
	case errors.Is(err, validation.ErrMissingFields):
		return nil, fmt.Errorf("%w: %v", ErrMissingFields, err)
	case errors.Is(err, validation.ErrInvalidRole):
		return nil, fmt.Errorf("%w: %v", ErrInvalidRole, err)
	case err != nil:
		return nil, internal("validate", err)
	}

	log = log.With(logger.Email(norm.Email), logger.Role(string(norm.Fields.Role)))

	// Paso 1: identidad
	created, err := s.platform.CreateIdentity(ctx, norm.Email, norm.Password)
	if err != nil {
		return nil, signupError("create_identity", err)
	}
	authUID := created.Identity.ID
	log = log.With(logger.AuthUID(authUID))

	// Paso 2: reconciliar perfil
	exists, err := s.platform.ProfileExists(ctx, authUID)
	if err != nil {
		return nil, signupError("profile_exists", err)
	}

	if exists {
		if err := s.platform.UpdateProfile(ctx, authUID, norm.Fields); err != nil {
			return nil, signupError("update_profile", err)
		}
		log.Debug("profile updated for new identity")
		return &dto.SignupResult{AuthUID: authUID}, nil
	}

	err = s.platform.InsertProfile(ctx, repository.Profile{
		AuthUID:   authUID,
		FirstName: norm.Fields.FirstName,
		LastName:  norm.Fields.LastName,
		Role:      norm.Fields.Role,
	})
	if err != nil {
		return nil, signupError("insert_profile", err)
	}
	log.Debug("profile inserted")
	return &dto.SignupResult{AuthUID: authUID, Created: true}, nil
}

// signupError: Conflict en cualquier paso es email duplicado, el resto es 500.
func signupError(step string, err error) error {
	switch platform.KindOf(err) {
	case platform.KindConflict:
		return fmt.Errorf("%w: %s: %w", ErrEmailTaken, step, err)
	default:
		return internal(step, err)
	}
}
