package auth

import (
	"context"
	"errors"
	"fmt"

	dto "github.com/hiredvalley/hired-backend/internal/http/dto/auth"
	"github.com/hiredvalley/hired-backend/internal/observability/logger"
	"github.com/hiredvalley/hired-backend/internal/platform"
	"github.com/hiredvalley/hired-backend/internal/validation"
)

type loginService struct {
	platform Platform
}

// NewLoginService crea el service de login.
func NewLoginService(p Platform) LoginService {
	return &loginService{platform: p}
}

func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	creds, err := validation.NormalizeLogin(validation.LoginInput{Email: in.Email, Password: in.Password})
	if err != nil {
		if errors.Is(err, validation.ErrMissingFields) {
			return nil, fmt.Errorf("%w: %v", ErrMissingFields, err)
		}
		return nil, internal("validate", err)
	}
	log = log.With(logger.Email(creds.Email))

	auth, err := s.platform.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		switch platform.KindOf(err) {
		case platform.KindUnauthorized, platform.KindNotFound, platform.KindInvalidToken:
			// Usuario inexistente y password incorrecto son indistinguibles para el cliente.
			log.Debug("authentication rejected", logger.Err(err))
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		default:
			return nil, internal("authenticate", err)
		}
	}
	authUID := auth.Identity.ID
	log = log.With(logger.AuthUID(authUID))

	prof, found, err := s.platform.FetchProfile(ctx, authUID)
	if err != nil {
		if platform.KindOf(err) == platform.KindNotFound {
			return nil, ErrProfileNotFound
		}
		return nil, internal("fetch_profile", err)
	}
	if !found {
		log.Info("identity without profile row")
		return nil, ErrProfileNotFound
	}

	email := auth.Identity.Email
	if email == "" {
		email = creds.Email
	}

	return &dto.LoginResult{
		AccessToken: auth.Session.AccessToken,
		User: dto.LoginUser{
			AuthUID:   prof.AuthUID,
			FirstName: prof.FirstName,
			LastName:  prof.LastName,
			Role:      string(prof.Role),
			Email:     email,
		},
	}, nil
}
