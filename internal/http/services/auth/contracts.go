// Package auth contiene los services de /api/v1/auth.
package auth

import (
	"context"

	"github.com/hiredvalley/hired-backend/internal/domain/repository"
	dto "github.com/hiredvalley/hired-backend/internal/http/dto/auth"
)

// Platform es la vista del platform que usan los services. *platform.Client la
// implementa; todos los errores que devuelve son *platform.Error.
type Platform interface {
	CreateIdentity(ctx context.Context, email, password string) (*repository.SignUpResult, error)
	Authenticate(ctx context.Context, email, password string) (*repository.AuthResult, error)
	VerifyToken(ctx context.Context, token string) (*repository.Identity, error)
	ProfileExists(ctx context.Context, authUID string) (bool, error)
	InsertProfile(ctx context.Context, p repository.Profile) error
	UpdateProfile(ctx context.Context, authUID string, f repository.ProfileFields) error
	FetchProfile(ctx context.Context, authUID string) (*repository.Profile, bool, error)
}

// SignupService crea la identidad y reconcilia el perfil.
type SignupService interface {
	Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResult, error)
}

// LoginService autentica con email/password y resuelve el perfil.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error)
}

// TokenService resuelve la identidad de un header Authorization.
type TokenService interface {
	Verify(ctx context.Context, authorization string) (*dto.TokenResult, error)
}

// ProfileService lee perfiles por auth_uid.
type ProfileService interface {
	Get(ctx context.Context, authUID string) (*dto.ProfileResponse, error)
}
