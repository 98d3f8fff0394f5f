package auth

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrTokenMissing       = errors.New("missing bearer token")
	ErrTokenMalformed     = errors.New("malformed authorization header")
	ErrTokenInvalid       = errors.New("invalid token")
	// ErrTokenRejected: el platform aceptó el token pero no devolvió usuario.
	ErrTokenRejected = errors.New("token resolved to no user")
	ErrInternal      = errors.New("internal error")
)

func internal(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}
