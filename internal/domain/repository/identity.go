package repository

import (
	"context"
	"time"
)

// Identity es el registro de identidad del platform. El ID (auth_uid) lo
// asigna el platform y es inmutable; la password nunca se guarda acá.
type Identity struct {
	ID    string
	Email string
}

// Session es la sesión emitida por el platform en un login exitoso.
// Opaca para este servicio: se devuelve al caller y no se almacena.
type Session struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	ExpiresIn    int64 // segundos
	ExpiresAt    time.Time
}

// SignUpResult: la sesión es opcional (nil si el platform exige confirmar email).
type SignUpResult struct {
	Identity Identity
	Session  *Session
}

// AuthResult es el resultado de un login por password.
type AuthResult struct {
	Identity Identity
	Session  Session
}

// IdentityRepository es el contrato del identity platform.
type IdentityRepository interface {
	// CreateIdentity registra email/password. Conflict si el email ya existe.
	CreateIdentity(ctx context.Context, email, password string) (*SignUpResult, error)

	// Authenticate valida credenciales. Unauthorized o NotFound si no matchean.
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)

	// VerifyToken valida un access token. InvalidToken si está vencido o malformado.
	// Puede devolver (nil, nil) si el platform respondió sin usuario.
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}
