package auth

import (
	"context"
	"fmt"
	"strings"

	dto "github.com/hiredvalley/hired-backend/internal/http/dto/auth"
	"github.com/hiredvalley/hired-backend/internal/observability/logger"
)

type tokenService struct {
	platform Platform
}

// NewTokenService crea el service de verificación de bearer tokens.
// Cada llamada consulta al platform, no hay cache.
func NewTokenService(p Platform) TokenService {
	return &tokenService{platform: p}
}

func (s *tokenService) Verify(ctx context.Context, authorization string) (*dto.TokenResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.token"),
		logger.Op("Verify"),
	)

	token, err := ParseBearer(authorization)
	if err != nil {
		return nil, err
	}

	ident, err := s.platform.VerifyToken(ctx, token)
	if err != nil {
		log.Debug("token verification failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if ident == nil {
		return nil, ErrTokenRejected
	}
	return &dto.TokenResult{UserID: ident.ID, Email: ident.Email}, nil
}

// ParseBearer extrae el token de "Bearer <token>". El esquema no distingue
// mayúsculas.
func ParseBearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrTokenMissing
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", ErrTokenMalformed
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrTokenMalformed
	}
	return token, nil
}
