// Package gotrue implementa repository.IdentityRepository sobre la auth API
// REST del platform hosteado (/auth/v1).
package gotrue

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/hiredvalley/hired-backend/internal/domain/repository"
	"github.com/hiredvalley/hired-backend/internal/platform"
	"github.com/hiredvalley/hired-backend/internal/platform/rest"
)

const basePath = "/auth/v1"

// Adapter es seguro para uso concurrente.
type Adapter struct {
	rc  *rest.Client
	now func() time.Time
}

// New crea el adapter para el proyecto en projectURL con su API key.
func New(projectURL, apiKey string, hc *http.Client) *Adapter {
	return &Adapter{rc: rest.NewClient(projectURL, apiKey, hc), now: time.Now}
}

var _ repository.IdentityRepository = (*Adapter)(nil)

type userDTO struct {
	ID         string        `json:"id"`
	Email      string        `json:"email"`
	Identities []identityDTO `json:"identities"`
}

type identityDTO struct {
	ID string `json:"id"`
}

// sessionDTO cubre tanto la respuesta de /token como la de /signup con
// autoconfirm (sesión con user embebido). Con confirmación por email /signup
// devuelve el user en la raíz.
type sessionDTO struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	ExpiresAt    int64    `json:"expires_at"`
	RefreshToken string   `json:"refresh_token"`
	User         *userDTO `json:"user"`

	// user en la raíz (signup sin sesión)
	ID         string        `json:"id"`
	Email      string        `json:"email"`
	Identities []identityDTO `json:"identities"`
}

func (s *sessionDTO) user() *userDTO {
	if s.User != nil {
		return s.User
	}
	if s.ID == "" {
		return nil
	}
	return &userDTO{ID: s.ID, Email: s.Email, Identities: s.Identities}
}

func (s *sessionDTO) session(now time.Time) *repository.Session {
	if s.AccessToken == "" {
		return nil
	}
	exp := time.Unix(s.ExpiresAt, 0)
	if s.ExpiresAt == 0 && s.ExpiresIn > 0 {
		exp = now.Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return &repository.Session{
		AccessToken:  s.AccessToken,
		TokenType:    s.TokenType,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		ExpiresAt:    exp,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateIdentity: POST /auth/v1/signup.
func (a *Adapter) CreateIdentity(ctx context.Context, email, password string) (*repository.SignUpResult, error) {
	const op = "gotrue.signup"

	resp, err := a.rc.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   basePath + "/signup",
		Body:   credentials{Email: email, Password: password},
	})
	if err != nil {
		return nil, platform.Internal(op, err)
	}
	if !resp.OK() {
		return nil, classifySignup(op, resp)
	}

	var out sessionDTO
	if err := resp.Decode(&out); err != nil {
		return nil, platform.Internal(op, err)
	}
	u := out.user()
	if u == nil || u.ID == "" {
		return nil, platform.Errorf(op, "signup response without user")
	}
	// Con confirmación de email activa, un email ya registrado devuelve un
	// user ofuscado sin identities en lugar de un error.
	if u.Identities != nil && len(u.Identities) == 0 {
		return nil, platform.Conflict(op, errors.New("email already registered")).WithCode("obfuscated_user")
	}

	return &repository.SignUpResult{
		Identity: repository.Identity{ID: u.ID, Email: u.Email},
		Session:  out.session(a.now()),
	}, nil
}

// Authenticate: POST /auth/v1/token?grant_type=password.
func (a *Adapter) Authenticate(ctx context.Context, email, password string) (*repository.AuthResult, error) {
	const op = "gotrue.token"

	resp, err := a.rc.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   basePath + "/token",
		Query:  url.Values{"grant_type": {"password"}},
		Body:   credentials{Email: email, Password: password},
	})
	if err != nil {
		return nil, platform.Internal(op, err)
	}
	if !resp.OK() {
		return nil, classify(op, resp)
	}

	var out sessionDTO
	if err := resp.Decode(&out); err != nil {
		return nil, platform.Internal(op, err)
	}
	u := out.user()
	sess := out.session(a.now())
	if u == nil || u.ID == "" || sess == nil {
		return nil, platform.Errorf(op, "token response without user or session")
	}
	return &repository.AuthResult{
		Identity: repository.Identity{ID: u.ID, Email: u.Email},
		Session:  *sess,
	}, nil
}

// VerifyToken: GET /auth/v1/user con el token del usuario. Si el platform
// responde 2xx sin usuario devuelve (nil, nil).
func (a *Adapter) VerifyToken(ctx context.Context, token string) (*repository.Identity, error) {
	const op = "gotrue.user"

	resp, err := a.rc.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   basePath + "/user",
		Bearer: token,
	})
	if err != nil {
		return nil, platform.Internal(op, err)
	}
	if !resp.OK() {
		pe := classify(op, resp)
		if pe.Kind != platform.KindInternal {
			pe.Kind = platform.KindInvalidToken
		}
		return nil, pe
	}

	var u userDTO
	if err := resp.Decode(&u); err != nil {
		return nil, platform.Internal(op, err)
	}
	if u.ID == "" {
		return nil, nil
	}
	return &repository.Identity{ID: u.ID, Email: u.Email}, nil
}

// Health: GET /auth/v1/health, usado por /readyz.
func (a *Adapter) Health(ctx context.Context) error {
	const op = "gotrue.health"

	resp, err := a.rc.Do(ctx, rest.Request{Method: http.MethodGet, Path: basePath + "/health"})
	if err != nil {
		return platform.Internal(op, err)
	}
	if !resp.OK() {
		return classify(op, resp)
	}
	return nil
}
