// Package memory es un identity+profile platform en proceso. Reproduce los
// contratos del platform hosteado (emails únicos, FK perfil→identidad, sesiones
// JWT con vencimiento) para desarrollo local y tests; no persiste nada.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hiredvalley/hired-backend/internal/domain/repository"
	"github.com/hiredvalley/hired-backend/internal/platform"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "memory-platform"

// Config del platform en memoria.
type Config struct {
	// Secret firma los access tokens (HS256). Requerido.
	Secret []byte
	// AccessTTL default 1h.
	AccessTTL time.Duration
	// BcryptCost default bcrypt.DefaultCost; en tests conviene bcrypt.MinCost.
	BcryptCost int
}

type identity struct {
	id      string
	email   string
	pwdHash []byte
}

// Platform implementa repository.IdentityRepository y repository.ProfileRepository.
type Platform struct {
	cfg Config
	now func() time.Time

	mu       sync.RWMutex
	byEmail  map[string]*identity
	byID     map[string]*identity
	profiles map[string]repository.Profile
}

var (
	_ repository.IdentityRepository = (*Platform)(nil)
	_ repository.ProfileRepository  = (*Platform)(nil)
)

// New crea un platform vacío.
func New(cfg Config) (*Platform, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("memory platform: secret is required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Platform{
		cfg:      cfg,
		now:      time.Now,
		byEmail:  make(map[string]*identity),
		byID:     make(map[string]*identity),
		profiles: make(map[string]repository.Profile),
	}, nil
}

func normEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// ─── Identity ───

func (p *Platform) CreateIdentity(ctx context.Context, email, password string) (*repository.SignUpResult, error) {
	const op = "memory.signup"
	if err := ctx.Err(); err != nil {
		return nil, platform.Internal(op, err)
	}
	email = normEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cfg.BcryptCost)
	if err != nil {
		return nil, platform.Internal(op, err)
	}

	p.mu.Lock()
	if _, ok := p.byEmail[email]; ok {
		p.mu.Unlock()
		return nil, platform.Conflict(op, errors.New("user already registered")).WithCode("user_already_exists")
	}
	id := &identity{id: uuid.NewString(), email: email, pwdHash: hash}
	p.byEmail[email] = id
	p.byID[id.id] = id
	p.mu.Unlock()

	sess, err := p.issue(id)
	if err != nil {
		return nil, platform.Internal(op, err)
	}
	return &repository.SignUpResult{
		Identity: repository.Identity{ID: id.id, Email: id.email},
		Session:  sess,
	}, nil
}

func (p *Platform) Authenticate(ctx context.Context, email, password string) (*repository.AuthResult, error) {
	const op = "memory.token"
	if err := ctx.Err(); err != nil {
		return nil, platform.Internal(op, err)
	}

	p.mu.RLock()
	id, ok := p.byEmail[normEmail(email)]
	p.mu.RUnlock()
	if !ok {
		return nil, platform.NotFound(op, errors.New("user not found")).WithCode("user_not_found")
	}
	if err := bcrypt.CompareHashAndPassword(id.pwdHash, []byte(password)); err != nil {
		return nil, platform.Unauthorized(op, errors.New("invalid login credentials")).WithCode("invalid_credentials")
	}

	sess, err := p.issue(id)
	if err != nil {
		return nil, platform.Internal(op, err)
	}
	return &repository.AuthResult{
		Identity: repository.Identity{ID: id.id, Email: id.email},
		Session:  *sess,
	}, nil
}

// VerifyToken devuelve (nil, nil) si el token es válido pero la identidad ya
// no existe, igual que el platform hosteado.
func (p *Platform) VerifyToken(ctx context.Context, token string) (*repository.Identity, error) {
	const op = "memory.user"
	if err := ctx.Err(); err != nil {
		return nil, platform.Internal(op, err)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return p.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, platform.InvalidToken(op, err).WithCode("bad_jwt")
	}

	p.mu.RLock()
	id, ok := p.byID[claims.Subject]
	p.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &repository.Identity{ID: id.id, Email: id.email}, nil
}

// DeleteIdentity borra la identidad y su perfil (ON DELETE CASCADE).
func (p *Platform) DeleteIdentity(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	ident, ok := p.byID[id]
	if !ok {
		return false
	}
	delete(p.byID, id)
	delete(p.byEmail, ident.email)
	delete(p.profiles, id)
	return true
}

func (p *Platform) issue(id *identity) (*repository.Session, error) {
	now := p.now()
	exp := now.Add(p.cfg.AccessTTL)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   id.id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
		ID:        uuid.NewString(),
	})
	signed, err := tok.SignedString(p.cfg.Secret)
	if err != nil {
		return nil, err
	}
	return &repository.Session{
		AccessToken:  signed,
		TokenType:    "bearer",
		RefreshToken: uuid.NewString(),
		ExpiresIn:    int64(p.cfg.AccessTTL.Seconds()),
		ExpiresAt:    exp,
	}, nil
}

// ─── Profiles ───

func (p *Platform) Exists(ctx context.Context, authUID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, platform.Internal("memory.profile_exists", err)
	}
	p.mu.RLock()
	_, ok := p.profiles[authUID]
	p.mu.RUnlock()
	return ok, nil
}

func (p *Platform) Insert(ctx context.Context, prof repository.Profile) error {
	const op = "memory.insert_profile"
	if err := ctx.Err(); err != nil {
		return platform.Internal(op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byID[prof.AuthUID]; !ok {
		return platform.Conflict(op, errors.New("key (auth_uid) is not present in auth.users")).WithCode("23503")
	}
	if _, ok := p.profiles[prof.AuthUID]; ok {
		return platform.Conflict(op, errors.New("duplicate key value violates unique constraint")).WithCode("23505")
	}
	created := p.now().UTC()
	prof.CreatedAt = &created
	p.profiles[prof.AuthUID] = prof
	return nil
}

func (p *Platform) Update(ctx context.Context, authUID string, f repository.ProfileFields) error {
	const op = "memory.update_profile"
	if err := ctx.Err(); err != nil {
		return platform.Internal(op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	prof, ok := p.profiles[authUID]
	if !ok {
		return platform.NotFound(op, repository.ErrNotFound)
	}
	prof.FirstName, prof.LastName, prof.Role = f.FirstName, f.LastName, f.Role
	p.profiles[authUID] = prof
	return nil
}

func (p *Platform) Get(ctx context.Context, authUID string) (*repository.Profile, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, platform.Internal("memory.fetch_profile", err)
	}
	p.mu.RLock()
	prof, ok := p.profiles[authUID]
	p.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return &prof, true, nil
}
