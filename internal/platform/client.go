package platform

import (
	"context"
	"errors"
	"time"

	"github.com/hiredvalley/hired-backend/internal/domain/repository"
)

// Client es el handle de larga vida hacia el platform. Es seguro para uso
// concurrente siempre que los adapters lo sean.
//
// Garantiza que todo error devuelto sea *Error: si un adapter deja escapar un
// error no tipado se envuelve como KindInternal.
type Client struct {
	identity repository.IdentityRepository
	profiles repository.ProfileRepository
	metrics  *Metrics
}

// Option configura el Client.
type Option func(*Client)

// WithMetrics instrumenta cada llamada.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New crea el Client a partir de los dos adapters.
func New(identity repository.IdentityRepository, profiles repository.ProfileRepository, opts ...Option) *Client {
	c := &Client{identity: identity, profiles: profiles}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) CreateIdentity(ctx context.Context, email, password string) (res *repository.SignUpResult, err error) {
	defer c.track("create_identity", time.Now(), &err)
	return c.identity.CreateIdentity(ctx, email, password)
}

func (c *Client) Authenticate(ctx context.Context, email, password string) (res *repository.AuthResult, err error) {
	defer c.track("authenticate", time.Now(), &err)
	return c.identity.Authenticate(ctx, email, password)
}

func (c *Client) VerifyToken(ctx context.Context, token string) (id *repository.Identity, err error) {
	defer c.track("verify_token", time.Now(), &err)
	return c.identity.VerifyToken(ctx, token)
}

func (c *Client) ProfileExists(ctx context.Context, authUID string) (ok bool, err error) {
	defer c.track("profile_exists", time.Now(), &err)
	return c.profiles.Exists(ctx, authUID)
}

func (c *Client) InsertProfile(ctx context.Context, p repository.Profile) (err error) {
	defer c.track("insert_profile", time.Now(), &err)
	return c.profiles.Insert(ctx, p)
}

func (c *Client) UpdateProfile(ctx context.Context, authUID string, f repository.ProfileFields) (err error) {
	defer c.track("update_profile", time.Now(), &err)
	return c.profiles.Update(ctx, authUID, f)
}

func (c *Client) FetchProfile(ctx context.Context, authUID string) (p *repository.Profile, found bool, err error) {
	defer c.track("fetch_profile", time.Now(), &err)
	return c.profiles.Get(ctx, authUID)
}

// track normaliza el error a *Error y registra métricas.
func (c *Client) track(op string, start time.Time, errp *error) {
	if err := *errp; err != nil {
		var pe *Error
		if !errors.As(err, &pe) {
			*errp = Internal(op, err)
		}
	}
	c.metrics.observe(op, start, *errp)
}
