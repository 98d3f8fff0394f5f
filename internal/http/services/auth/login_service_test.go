package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/hiredvalley/hired-backend/internal/domain/repository"
	dto "github.com/hiredvalley/hired-backend/internal/http/dto/auth"
	"github.com/hiredvalley/hired-backend/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okAuth(email, _ string) (*repository.AuthResult, error) {
	return &repository.AuthResult{
		Identity: repository.Identity{ID: "uid-9", Email: email},
		Session:  repository.Session{AccessToken: "tok-9"},
	}, nil
}

func TestLogin_Success(t *testing.T) {
	p := &stubPlatform{
		authFn: okAuth,
		fetchFn: func(uid string) (*repository.Profile, bool, error) {
			return &repository.Profile{AuthUID: uid, FirstName: "Bo", LastName: "", Role: repository.RoleRecruiter}, true, nil
		},
	}
	res, err := NewLoginService(p).Login(context.Background(), dto.LoginRequest{Email: " BO@x.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-9", res.AccessToken)
	assert.Equal(t, dto.LoginUser{AuthUID: "uid-9", FirstName: "Bo", Role: "recruiter", Email: "bo@x.io"}, res.User)
}

func TestLogin_MissingFieldsSkipsPlatform(t *testing.T) {
	p := &stubPlatform{}
	_, err := NewLoginService(p).Login(context.Background(), dto.LoginRequest{Email: "a@x.io"})
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Empty(t, p.Calls())
}

func TestLogin_RejectedCredentials(t *testing.T) {
	for _, e := range []error{
		platform.Unauthorized("t", errors.New("invalid login credentials")),
		platform.NotFound("t", errors.New("no user")),
	} {
		p := &stubPlatform{authFn: func(string, string) (*repository.AuthResult, error) { return nil, e }}
		_, err := NewLoginService(p).Login(context.Background(), dto.LoginRequest{Email: "a@x.io", Password: "x"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, []string{"authenticate"}, p.Calls())
	}
}

func TestLogin_PlatformOutageIsInternal(t *testing.T) {
	p := &stubPlatform{authFn: func(string, string) (*repository.AuthResult, error) {
		return nil, platform.Internal("t", errors.New("503"))
	}}
	_, err := NewLoginService(p).Login(context.Background(), dto.LoginRequest{Email: "a@x.io", Password: "x"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestLogin_IdentityWithoutProfile(t *testing.T) {
	p := &stubPlatform{
		authFn:  okAuth,
		fetchFn: func(string) (*repository.Profile, bool, error) { return nil, false, nil },
	}
	_, err := NewLoginService(p).Login(context.Background(), dto.LoginRequest{Email: "a@x.io", Password: "x"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
