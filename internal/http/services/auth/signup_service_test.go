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

func validSignup() dto.SignupRequest {
	last := "Lee"
	return dto.SignupRequest{Email: "Ana@X.io", Password: "pw123456", FirstName: "Ana", LastName: &last, Role: "candidate"}
}

func TestSignup_InsertsProfileWhenAbsent(t *testing.T) {
	var inserted repository.Profile
	p := &stubPlatform{
		insertFn: func(pr repository.Profile) error { inserted = pr; return nil },
	}

	res, err := NewSignupService(p).Signup(context.Background(), validSignup())
	require.NoError(t, err)
	assert.Equal(t, "uid-1", res.AuthUID)
	assert.True(t, res.Created)
	assert.Equal(t, []string{"create_identity", "profile_exists", "insert_profile"}, p.Calls())
	assert.Equal(t, repository.Profile{AuthUID: "uid-1", FirstName: "Ana", LastName: "Lee", Role: repository.RoleCandidate}, inserted)
}

func TestSignup_UpdatesExistingProfile(t *testing.T) {
	var gotUID string
	var gotFields repository.ProfileFields
	p := &stubPlatform{
		existsFn: func(string) (bool, error) { return true, nil },
		updateFn: func(uid string, f repository.ProfileFields) error { gotUID, gotFields = uid, f; return nil },
	}
	in := validSignup()
	in.LastName = nil
	in.Role = "Recruiter"

	res, err := NewSignupService(p).Signup(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, []string{"create_identity", "profile_exists", "update_profile"}, p.Calls())
	assert.Equal(t, "uid-1", gotUID)
	assert.Equal(t, repository.ProfileFields{FirstName: "Ana", LastName: "", Role: repository.RoleRecruiter}, gotFields)
}

func TestSignup_NormalizesEmailBeforeCreate(t *testing.T) {
	var gotEmail string
	p := &stubPlatform{
		createFn: func(email, _ string) (*repository.SignUpResult, error) {
			gotEmail = email
			return &repository.SignUpResult{Identity: repository.Identity{ID: "uid-1"}}, nil
		},
	}
	_, err := NewSignupService(p).Signup(context.Background(), validSignup())
	require.NoError(t, err)
	assert.Equal(t, "ana@x.io", gotEmail)
}

func TestSignup_ValidationHappensBeforeAnyPlatformCall(t *testing.T) {
	p := &stubPlatform{}
	svc := NewSignupService(p)

	in := validSignup()
	in.FirstName = ""
	_, err := svc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, ErrMissingFields)

	in = validSignup()
	in.Role = "admin"
	_, err = svc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidRole)

	assert.Empty(t, p.Calls())
}

func TestSignup_ConflictAtAnyStepIsEmailTaken(t *testing.T) {
	conflict := platform.Conflict("test", errors.New("duplicate"))

	cases := map[string]*stubPlatform{
		"create": {createFn: func(string, string) (*repository.SignUpResult, error) { return nil, conflict }},
		"exists": {existsFn: func(string) (bool, error) { return false, conflict }},
		"insert race": {insertFn: func(repository.Profile) error { return conflict.WithCode("23505") }},
		"update": {
			existsFn: func(string) (bool, error) { return true, nil },
			updateFn: func(string, repository.ProfileFields) error { return conflict },
		},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewSignupService(p).Signup(context.Background(), validSignup())
			assert.ErrorIs(t, err, ErrEmailTaken)
			assert.NotErrorIs(t, err, ErrInternal)
		})
	}
}

func TestSignup_OtherFailuresAreInternal(t *testing.T) {
	for _, kindErr := range []error{
		platform.Internal("test", errors.New("timeout")),
		platform.Unauthorized("test", errors.New("bad key")),
		platform.NotFound("test", errors.New("no table")),
		errors.New("unclassified"),
	} {
		p := &stubPlatform{insertFn: func(repository.Profile) error { return kindErr }}
		_, err := NewSignupService(p).Signup(context.Background(), validSignup())
		assert.ErrorIs(t, err, ErrInternal)
		assert.ErrorIs(t, err, kindErr)
	}
}
