package auth

import (
	"context"
	"sync"

	"github.com/hiredvalley/hired-backend/internal/domain/repository"
)

// stubPlatform registra las llamadas y delega en funciones opcionales.
type stubPlatform struct {
	mu    sync.Mutex
	calls []string

	createFn func(email, password string) (*repository.SignUpResult, error)
	authFn   func(email, password string) (*repository.AuthResult, error)
	verifyFn func(token string) (*repository.Identity, error)
	existsFn func(uid string) (bool, error)
	insertFn func(p repository.Profile) error
	updateFn func(uid string, f repository.ProfileFields) error
	fetchFn  func(uid string) (*repository.Profile, bool, error)
}

func (s *stubPlatform) record(op string) {
	s.mu.Lock()
	s.calls = append(s.calls, op)
	s.mu.Unlock()
}

func (s *stubPlatform) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubPlatform) CreateIdentity(_ context.Context, email, password string) (*repository.SignUpResult, error) {
	s.record("create_identity")
	if s.createFn == nil {
		return &repository.SignUpResult{Identity: repository.Identity{ID: "uid-1", Email: email}}, nil
	}
	return s.createFn(email, password)
}

func (s *stubPlatform) Authenticate(_ context.Context, email, password string) (*repository.AuthResult, error) {
	s.record("authenticate")
	return s.authFn(email, password)
}

func (s *stubPlatform) VerifyToken(_ context.Context, token string) (*repository.Identity, error) {
	s.record("verify_token")
	return s.verifyFn(token)
}

func (s *stubPlatform) ProfileExists(_ context.Context, uid string) (bool, error) {
	s.record("profile_exists")
	if s.existsFn == nil {
		return false, nil
	}
	return s.existsFn(uid)
}

func (s *stubPlatform) InsertProfile(_ context.Context, p repository.Profile) error {
	s.record("insert_profile")
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(p)
}

func (s *stubPlatform) UpdateProfile(_ context.Context, uid string, f repository.ProfileFields) error {
	s.record("update_profile")
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(uid, f)
}

func (s *stubPlatform) FetchProfile(_ context.Context, uid string) (*repository.Profile, bool, error) {
	s.record("fetch_profile")
	return s.fetchFn(uid)
}
