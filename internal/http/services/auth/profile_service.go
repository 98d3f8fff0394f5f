package auth

import (
	"context"
	"strings"

	dto "github.com/hiredvalley/hired-backend/internal/http/dto/auth"
	"github.com/hiredvalley/hired-backend/internal/platform"
)

type profileService struct {
	platform Platform
}

// NewProfileService crea el service de lectura de perfiles.
func NewProfileService(p Platform) ProfileService {
	return &profileService{platform: p}
}

func (s *profileService) Get(ctx context.Context, authUID string) (*dto.ProfileResponse, error) {
	authUID = strings.TrimSpace(authUID)
	if authUID == "" {
		return nil, ErrProfileNotFound
	}

	prof, found, err := s.platform.FetchProfile(ctx, authUID)
	if err != nil {
		if platform.KindOf(err) == platform.KindNotFound {
			return nil, ErrProfileNotFound
		}
		return nil, internal("fetch_profile", err)
	}
	if !found {
		return nil, ErrProfileNotFound
	}

	return &dto.ProfileResponse{
		AuthUID:   prof.AuthUID,
		FirstName: prof.FirstName,
		LastName:  prof.LastName,
		Role:      string(prof.Role),
		CreatedAt: prof.CreatedAt,
	}, nil
}
