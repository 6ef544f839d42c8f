package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/storage"
)

// ProfileService manages the singleton site profile. Replacing the avatar
// deletes the previously stored object so orphans do not accumulate.
type ProfileService struct {
	profiles domain.ProfileRepository
	images   *ImageService
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles domain.ProfileRepository, images *ImageService) *ProfileService {
	return &ProfileService{profiles: profiles, images: images}
}

// Get returns the profile, or ErrNotFound before first save.
func (s *ProfileService) Get(ctx context.Context) (*domain.Profile, error) {
	return s.profiles.Get(ctx)
}

// Save validates and persists the profile. When the avatar URL changed, the
// old stored object is removed best-effort after the record is saved.
func (s *ProfileService) Save(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	previousAvatar := ""
	if existing, err := s.profiles.Get(ctx); err == nil {
		previousAvatar = existing.AvatarURL
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	if previousAvatar != "" && previousAvatar != profile.AvatarURL {
		if err := s.images.DeleteByPublicURL(ctx, previousAvatar, storage.ProfileBucket); err != nil {
			slog.Error("delete replaced avatar", "url", previousAvatar, "error", err)
		}
	}
	return profile, nil
}
