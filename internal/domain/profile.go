package domain

import (
	"context"
	"time"
)

// Profile is the site owner's public profile. There is exactly one row;
// Get returns ErrNotFound until the profile is first saved.
type Profile struct {
	ID          int64
	Name        string
	Title       string
	Bio         string // Markdown
	AvatarURL   string
	AvatarPath  string // Bucket-relative key for the avatar object
	Skills      []string
	GithubURL   string
	XURL        string
	LinkedinURL string
	UpdatedAt   time.Time
}

// ProfileRepository handles the singleton profile row.
type ProfileRepository interface {
	Get(ctx context.Context) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}
