package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
)

// profileRepo implements domain.ProfileRepository using SQLite.
// The profile table holds at most one row with id = 1.
type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	p := &domain.Profile{}
	var skills string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, title, bio, avatar_url, avatar_path, skills,
		   github_url, x_url, linkedin_url, updated_at
		 FROM profile WHERE id = 1`,
	).Scan(&p.ID, &p.Name, &p.Title, &p.Bio, &p.AvatarURL, &p.AvatarPath,
		&skills, &p.GithubURL, &p.XURL, &p.LinkedinURL, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if err := json.Unmarshal([]byte(skills), &p.Skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	return p, nil
}

func (r *profileRepo) Upsert(ctx context.Context, profile *domain.Profile) error {
	skills, err := marshalStrings(profile.Skills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profile (id, name, title, bio, avatar_url, avatar_path, skills,
		   github_url, x_url, linkedin_url, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, title = excluded.title, bio = excluded.bio,
		   avatar_url = excluded.avatar_url, avatar_path = excluded.avatar_path,
		   skills = excluded.skills, github_url = excluded.github_url,
		   x_url = excluded.x_url, linkedin_url = excluded.linkedin_url,
		   updated_at = excluded.updated_at`,
		profile.Name, profile.Title, profile.Bio, profile.AvatarURL, profile.AvatarPath,
		skills, profile.GithubURL, profile.XURL, profile.LinkedinURL, now,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	profile.ID = 1
	profile.UpdatedAt = now
	return nil
}
