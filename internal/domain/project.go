package domain

import (
	"context"
	"time"
)

// Project is a portfolio entry shown on the public site and managed
// through the admin area.
type Project struct {
	ID           int64
	Title        string
	Slug         string
	Summary      string
	Body         string // Markdown; rendered and sanitized before display
	DemoURL      string
	GithubURL    string
	Technologies []string
	CategoryID   *int64
	Featured     bool
	SortOrder    int
	ImageURLs    []string // Public URLs, in display order
	ImagePaths   []string // Bucket-relative keys matching ImageURLs, used for deletion
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProjectRepository handles project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id int64) (*Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
