package domain

import (
	"context"
	"time"
)

// Category groups projects on the public site.
type Category struct {
	ID        int64
	Name      string
	Slug      string
	SortOrder int
	CreatedAt time.Time
}

// CategoryRepository handles category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id int64) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
