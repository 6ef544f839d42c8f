package domain

import (
	"context"
	"time"
)

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Body      string
	CreatedAt time.Time
}

// ContactRepository handles contact message persistence.
type ContactRepository interface {
	Create(ctx context.Context, message *ContactMessage) error
	List(ctx context.Context, limit, offset int) ([]ContactMessage, error)
	Count(ctx context.Context) (int, error)
}
