package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
)

// contactRepo implements domain.ContactRepository using SQLite.
type contactRepo struct {
	db *sql.DB
}

func (r *contactRepo) Create(ctx context.Context, message *domain.ContactMessage) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, body, created_at) VALUES (?, ?, ?, ?)`,
		message.Name, message.Email, message.Body, now,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get contact message id: %w", err)
	}
	message.ID = id
	message.CreatedAt = now
	return nil
}

func (r *contactRepo) List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, body, created_at FROM contact_messages
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *contactRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages").Scan(&count); err != nil {
		return 0, fmt.Errorf("count contact messages: %w", err)
	}
	return count, nil
}
