package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	outbound "github.com/exaNishimura/Portfolio-Management-System-sub000/internal/mail"
)

// ContactService stores contact-form messages and sends a notification
// email. Delivery failures are logged, not surfaced: the message is already
// persisted and the visitor should not see an error for a relay problem.
type ContactService struct {
	contacts domain.ContactRepository
	mailer   outbound.Mailer // nil disables notifications
	notifyTo string
}

// NewContactService creates a new ContactService. mailer may be nil.
func NewContactService(contacts domain.ContactRepository, mailer outbound.Mailer, notifyTo string) *ContactService {
	return &ContactService{contacts: contacts, mailer: mailer, notifyTo: notifyTo}
}

// Submit validates, stores, and forwards a contact message.
func (s *ContactService) Submit(ctx context.Context, name, email, body string) (*domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	body = strings.TrimSpace(body)

	if name == "" || body == "" {
		return nil, fmt.Errorf("%w: name and message are required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	if len(body) > 10000 {
		return nil, fmt.Errorf("%w: message too long", domain.ErrInvalidInput)
	}

	message := &domain.ContactMessage{Name: name, Email: email, Body: body}
	if err := s.contacts.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}

	if s.mailer != nil && s.notifyTo != "" {
		subject := fmt.Sprintf("Portfolio contact from %s", name)
		notification := fmt.Sprintf("From: %s <%s>\n\n%s", name, email, body)
		if err := s.mailer.Send(ctx, s.notifyTo, subject, notification); err != nil {
			slog.Error("send contact notification", "error", err)
		}
	}
	return message, nil
}

// List returns stored messages, newest first.
func (s *ContactService) List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.contacts.List(ctx, limit, offset)
}
