package service

import (
	"context"
	"fmt"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
)

// SettingsService reads and writes site settings.
type SettingsService struct {
	settings domain.SettingsRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settings domain.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// GetAll returns every setting.
func (s *SettingsService) GetAll(ctx context.Context) (map[string]string, error) {
	return s.settings.GetAll(ctx)
}

// Get returns one setting value, or "" when unset.
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	return s.settings.Get(ctx, key)
}

// SetAll writes the given settings.
func (s *SettingsService) SetAll(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if key == "" {
			return fmt.Errorf("%w: empty settings key", domain.ErrInvalidInput)
		}
		if err := s.settings.Set(ctx, key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}
