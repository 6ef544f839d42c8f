package service

import (
	"context"
	"fmt"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
)

// DashboardStats summarizes the site's content for the admin dashboard.
type DashboardStats struct {
	Projects        int
	Categories      int
	ContactMessages int
	StoredImages    int
}

// DashboardService aggregates entity counts for the admin dashboard.
type DashboardService struct {
	projects   domain.ProjectRepository
	categories domain.CategoryRepository
	contacts   domain.ContactRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(projects domain.ProjectRepository, categories domain.CategoryRepository, contacts domain.ContactRepository) *DashboardService {
	return &DashboardService{projects: projects, categories: categories, contacts: contacts}
}

// Stats collects the dashboard counters.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.Projects, err = s.projects.Count(ctx); err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	if stats.Categories, err = s.categories.Count(ctx); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if stats.ContactMessages, err = s.contacts.Count(ctx); err != nil {
		return nil, fmt.Errorf("count contact messages: %w", err)
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	for _, p := range projects {
		stats.StoredImages += len(p.ImageURLs)
	}
	return stats, nil
}
