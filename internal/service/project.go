package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/storage"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ProjectService orchestrates project CRUD and keeps stored images in sync
// when a project is deleted.
type ProjectService struct {
	projects   domain.ProjectRepository
	categories domain.CategoryRepository
	images     *ImageService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects domain.ProjectRepository, categories domain.CategoryRepository, images *ImageService) *ProjectService {
	return &ProjectService{projects: projects, categories: categories, images: images}
}

// Create validates and stores a new project.
func (s *ProjectService) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if err := s.validate(ctx, project); err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// Update validates and saves changes to an existing project.
func (s *ProjectService) Update(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if _, err := s.projects.GetByID(ctx, project.ID); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, project); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Delete removes a project and its stored images. Image removal is
// best-effort: a storage failure is logged but does not resurrect the
// project record.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	for _, url := range project.ImageURLs {
		if err := s.images.DeleteByPublicURL(ctx, url, storage.ProjectBucket); err != nil {
			slog.Error("delete project image", "project", id, "url", url, "error", err)
		}
	}
	return nil
}

// GetByID returns one project.
func (s *ProjectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// GetBySlug returns one project by its public slug.
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return s.projects.GetBySlug(ctx, slug)
}

// List returns all projects in display order.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

// ListByCategory returns the projects in one category, in display order.
func (s *ProjectService) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Project, error) {
	return s.projects.ListByCategory(ctx, categoryID)
}

func (s *ProjectService) validate(ctx context.Context, project *domain.Project) error {
	project.Title = strings.TrimSpace(project.Title)
	project.Slug = strings.TrimSpace(project.Slug)

	if project.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !slugPattern.MatchString(project.Slug) {
		return fmt.Errorf("%w: slug must be lowercase letters, digits and hyphens", domain.ErrInvalidInput)
	}
	if len(project.ImageURLs) != len(project.ImagePaths) {
		return fmt.Errorf("%w: image URLs and paths must match up", domain.ErrInvalidInput)
	}
	if project.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *project.CategoryID); err != nil {
			return fmt.Errorf("%w: unknown category %d", domain.ErrInvalidInput, *project.CategoryID)
		}
	}
	return nil
}
