package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
)

// CategoryService handles category CRUD.
type CategoryService struct {
	categories domain.CategoryRepository
	projects   domain.ProjectRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories domain.CategoryRepository, projects domain.ProjectRepository) *CategoryService {
	return &CategoryService{categories: categories, projects: projects}
}

// Create validates and stores a new category.
func (s *CategoryService) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// Update validates and saves changes to a category.
func (s *CategoryService) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if _, err := s.categories.GetByID(ctx, category.ID); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Delete removes a category. Projects referencing it are detached, not
// deleted; the repository clears the foreign key.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// GetBySlug returns one category by slug.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.categories.GetBySlug(ctx, slug)
}

// List returns all categories in display order.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func validateCategory(category *domain.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	category.Slug = strings.TrimSpace(category.Slug)
	if category.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !slugPattern.MatchString(category.Slug) {
		return fmt.Errorf("%w: slug must be lowercase letters, digits and hyphens", domain.ErrInvalidInput)
	}
	return nil
}
