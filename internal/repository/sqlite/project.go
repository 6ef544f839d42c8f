package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
)

// projectRepo implements domain.ProjectRepository using SQLite.
// String slices (technologies, image URLs/paths) are stored as JSON text.
type projectRepo struct {
	db *sql.DB
}

const projectColumns = `id, title, slug, summary, body, demo_url, github_url,
	technologies, category_id, featured, sort_order, image_urls, image_paths,
	created_at, updated_at`

func (r *projectRepo) Create(ctx context.Context, project *domain.Project) error {
	technologies, imageURLs, imagePaths, err := marshalProjectLists(project)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (title, slug, summary, body, demo_url, github_url,
		   technologies, category_id, featured, sort_order, image_urls, image_paths,
		   created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.Title, project.Slug, project.Summary, project.Body,
		project.DemoURL, project.GithubURL, technologies, project.CategoryID,
		project.Featured, project.SortOrder, imageURLs, imagePaths, now, now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("insert project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get project id: %w", err)
	}
	project.ID = id
	project.CreatedAt = now
	project.UpdatedAt = now
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return r.get(ctx, "id = ?", id)
}

func (r *projectRepo) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return r.get(ctx, "slug = ?", slug)
}

func (r *projectRepo) get(ctx context.Context, where string, arg any) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE `+where, arg)
	project, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

func (r *projectRepo) List(ctx context.Context) ([]domain.Project, error) {
	return r.list(ctx,
		`SELECT `+projectColumns+` FROM projects
		 ORDER BY featured DESC, sort_order ASC, created_at DESC`)
}

func (r *projectRepo) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Project, error) {
	return r.list(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE category_id = ?
		 ORDER BY featured DESC, sort_order ASC, created_at DESC`, categoryID)
}

func (r *projectRepo) list(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func (r *projectRepo) Update(ctx context.Context, project *domain.Project) error {
	technologies, imageURLs, imagePaths, err := marshalProjectLists(project)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, slug = ?, summary = ?, body = ?,
		   demo_url = ?, github_url = ?, technologies = ?, category_id = ?,
		   featured = ?, sort_order = ?, image_urls = ?, image_paths = ?, updated_at = ?
		 WHERE id = ?`,
		project.Title, project.Slug, project.Summary, project.Body,
		project.DemoURL, project.GithubURL, technologies, project.CategoryID,
		project.Featured, project.SortOrder, imageURLs, imagePaths, now, project.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("update project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	project.UpdatedAt = now
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *projectRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	p := &domain.Project{}
	var technologies, imageURLs, imagePaths string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Body,
		&p.DemoURL, &p.GithubURL, &technologies, &p.CategoryID,
		&p.Featured, &p.SortOrder, &imageURLs, &imagePaths,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(technologies), &p.Technologies); err != nil {
		return nil, fmt.Errorf("decode technologies: %w", err)
	}
	if err := json.Unmarshal([]byte(imageURLs), &p.ImageURLs); err != nil {
		return nil, fmt.Errorf("decode image urls: %w", err)
	}
	if err := json.Unmarshal([]byte(imagePaths), &p.ImagePaths); err != nil {
		return nil, fmt.Errorf("decode image paths: %w", err)
	}
	return p, nil
}

func marshalProjectLists(project *domain.Project) (technologies, imageURLs, imagePaths string, err error) {
	t, err := marshalStrings(project.Technologies)
	if err != nil {
		return "", "", "", fmt.Errorf("encode technologies: %w", err)
	}
	u, err := marshalStrings(project.ImageURLs)
	if err != nil {
		return "", "", "", fmt.Errorf("encode image urls: %w", err)
	}
	p, err := marshalStrings(project.ImagePaths)
	if err != nil {
		return "", "", "", fmt.Errorf("encode image paths: %w", err)
	}
	return t, u, p, nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
