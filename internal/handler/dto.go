package handler

import (
	"time"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/service"
)

// UserDTO is the JSON representation of an admin user.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
}

// ProjectDTO is the JSON representation of a project.
type ProjectDTO struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Summary      string   `json:"summary"`
	Body         string   `json:"body"`
	DemoURL      string   `json:"demoUrl"`
	GithubURL    string   `json:"githubUrl"`
	Technologies []string `json:"technologies"`
	CategoryID   *int64   `json:"categoryId"`
	Featured     bool     `json:"featured"`
	SortOrder    int      `json:"sortOrder"`
	ImageURLs    []string `json:"imageUrls"`
	ImagePaths   []string `json:"imagePaths"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

func toProjectDTO(p *domain.Project) ProjectDTO {
	return ProjectDTO{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Summary:      p.Summary,
		Body:         p.Body,
		DemoURL:      p.DemoURL,
		GithubURL:    p.GithubURL,
		Technologies: p.Technologies,
		CategoryID:   p.CategoryID,
		Featured:     p.Featured,
		SortOrder:    p.SortOrder,
		ImageURLs:    p.ImageURLs,
		ImagePaths:   p.ImagePaths,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

func (d ProjectDTO) toDomain() *domain.Project {
	return &domain.Project{
		ID:           d.ID,
		Title:        d.Title,
		Slug:         d.Slug,
		Summary:      d.Summary,
		Body:         d.Body,
		DemoURL:      d.DemoURL,
		GithubURL:    d.GithubURL,
		Technologies: d.Technologies,
		CategoryID:   d.CategoryID,
		Featured:     d.Featured,
		SortOrder:    d.SortOrder,
		ImageURLs:    d.ImageURLs,
		ImagePaths:   d.ImagePaths,
	}
}

// CategoryDTO is the JSON representation of a category.
type CategoryDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	SortOrder int    `json:"sortOrder"`
	CreatedAt string `json:"createdAt"`
}

func toCategoryDTO(c *domain.Category) CategoryDTO {
	return CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		SortOrder: c.SortOrder,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

// ProfileDTO is the JSON representation of the site profile.
type ProfileDTO struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Bio         string   `json:"bio"`
	AvatarURL   string   `json:"avatarUrl"`
	AvatarPath  string   `json:"avatarPath"`
	Skills      []string `json:"skills"`
	GithubURL   string   `json:"githubUrl"`
	XURL        string   `json:"xUrl"`
	LinkedinURL string   `json:"linkedinUrl"`
	UpdatedAt   string   `json:"updatedAt"`
}

func toProfileDTO(p *domain.Profile) ProfileDTO {
	return ProfileDTO{
		Name:        p.Name,
		Title:       p.Title,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
		AvatarPath:  p.AvatarPath,
		Skills:      p.Skills,
		GithubURL:   p.GithubURL,
		XURL:        p.XURL,
		LinkedinURL: p.LinkedinURL,
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func (d ProfileDTO) toDomain() *domain.Profile {
	return &domain.Profile{
		Name:        d.Name,
		Title:       d.Title,
		Bio:         d.Bio,
		AvatarURL:   d.AvatarURL,
		AvatarPath:  d.AvatarPath,
		Skills:      d.Skills,
		GithubURL:   d.GithubURL,
		XURL:        d.XURL,
		LinkedinURL: d.LinkedinURL,
	}
}

// ContactMessageDTO is the JSON representation of a contact message.
type ContactMessageDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

func toContactMessageDTO(m domain.ContactMessage) ContactMessageDTO {
	return ContactMessageDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Body:      m.Body,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

// ConversionStatsDTO mirrors the batch upload statistics on the wire.
// TotalCompressionRatio is null when no file was converted.
type ConversionStatsDTO struct {
	TotalFiles            int  `json:"totalFiles"`
	ConvertedToAVIF       int  `json:"convertedToAVIF"`
	TotalCompressionRatio *int `json:"totalCompressionRatio"`
}

func toConversionStatsDTO(s service.ConversionStats) ConversionStatsDTO {
	return ConversionStatsDTO{
		TotalFiles:            s.TotalFiles,
		ConvertedToAVIF:       s.ConvertedCount,
		TotalCompressionRatio: s.CompressionRatioPercent,
	}
}
