package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/service"
)

// AdminHandler exposes the admin JSON API for projects, categories,
// profile, settings, contact messages, and the dashboard.
type AdminHandler struct {
	projects   *service.ProjectService
	categories *service.CategoryService
	profile    *service.ProfileService
	settings   *service.SettingsService
	contacts   *service.ContactService
	dashboard  *service.DashboardService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	projects *service.ProjectService,
	categories *service.CategoryService,
	profile *service.ProfileService,
	settings *service.SettingsService,
	contacts *service.ContactService,
	dashboard *service.DashboardService,
) *AdminHandler {
	return &AdminHandler{
		projects:   projects,
		categories: categories,
		profile:    profile,
		settings:   settings,
		contacts:   contacts,
		dashboard:  dashboard,
	}
}

// HandleListProjects returns all projects.
// GET /api/admin/projects
func (h *AdminHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		slog.Error("list projects", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	dtos := make([]ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = toProjectDTO(&projects[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": dtos})
}

// HandleCreateProject creates a project.
// POST /api/admin/projects
func (h *AdminHandler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	project, err := h.projects.Create(r.Context(), req.toDomain())
	if err != nil {
		h.writeProjectError(w, err, "create project")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"project": toProjectDTO(project)})
}

// HandleGetProject returns one project.
// GET /api/admin/projects/{id}
func (h *AdminHandler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	project, err := h.projects.GetByID(r.Context(), id)
	if err != nil {
		h.writeProjectError(w, err, "get project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"project": toProjectDTO(project)})
}

// HandleUpdateProject updates a project.
// PUT /api/admin/projects/{id}
func (h *AdminHandler) HandleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ProjectDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	project := req.toDomain()
	project.ID = id

	updated, err := h.projects.Update(r.Context(), project)
	if err != nil {
		h.writeProjectError(w, err, "update project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"project": toProjectDTO(updated)})
}

// HandleDeleteProject deletes a project and its stored images.
// DELETE /api/admin/projects/{id}
func (h *AdminHandler) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.projects.Delete(r.Context(), id); err != nil {
		h.writeProjectError(w, err, "delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListCategories returns all categories.
// GET /api/admin/categories
func (h *AdminHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		slog.Error("list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	dtos := make([]CategoryDTO, len(categories))
	for i := range categories {
		dtos[i] = toCategoryDTO(&categories[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": dtos})
}

// HandleCreateCategory creates a category.
// POST /api/admin/categories
func (h *AdminHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	category, err := h.categories.Create(r.Context(), &domain.Category{
		Name: req.Name, Slug: req.Slug, SortOrder: req.SortOrder,
	})
	if err != nil {
		h.writeCategoryError(w, err, "create category")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"category": toCategoryDTO(category)})
}

// HandleUpdateCategory updates a category.
// PUT /api/admin/categories/{id}
func (h *AdminHandler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req CategoryDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	category, err := h.categories.Update(r.Context(), &domain.Category{
		ID: id, Name: req.Name, Slug: req.Slug, SortOrder: req.SortOrder,
	})
	if err != nil {
		h.writeCategoryError(w, err, "update category")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": toCategoryDTO(category)})
}

// HandleDeleteCategory deletes a category; its projects are detached.
// DELETE /api/admin/categories/{id}
func (h *AdminHandler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		h.writeCategoryError(w, err, "delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetProfile returns the site profile.
// GET /api/admin/profile
func (h *AdminHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profile.Get(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"profile": nil})
			return
		}
		slog.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": toProfileDTO(profile)})
}

// HandleSaveProfile saves the site profile.
// PUT /api/admin/profile
func (h *AdminHandler) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	profile, err := h.profile.Save(r.Context(), req.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("save profile", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": toProfileDTO(profile)})
}

// HandleGetSettings returns all site settings.
// GET /api/admin/settings
func (h *AdminHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.GetAll(r.Context())
	if err != nil {
		slog.Error("get settings", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// HandleSaveSettings writes site settings.
// PUT /api/admin/settings
func (h *AdminHandler) HandleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Settings map[string]string `json:"settings"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.settings.SetAll(r.Context(), req.Settings); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("save settings", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListContacts returns stored contact messages, newest first.
// GET /api/admin/contacts?limit=&offset=
func (h *AdminHandler) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	messages, err := h.contacts.List(r.Context(), limit, offset)
	if err != nil {
		slog.Error("list contact messages", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	dtos := make([]ContactMessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = toContactMessageDTO(m)
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": dtos})
}

// HandleDashboard returns the dashboard statistics.
// GET /api/admin/dashboard
func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		slog.Error("dashboard stats", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"projects":        stats.Projects,
		"categories":      stats.Categories,
		"contactMessages": stats.ContactMessages,
		"storedImages":    stats.StoredImages,
	})
}

func (h *AdminHandler) writeProjectError(w http.ResponseWriter, err error, verb string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Project not found.")
	case errors.Is(err, domain.ErrDuplicateSlug):
		writeError(w, http.StatusConflict, "A project with that slug already exists.")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error(verb, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

func (h *AdminHandler) writeCategoryError(w http.ResponseWriter, err error, verb string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Category not found.")
	case errors.Is(err, domain.ErrDuplicateSlug):
		writeError(w, http.StatusConflict, "A category with that slug already exists.")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error(verb, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id.")
		return 0, false
	}
	return id, true
}
