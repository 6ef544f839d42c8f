package handler

import (
	"errors"
	"log/slog"
	"net/http"

	datastar "github.com/starfederation/datastar-go/datastar"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/presence"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/service"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/view"
)

// SiteHandler renders the public showcase pages.
type SiteHandler struct {
	projects   *service.ProjectService
	categories *service.CategoryService
	profile    *service.ProfileService
	settings   *service.SettingsService
	contacts   *service.ContactService
	markdown   *service.MarkdownRenderer
	presence   *presence.Client
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(
	projects *service.ProjectService,
	categories *service.CategoryService,
	profile *service.ProfileService,
	settings *service.SettingsService,
	contacts *service.ContactService,
	markdown *service.MarkdownRenderer,
	presenceClient *presence.Client,
) *SiteHandler {
	return &SiteHandler{
		projects:   projects,
		categories: categories,
		profile:    profile,
		settings:   settings,
		contacts:   contacts,
		markdown:   markdown,
		presence:   presenceClient,
	}
}

// HandleHome renders the home page with the full project showcase.
// GET /
func (h *SiteHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.profile.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("get profile for home", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	categories, err := h.categories.List(ctx)
	if err != nil {
		slog.Error("list categories for home", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	activeSlug := r.URL.Query().Get("category")
	projects, err := h.projectsForCategory(r, activeSlug)
	if err != nil {
		slog.Error("list projects for home", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	siteTitle, _ := h.settings.Get(ctx, domain.SettingSiteTitle)
	description, _ := h.settings.Get(ctx, domain.SettingSiteDescription)

	page := view.HomePage(profile, projects, categories, activeSlug, h.presence.Status(ctx))
	view.Layout(siteTitle, description, page).Render(ctx, w)
}

// HandleProject renders one project detail page.
// GET /projects/{slug}
func (h *SiteHandler) HandleProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, err := h.projects.GetBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			view.Layout("", "", view.ErrorPage(http.StatusNotFound, "That project does not exist.")).Render(ctx, w)
			return
		}
		slog.Error("get project page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	bodyHTML, err := h.markdown.Render(project.Body)
	if err != nil {
		slog.Error("render project body", "project", project.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	siteTitle, _ := h.settings.Get(ctx, domain.SettingSiteTitle)
	view.Layout(project.Title+" | "+siteTitle, project.Summary, view.ProjectPage(project, bodyHTML)).Render(ctx, w)
}

// HandleProjectFragment swaps the project grid for a category via SSE.
// GET /fragments/projects?category={slug}
func (h *SiteHandler) HandleProjectFragment(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("category")
	projects, err := h.projectsForCategory(r, slug)
	if err != nil {
		slog.Error("list projects for fragment", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(
		view.ProjectGrid(projects),
		datastar.WithSelectorID("project-grid"),
	)
}

// HandlePresenceFragment refreshes the presence badge via SSE.
// GET /fragments/presence
func (h *SiteHandler) HandlePresenceFragment(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(
		view.PresenceBadge(h.presence.Status(r.Context())),
		datastar.WithSelectorID("presence-badge"),
	)
}

// HandleContact accepts a contact form submission and swaps the form for a
// confirmation via SSE.
// POST /contact
func (h *SiteHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	_, err := h.contacts.Submit(r.Context(),
		r.PostFormValue("name"), r.PostFormValue("email"), r.PostFormValue("message"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		slog.Error("submit contact message", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(
		view.ContactThanks(),
		datastar.WithSelectorID("contact"),
	)
}

// HandleAdminEntry serves the login (or first-run setup) page.
// GET /admin
func (h *SiteHandler) HandleAdminEntry(auth *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		needsSetup, err := auth.NeedsSetup(r.Context())
		if err != nil {
			slog.Error("check setup state", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		view.Layout("Admin", "", view.LoginPage(needsSetup)).Render(r.Context(), w)
	}
}

func (h *SiteHandler) projectsForCategory(r *http.Request, slug string) ([]domain.Project, error) {
	ctx := r.Context()
	if slug == "" {
		return h.projects.List(ctx)
	}
	category, err := h.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.projects.List(ctx)
		}
		return nil, err
	}
	return h.projects.ListByCategory(ctx, category.ID)
}
