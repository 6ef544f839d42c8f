package handler

import (
	"net/http"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/service"
)

// Routes bundles everything RegisterRoutes needs to wire the mux.
type Routes struct {
	Auth    *service.AuthService
	Site    *SiteHandler
	Account *AuthHandler
	Admin   *AdminHandler
	Uploads *UploadHandler
	Media   *MediaHandler // nil when objects are served by an external store
	Metrics http.Handler  // nil disables the /metrics endpoint
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, r Routes) {
	mux.HandleFunc("GET /healthz", HandleHealthz)
	if r.Metrics != nil {
		mux.Handle("GET /metrics", r.Metrics)
	}

	// Public site.
	mux.HandleFunc("GET /{$}", r.Site.HandleHome)
	mux.HandleFunc("GET /projects/{slug}", r.Site.HandleProject)
	mux.HandleFunc("GET /fragments/projects", r.Site.HandleProjectFragment)
	mux.HandleFunc("GET /fragments/presence", r.Site.HandlePresenceFragment)
	mux.HandleFunc("POST /contact", r.Site.HandleContact)
	mux.HandleFunc("GET /admin", r.Site.HandleAdminEntry(r.Auth))

	if r.Media != nil {
		mux.HandleFunc("GET /media/{bucket}/{path...}", r.Media.HandleGet)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Authentication.
	mux.HandleFunc("POST /api/auth/setup", r.Account.HandleSetup)
	mux.HandleFunc("POST /api/auth/login", r.Account.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", r.Account.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(r.Auth, http.HandlerFunc(r.Account.HandleMe)))

	// Admin API. Every route requires a valid session.
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(r.Auth, h)
	}
	mux.Handle("GET /api/admin/dashboard", admin(r.Admin.HandleDashboard))

	mux.Handle("GET /api/admin/projects", admin(r.Admin.HandleListProjects))
	mux.Handle("POST /api/admin/projects", admin(r.Admin.HandleCreateProject))
	mux.Handle("GET /api/admin/projects/{id}", admin(r.Admin.HandleGetProject))
	mux.Handle("PUT /api/admin/projects/{id}", admin(r.Admin.HandleUpdateProject))
	mux.Handle("DELETE /api/admin/projects/{id}", admin(r.Admin.HandleDeleteProject))

	mux.Handle("GET /api/admin/categories", admin(r.Admin.HandleListCategories))
	mux.Handle("POST /api/admin/categories", admin(r.Admin.HandleCreateCategory))
	mux.Handle("PUT /api/admin/categories/{id}", admin(r.Admin.HandleUpdateCategory))
	mux.Handle("DELETE /api/admin/categories/{id}", admin(r.Admin.HandleDeleteCategory))

	mux.Handle("GET /api/admin/profile", admin(r.Admin.HandleGetProfile))
	mux.Handle("PUT /api/admin/profile", admin(r.Admin.HandleSaveProfile))

	mux.Handle("GET /api/admin/settings", admin(r.Admin.HandleGetSettings))
	mux.Handle("PUT /api/admin/settings", admin(r.Admin.HandleSaveSettings))

	mux.Handle("GET /api/admin/contacts", admin(r.Admin.HandleListContacts))

	mux.Handle("POST /api/admin/images/{kind}", admin(r.Uploads.HandleUpload))
	mux.Handle("DELETE /api/admin/images", admin(r.Uploads.HandleDelete))
}
