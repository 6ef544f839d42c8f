package handler_test

import (
	"context"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/handler"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/media"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/repository/sqlite"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/service"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/storage"
)

const testJWTSecret = "handler-test-secret-key-0123456789"

// testApp wires a complete mux over a temp database and local store.
type testApp struct {
	mux   *http.ServeMux
	auth  *service.AuthService
	store *storage.LocalStore
	db    *sqlite.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	users := sqlite.NewUserRepository(db)
	projects := sqlite.NewProjectRepository(db)
	categories := sqlite.NewCategoryRepository(db)
	profiles := sqlite.NewProfileRepository(db)
	settings := sqlite.NewSettingsRepository(db)
	contacts := sqlite.NewContactRepository(db)

	// A stub encoder keeps handler tests off the real AVIF pipeline.
	transcoder := media.NewTranscoderWithEncoder(func(w io.Writer, img image.Image, quality, speed int) error {
		_, err := w.Write([]byte("avif-stub"))
		return err
	})

	auth := service.NewAuthService(users, testJWTSecret, 4)
	images := service.NewImageService(store, transcoder, nil)
	projectSvc := service.NewProjectService(projects, categories, images)
	categorySvc := service.NewCategoryService(categories, projects)
	profileSvc := service.NewProfileService(profiles, images)
	settingsSvc := service.NewSettingsService(settings)
	contactSvc := service.NewContactService(contacts, nil, "")
	dashboardSvc := service.NewDashboardService(projects, categories, contacts)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Routes{
		Auth: auth,
		Site: handler.NewSiteHandler(
			projectSvc, categorySvc, profileSvc,
			settingsSvc, contactSvc, service.NewMarkdownRenderer(), nil,
		),
		Account: handler.NewAuthHandler(auth, false),
		Admin: handler.NewAdminHandler(
			projectSvc, categorySvc, profileSvc,
			settingsSvc, contactSvc, dashboardSvc,
		),
		Uploads: handler.NewUploadHandler(images, 0, 0),
		Media:   handler.NewMediaHandler(store),
	})

	return &testApp{mux: mux, auth: auth, store: store, db: db}
}

// setupAdmin creates the admin account and returns a logged-in cookie.
func (app *testApp) setupAdmin(t *testing.T) *http.Cookie {
	t.Helper()
	ctx := context.Background()

	if _, err := app.auth.Setup(ctx, "admin@example.com", "Admin", "password123"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	token, err := app.auth.Login(ctx, "admin@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return &http.Cookie{Name: "auth_token", Value: token}
}

func (app *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	app.mux.ServeHTTP(w, req)
	return w
}
