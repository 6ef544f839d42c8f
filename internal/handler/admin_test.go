package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func adminRequest(t *testing.T, cookie *http.Cookie, method, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	return req
}

func TestAdminProjects_CRUD(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	// Create.
	w := app.do(t, adminRequest(t, cookie, http.MethodPost, "/api/admin/projects",
		`{"title":"My App","slug":"my-app","summary":"demo","technologies":["Go"]}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		Project struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"project"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Project.ID == 0 {
		t.Fatal("expected project id")
	}
	id := created.Project.ID

	// Duplicate slug conflicts.
	w = app.do(t, adminRequest(t, cookie, http.MethodPost, "/api/admin/projects",
		`{"title":"Other","slug":"my-app"}`))
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate slug: expected 409, got %d", w.Code)
	}

	// List.
	w = app.do(t, adminRequest(t, cookie, http.MethodGet, "/api/admin/projects", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var listed struct {
		Projects []json.RawMessage `json:"projects"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(listed.Projects))
	}

	// Update.
	w = app.do(t, adminRequest(t, cookie, http.MethodPut, "/api/admin/projects/"+itoa(id),
		`{"title":"Renamed","slug":"my-app","featured":true}`))
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Get reflects the update.
	w = app.do(t, adminRequest(t, cookie, http.MethodGet, "/api/admin/projects/"+itoa(id), ""))
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"Renamed"`) {
		t.Fatalf("update not reflected: %s", w.Body.String())
	}

	// Delete.
	w = app.do(t, adminRequest(t, cookie, http.MethodDelete, "/api/admin/projects/"+itoa(id), ""))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	w = app.do(t, adminRequest(t, cookie, http.MethodGet, "/api/admin/projects/"+itoa(id), ""))
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestAdminProjects_ValidationError(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	w := app.do(t, adminRequest(t, cookie, http.MethodPost, "/api/admin/projects",
		`{"title":"","slug":"Bad Slug"}`))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminCategories_CRUD(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	w := app.do(t, adminRequest(t, cookie, http.MethodPost, "/api/admin/categories",
		`{"name":"Web","slug":"web","sortOrder":1}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		Category struct {
			ID int64 `json:"id"`
		} `json:"category"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = app.do(t, adminRequest(t, cookie, http.MethodPut,
		"/api/admin/categories/"+itoa(created.Category.ID),
		`{"name":"Web Apps","slug":"web","sortOrder":2}`))
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = app.do(t, adminRequest(t, cookie, http.MethodDelete,
		"/api/admin/categories/"+itoa(created.Category.ID), ""))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
}

func TestAdminProfile_SaveAndGet(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	// Empty until saved; a null profile is not an error.
	w := app.do(t, adminRequest(t, cookie, http.MethodGet, "/api/admin/profile", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("get empty: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"profile":null`) {
		t.Fatalf("expected null profile, got %s", w.Body.String())
	}

	w = app.do(t, adminRequest(t, cookie, http.MethodPut, "/api/admin/profile",
		`{"name":"Alex","title":"Engineer","bio":"Hi","skills":["Go"]}`))
	if w.Code != http.StatusOK {
		t.Fatalf("save: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = app.do(t, adminRequest(t, cookie, http.MethodGet, "/api/admin/profile", ""))
	if !strings.Contains(w.Body.String(), `"Alex"`) {
		t.Fatalf("profile not persisted: %s", w.Body.String())
	}
}

func TestAdminSettings_SaveAndGet(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	w := app.do(t, adminRequest(t, cookie, http.MethodPut, "/api/admin/settings",
		`{"settings":{"site_title":"My Portfolio"}}`))
	if w.Code != http.StatusNoContent {
		t.Fatalf("save: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	w = app.do(t, adminRequest(t, cookie, http.MethodGet, "/api/admin/settings", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "My Portfolio") {
		t.Fatalf("setting not persisted: %s", w.Body.String())
	}
}

func TestAdminDashboard(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	w := app.do(t, adminRequest(t, cookie, http.MethodPost, "/api/admin/projects",
		`{"title":"P","slug":"p"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("seed project: %d", w.Code)
	}

	w = app.do(t, adminRequest(t, cookie, http.MethodGet, "/api/admin/dashboard", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var stats struct {
		Projects int `json:"projects"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Projects != 1 {
		t.Fatalf("expected 1 project in stats, got %d", stats.Projects)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
