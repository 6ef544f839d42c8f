package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/service"
)

// AuthHandler handles admin authentication.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleSetup creates the one admin account on first run.
// POST /api/auth/setup
func (h *AuthHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		Password    string `json:"password"`
	}
	isForm := !decodeAsJSON(r)
	if !decodeCredentials(w, r, func() error {
		req.Email = r.PostFormValue("email")
		req.DisplayName = r.PostFormValue("displayName")
		req.Password = r.PostFormValue("password")
		return nil
	}, &req) {
		return
	}

	user, err := h.auth.Setup(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSetupComplete):
			writeError(w, http.StatusConflict, "Setup is already complete.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			slog.Error("setup admin account", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		}
		return
	}

	if isForm {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": toUserDTO(user)})
}

// HandleLogin verifies credentials and sets the auth cookie.
// POST /api/auth/login. Accepts JSON or a plain form post from the login page.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	isForm := !decodeAsJSON(r)
	if !decodeCredentials(w, r, func() error {
		req.Email = r.PostFormValue("email")
		req.Password = r.PostFormValue("password")
		return nil
	}, &req) {
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		slog.Error("login user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})

	if isForm {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	userID, _ := h.auth.ValidateToken(token)
	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		slog.Error("get user after login", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// HandleLogout clears the auth cookie.
// POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

func decodeAsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// decodeCredentials fills dst from a JSON body, or runs fromForm for form
// posts. Returns false after writing an error response.
func decodeCredentials(w http.ResponseWriter, r *http.Request, fromForm func() error, dst any) bool {
	if decodeAsJSON(r) {
		if err := readJSON(r, dst); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return false
		}
		return true
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form body.")
		return false
	}
	if err := fromForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form body.")
		return false
	}
	return true
}
