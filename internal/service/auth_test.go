package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/repository/sqlite"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-only"

func newTestDB(t *testing.T) *sqlite.DB {
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
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	auth := service.NewAuthService(sqlite.NewUserRepository(db), testJWTSecret, 4)
	return auth, db
}

func TestAuthService_Setup_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Setup(ctx, "admin@example.com", "Admin", "password123")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.Email != "admin@example.com" {
		t.Fatalf("expected email admin@example.com, got %s", user.Email)
	}
}

func TestAuthService_Setup_OnlyOnce(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Setup(ctx, "admin@example.com", "Admin", "password123"); err != nil {
		t.Fatalf("first Setup: %v", err)
	}

	_, err := auth.Setup(ctx, "second@example.com", "Second", "password123")
	if !errors.Is(err, domain.ErrSetupComplete) {
		t.Fatalf("expected ErrSetupComplete, got %v", err)
	}
}

func TestAuthService_Setup_Validation(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		email       string
		displayName string
		password    string
	}{
		{"empty email", "", "Admin", "password123"},
		{"empty display name", "admin@example.com", "", "password123"},
		{"empty password", "admin@example.com", "Admin", ""},
		{"short password", "admin@example.com", "Admin", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Setup(ctx, tt.email, tt.displayName, tt.password)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Setup(ctx, "admin@example.com", "Admin", "password123")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	token, err := auth.Login(ctx, "admin@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user ID %d, got %d", user.ID, userID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Setup(ctx, "admin@example.com", "Admin", "password123"); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	_, err := auth.Login(ctx, "admin@example.com", "wrong-password")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	auth, _ := newTestAuthService(t)

	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := auth.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Setup(ctx, "admin@example.com", "Admin", "password123"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	token, err := auth.Login(ctx, "admin@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	other := service.NewAuthService(sqlite.NewUserRepository(db), "a-completely-different-signing-secret", 4)
	if _, err := other.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized with wrong secret, got %v", err)
	}
}

func TestAuthService_NeedsSetup(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	needs, err := auth.NeedsSetup(ctx)
	if err != nil {
		t.Fatalf("NeedsSetup: %v", err)
	}
	if !needs {
		t.Fatal("fresh database must need setup")
	}

	if _, err := auth.Setup(ctx, "admin@example.com", "Admin", "password123"); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	needs, err = auth.NeedsSetup(ctx)
	if err != nil {
		t.Fatalf("NeedsSetup: %v", err)
	}
	if needs {
		t.Fatal("setup must be complete after the first account")
	}
}
