package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CAFxX/httpcompression"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/config"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/handler"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/mail"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/media"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/metrics"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/presence"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/repository/sqlite"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/service"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	var store domain.ObjectStore
	var localStore *storage.LocalStore
	switch cfg.StorageBackend {
	case "s3":
		store, err = storage.NewS3Store(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			slog.Error("failed to connect to object storage", "error", err)
			os.Exit(1)
		}
		slog.Info("using s3 object storage", "endpoint", cfg.S3Endpoint)
	default:
		localStore, err = storage.NewLocalStore(cfg.MediaDir, cfg.BaseURL)
		if err != nil {
			slog.Error("failed to initialize local object storage", "error", err)
			os.Exit(1)
		}
		store = localStore
		slog.Info("using local object storage", "dir", cfg.MediaDir)
	}

	users := sqlite.NewUserRepository(db)
	projects := sqlite.NewProjectRepository(db)
	categories := sqlite.NewCategoryRepository(db)
	profiles := sqlite.NewProfileRepository(db)
	settings := sqlite.NewSettingsRepository(db)
	contacts := sqlite.NewContactRepository(db)

	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	}

	m := metrics.New()

	authService := service.NewAuthService(users, cfg.JWTSecret, cfg.BcryptCost)
	imageService := service.NewImageService(store, media.NewTranscoder(), m)
	projectService := service.NewProjectService(projects, categories, imageService)
	categoryService := service.NewCategoryService(categories, projects)
	profileService := service.NewProfileService(profiles, imageService)
	settingsService := service.NewSettingsService(settings)
	contactService := service.NewContactService(contacts, mailer, cfg.MailTo)
	dashboardService := service.NewDashboardService(projects, categories, contacts)
	markdown := service.NewMarkdownRenderer()

	var presenceClient *presence.Client
	if cfg.PresenceURL != "" {
		presenceClient = presence.NewClient(cfg.PresenceURL)
	}

	routes := handler.Routes{
		Auth: authService,
		Site: handler.NewSiteHandler(
			projectService, categoryService, profileService,
			settingsService, contactService, markdown, presenceClient,
		),
		Account: handler.NewAuthHandler(authService, cfg.CookieSecure),
		Admin: handler.NewAdminHandler(
			projectService, categoryService, profileService,
			settingsService, contactService, dashboardService,
		),
		Uploads: handler.NewUploadHandler(imageService, cfg.ImageQuality, cfg.ImageSpeed),
		Metrics: m.Handler(),
	}
	if localStore != nil {
		routes.Media = handler.NewMediaHandler(localStore)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, routes)

	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		slog.Error("failed to build compression adapter", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(compress(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
