// Package sqlite implements the domain repositories on modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/domain"
	"github.com/exaNishimura/Portfolio-Management-System-sub000/internal/repository/sqlite/migrations"
)

// DB wraps the SQLite connection and implements domain.Database.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies all pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

var _ domain.Database = (*DB)(nil)

// NewUserRepository returns the SQLite-backed user repository.
func NewUserRepository(db *DB) domain.UserRepository { return &userRepo{db: db.SqlDB} }

// NewProjectRepository returns the SQLite-backed project repository.
func NewProjectRepository(db *DB) domain.ProjectRepository { return &projectRepo{db: db.SqlDB} }

// NewCategoryRepository returns the SQLite-backed category repository.
func NewCategoryRepository(db *DB) domain.CategoryRepository { return &categoryRepo{db: db.SqlDB} }

// NewProfileRepository returns the SQLite-backed profile repository.
func NewProfileRepository(db *DB) domain.ProfileRepository { return &profileRepo{db: db.SqlDB} }

// NewSettingsRepository returns the SQLite-backed settings repository.
func NewSettingsRepository(db *DB) domain.SettingsRepository { return &settingsRepo{db: db.SqlDB} }

// NewContactRepository returns the SQLite-backed contact repository.
func NewContactRepository(db *DB) domain.ContactRepository { return &contactRepo{db: db.SqlDB} }
