package migration

import (
	"context"

	"gorm.io/gorm"

	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
)

// Store persists migration state and runs migration scripts.
type Store interface {
	// EnsureTable creates the tracking table if it does not exist.
	EnsureTable(ctx context.Context) error
	// Applied returns the applied versions ordered by version.
	Applied(ctx context.Context) ([]string, error)
	// Apply runs the up script and records the version in one transaction.
	Apply(ctx context.Context, version, sql string) error
	// Rollback runs the down script and removes the version record in one
	// transaction.
	Rollback(ctx context.Context, version, sql string) error
}

type gormStore struct {
	db *database.DB
}

// NewStore creates the database-backed migration store.
func NewStore(db *database.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) EnsureTable(ctx context.Context) error {
	return database.Exec(ctx, s.db, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			version VARCHAR(255) UNIQUE NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			description TEXT
		)`)
}

func (s *gormStore) Applied(ctx context.Context) ([]string, error) {
	return database.FetchAll[string](ctx, s.db,
		`SELECT version FROM schema_migrations ORDER BY version`)
}

func (s *gormStore) Apply(ctx context.Context, version, sql string) error {
	return s.db.Gorm().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(sql).Error; err != nil {
			return err
		}
		return tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, version).Error
	})
}

func (s *gormStore) Rollback(ctx context.Context, version, sql string) error {
	return s.db.Gorm().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(sql).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM schema_migrations WHERE version = ?`, version).Error
	})
}
