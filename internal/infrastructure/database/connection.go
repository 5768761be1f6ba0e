// Package database provides the shared connection pool handle and the raw
// query helpers every repository is built on.
package database

import (
	"fmt"
	"time"

	"github.com/Sadisms/stack-radar/internal/config"
	"github.com/Sadisms/stack-radar/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is an explicitly constructed pool handle, passed to every repository.
type DB struct {
	gorm *gorm.DB
}

// New opens the database connection and configures the pool.
func New(cfg *config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	gormLog := logger.NewGormLogger(log, gormlogger.Warn, 200*time.Millisecond, true)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxPoolSize)
	sqlDB.SetMaxIdleConns(cfg.MinPoolSize)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
		zap.Int("max_pool_size", cfg.MaxPoolSize),
	)

	return &DB{gorm: db}, nil
}

// Close closes the underlying connection pool.
func (d *DB) Close(log *zap.Logger) error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	log.Info("database connection closed")
	return nil
}

// Gorm exposes the underlying GORM handle for components that manage their
// own transactions, such as the migration manager.
func (d *DB) Gorm() *gorm.DB {
	return d.session()
}

// session returns the GORM handle. Using the pool before initialization is a
// programmer error and fails loudly rather than issuing a nil query.
func (d *DB) session() *gorm.DB {
	if d == nil || d.gorm == nil {
		panic("database: pool used before initialization")
	}
	return d.gorm
}
