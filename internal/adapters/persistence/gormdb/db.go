// Package gormdb implements the example repository on a relational database
// through gorm. PostgreSQL and SQLite are supported.
package gormdb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/config"
)

// Open connects to the database selected by cfg.Vendor.
func Open(cfg *config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Vendor {
	case config.VendorPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.VendorSQLite:
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database vendor %q", cfg.Vendor)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger(logger, cfg.LogQueries),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Vendor, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}

	if cfg.Vendor == config.VendorSQLite {
		// Each SQLite connection to :memory: opens a distinct database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}

		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, nil
}

// Migrate creates or updates the tables used by the repositories.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ExampleModel{}); err != nil {
		return fmt.Errorf("migrating example table: %w", err)
	}

	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func newLogger(logger *slog.Logger, logQueries bool) gormlogger.Interface {
	if logger == nil {
		logger = slog.Default()
	}

	level := gormlogger.Warn
	if logQueries {
		level = gormlogger.Info
	}

	writer := slog.NewLogLogger(logger.With(slog.String("component", "gorm")).Handler(), slog.LevelDebug)

	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// HealthChecker reports database connectivity to the readiness probe.
type HealthChecker struct {
	db *gorm.DB
}

// NewHealthChecker creates a health checker for db.
func NewHealthChecker(db *gorm.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// Name implements ports.HealthChecker.
func (h *HealthChecker) Name() string {
	return "database"
}

// Check implements ports.HealthChecker.
func (h *HealthChecker) Check(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
