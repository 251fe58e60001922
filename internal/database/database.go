// Package database opens the GORM connection and applies the schema.
package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"classifieds/internal/config"
	"classifieds/internal/middleware"
	"classifieds/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Driver names returned by ParseURL.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ParseURL splits DATABASE_URL into a driver name and the DSN that driver expects.
// Accepted forms: postgres://..., postgresql://..., sqlite://path, sqlite::memory:.
func ParseURL(raw string) (driver, dsn string, err error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return DriverPostgres, raw, nil
	case raw == "sqlite::memory:", raw == "sqlite://:memory:":
		return DriverSQLite, ":memory:", nil
	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		if path == "" {
			return "", "", errors.New("sqlite URL is missing a file path")
		}
		return DriverSQLite, path, nil
	case raw == "":
		return "", "", errors.New("database URL is empty")
	default:
		return "", "", fmt.Errorf("unsupported database URL scheme in %q", redact(raw))
	}
}

// redact strips credentials so the URL can appear in errors and logs.
func redact(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***@" + rest[at+1:]
	}
	return scheme + "://" + rest
}

func dialector(driver, dsn string) gorm.Dialector {
	if driver == DriverSQLite {
		return sqlite.Open(dsn)
	}
	return postgres.Open(dsn)
}

// Connect opens the database named by cfg.DatabaseURL and brings the schema up to date.
// Production Postgres deployments use the embedded goose migrations; everything
// else uses AutoMigrate.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	driver, dsn, err := ParseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	if dsn == ":memory:" {
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.DBMaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		}
		if cfg.DBMaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		}
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	middleware.Logger.Info("Database connected successfully", "driver", driver)

	if driver == DriverPostgres && cfg.IsProduction() {
		if err := RunMigrations(sqlDB); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	} else if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	middleware.Logger.Info("Database migration completed")

	return db, nil
}

// Open returns a GORM handle with the slog-backed logger and error translation enabled.
func Open(driver, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(driver, dsn), &gorm.Config{
		Logger:         NewGormLogger(middleware.Logger, 200*time.Millisecond),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the tables for every persisted model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Advertisement{})
}

// IsUniqueViolation reports whether err came from a unique constraint, across
// the translated GORM error, raw Postgres SQLSTATE 23505 and SQLite's message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
