// Command migrate runs the embedded SQL migrations against DATABASE_URL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"classifieds/internal/config"
	"classifieds/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|down|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	driver, dsn, err := database.ParseURL(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if driver != database.DriverPostgres {
		return fmt.Errorf("sql migrations target postgres; %s databases use automigration", driver)
	}

	db, err := database.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	ctx := context.Background()
	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.MigrateUp(ctx, sqlDB); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		log.Println("sql migrations applied")
	case "down":
		if err := database.MigrateDown(ctx, sqlDB); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		log.Println("rolled back latest migration")
	case "status":
		if err := database.MigrationStatus(ctx, sqlDB); err != nil {
			return fmt.Errorf("migration status failed: %w", err)
		}
	default:
		return usage()
	}

	return nil
}
