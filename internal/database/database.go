package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"villa_backend/internal/config"
	"villa_backend/pkg/utils"
)

// Connect opens the PostgreSQL pool, sizes it from cfg and applies the schema
// file when cfg.SchemaPath is set.
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database %s@%s:%s: %w", cfg.Name, cfg.Host, cfg.Port, err)
	}

	if cfg.MaxOpen > 0 {
		db.SetMaxOpenConns(cfg.MaxOpen)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	utils.LogInfo("Successfully connected to the database", map[string]interface{}{
		"host": cfg.Host,
		"name": cfg.Name,
	})

	if err := ApplySchema(ctx, db, cfg.SchemaPath); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ApplySchema reads and executes the schema script at schemaPath. The script
// is idempotent; an empty path skips it.
func ApplySchema(ctx context.Context, db *sqlx.DB, schemaPath string) error {
	if schemaPath == "" {
		utils.LogDebug("No schema path provided, skipping schema application")
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}

	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema applied successfully", map[string]interface{}{"path": schemaPath})
	return nil
}
