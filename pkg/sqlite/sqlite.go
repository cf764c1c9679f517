package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/jakechorley/site-dispatch/pkg/db"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB is a db.RunStore backed by a local SQLite file
type DB struct {
	conn   *sql.DB
	logger *zap.Logger
}

var _ db.Database = (*DB)(nil)

// NewDB opens (creating if needed) the SQLite database at path and applies pending migrations
func NewDB(ctx context.Context, path string, logger *zap.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Pragmas are per connection
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"} {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set %q: %w", pragma, err)
		}
	}

	d := &DB{conn: conn, logger: logger}
	if err := d.RunMigrations(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Debug("Opened sqlite database", zap.String("path", path))

	return d, nil
}

// Close closes the database
func (d *DB) Close() {
	if err := d.conn.Close(); err != nil {
		d.logger.Warn("Failed to close sqlite database", zap.Error(err))
	}
}

// RunMigrations applies embedded migrations not yet recorded in schema_migrations
func (d *DB) RunMigrations(ctx context.Context) error {
	_, err := d.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	rows, err := d.conn.QueryContext(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to query applied migrations: %w", err)
	}
	applied := make(map[string]bool)
	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration filename: %w", err)
		}
		applied[filename] = true
	}
	rows.Close()

	pending, err := db.PendingMigrations(migrationsFS, "migrations", applied)
	if err != nil {
		return err
	}

	for _, m := range pending {
		tx, err := d.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for %s: %w", m.Filename, err)
		}

		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", m.Filename, err)
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (filename) VALUES (?)`, m.Filename); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", m.Filename, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", m.Filename, err)
		}

		d.logger.Debug("Applied migration", zap.String("filename", m.Filename))
	}

	return nil
}
