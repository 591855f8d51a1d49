package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// RunMigrations applies every *.up.sql file under dir in lexical order,
// recording applied versions in schema_migrations so reruns are no-ops.
func RunMigrations(ctx context.Context, db *sql.DB, dir string) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var upMigrations []string
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".up.sql") {
			upMigrations = append(upMigrations, file.Name())
		}
	}
	sort.Strings(upMigrations)

	existsQuery := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`

	for _, migration := range upMigrations {
		var exists bool

		err := db.QueryRowContext(
			ctx,
			existsQuery,
			migration,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", migration, err)
		}

		if exists {
			continue
		}

		sqlBytes, err := os.ReadFile(dir + "/" + migration)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", migration, err)
		}

		if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration, err)
		}

		_, err = db.ExecContext(
			ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1)`,
			migration,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration, err)
		}

		log.Println("applied migration:", migration)
	}

	return nil
}
