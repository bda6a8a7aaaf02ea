package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"movielist-backend/pkg/logger"
)

// MovieTable is the single table the application owns.
const MovieTable = "movie"

// schemaStatements create the movie table when it is missing. They are
// idempotent and run on every startup.
func schemaStatements() []string {
	table := pq.QuoteIdentifier(MovieTable)
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id          SERIAL PRIMARY KEY,
	title       VARCHAR(255) NOT NULL UNIQUE,
	year        INTEGER NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	rating      DOUBLE PRECISION NOT NULL DEFAULT 0,
	ranking     INTEGER NOT NULL DEFAULT 0,
	review      TEXT NOT NULL DEFAULT '',
	img_url     VARCHAR(255),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (rating, id)`,
			pq.QuoteIdentifier("idx_movie_rating_id"), table),
	}
}

// Migrate opens a short-lived database/sql connection through lib/pq and
// applies the schema.
func Migrate(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping migration connection: %w", err)
	}

	for _, stmt := range schemaStatements() {
		if _, err := sqlDB.ExecContext(ctx, stmt); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) {
				return fmt.Errorf("apply schema (%s): %w", pqErr.Code.Name(), err)
			}
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	logger.Info("database schema is up to date", map[string]interface{}{
		"table": MovieTable,
	})
	return nil
}
