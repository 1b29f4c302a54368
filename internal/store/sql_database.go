// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/migrations"
)

const (
	dialectPostgres = "pgx"
	dialectSQLite   = "sqlite3"

	maxAttempts  = 3
	retryBackoff = 50 * time.Millisecond
)

// DB is an open database connection together with the dialect specific
// pieces the SQL blob store needs.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect string, classificator ErrorClassificator, log *logger.Logger) *DB {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if dialect == dialectPostgres {
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            builder,
		errorClassificator: classificator,
		logger:             log,
	}
}

// Migrate applies the embedded schema migrations for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// withRetry runs fn until it succeeds, fails with an error the classificator
// deems non-retryable, or runs out of attempts. Waits between attempts grow
// exponentially from retryBackoff.
func (db *DB) withRetry(ctx context.Context, op string, fn func() error) error {
	backoff := retry.WithMaxRetries(maxAttempts-1, retry.NewExponential(retryBackoff))

	attempt := 0
	return retry.Do(ctx, backoff, func(context.Context) error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		if attempt < maxAttempts {
			db.logger.Warn().Err(err).Str("func", op).Int("attempt", attempt).Msg("retrying database operation")
		}
		return retry.RetryableError(err)
	})
}
