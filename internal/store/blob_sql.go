// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	namespacesTable = "batch_namespaces"
	blobsTable      = "batch_blobs"
)

// sqlBlobStore keeps namespaces and blobs in two tables of a relational
// database.
type sqlBlobStore struct {
	db  *DB
	now func() time.Time
}

// NewSQLBlobStore returns a BlobStore backed by db. The schema must have been
// migrated with [DB.Migrate].
func NewSQLBlobStore(db *DB) BlobStore {
	return &sqlBlobStore{db: db, now: time.Now}
}

func (s *sqlBlobStore) EnsureNamespace(ctx context.Context, namespace string) error {
	query, args, err := s.db.builder.
		Insert(namespacesTable).
		Columns("namespace", "created_at").
		Values(namespace, s.now().UTC().UnixNano()).
		Suffix("ON CONFLICT (namespace) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.exec(ctx, "sqlBlobStore.EnsureNamespace", query, args)
}

func (s *sqlBlobStore) NamespaceExists(ctx context.Context, namespace string) (bool, error) {
	query, args, err := s.db.builder.
		Select("1").
		From(namespacesTable).
		Where(sq.Eq{"namespace": namespace}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found int
	err = s.db.withRetry(ctx, "sqlBlobStore.NamespaceExists", func() error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&found)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		s.db.logger.Err(err).Str("func", "sqlBlobStore.NamespaceExists").Str("namespace", namespace).Msg("error executing query")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return true, nil
}

func (s *sqlBlobStore) Put(ctx context.Context, namespace, key string, data []byte) error {
	exists, err := s.NamespaceExists(ctx, namespace)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNamespaceNotFound, namespace)
	}

	query, args, err := s.db.builder.
		Insert(blobsTable).
		Columns("namespace", "blob_key", "data").
		Values(namespace, key, data).
		Suffix("ON CONFLICT (namespace, blob_key) DO UPDATE SET data = excluded.data").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.exec(ctx, "sqlBlobStore.Put", query, args)
}

func (s *sqlBlobStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	query, args, err := s.db.builder.
		Select("data").
		From(blobsTable).
		Where(sq.Eq{"namespace": namespace}).
		Where(sq.Eq{"blob_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var data []byte
	err = s.db.withRetry(ctx, "sqlBlobStore.Get", func() error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrBlobNotFound, namespace, key)
	}
	if err != nil {
		s.db.logger.Err(err).Str("func", "sqlBlobStore.Get").Str("namespace", namespace).Str("key", key).Msg("error scanning row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return data, nil
}

func (s *sqlBlobStore) Delete(ctx context.Context, namespace, key string) error {
	query, args, err := s.db.builder.
		Delete(blobsTable).
		Where(sq.Eq{"namespace": namespace}).
		Where(sq.Eq{"blob_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := s.execAffected(ctx, "sqlBlobStore.Delete", query, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrBlobNotFound, namespace, key)
	}
	return nil
}

func (s *sqlBlobStore) RemoveNamespaceIfEmpty(ctx context.Context, namespace string) (bool, error) {
	query, args, err := s.db.builder.
		Delete(namespacesTable).
		Where(sq.Eq{"namespace": namespace}).
		Where("NOT EXISTS (SELECT 1 FROM "+blobsTable+" WHERE "+blobsTable+".namespace = ?)", namespace).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := s.execAffected(ctx, "sqlBlobStore.RemoveNamespaceIfEmpty", query, args)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *sqlBlobStore) ListNamespaces(ctx context.Context) ([]NamespaceInfo, error) {
	query, args, err := s.db.builder.
		Select("namespace", "created_at").
		From(namespacesTable).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.db.logger.Err(err).Str("func", "sqlBlobStore.ListNamespaces").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var namespaces []NamespaceInfo
	for rows.Next() {
		var (
			name      string
			createdAt int64
		)
		if err = rows.Scan(&name, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		namespaces = append(namespaces, NamespaceInfo{Name: name, CreatedAt: time.Unix(0, createdAt).UTC()})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return namespaces, nil
}

func (s *sqlBlobStore) RemoveNamespace(ctx context.Context, namespace string) error {
	deleteBlobs, blobArgs, err := s.db.builder.Delete(blobsTable).Where(sq.Eq{"namespace": namespace}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteNamespace, nsArgs, err := s.db.builder.Delete(namespacesTable).Where(sq.Eq{"namespace": namespace}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.db.logger.Err(err).Str("func", "sqlBlobStore.RemoveNamespace").Str("namespace", namespace).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteBlobs, blobArgs...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err = tx.ExecContext(ctx, deleteNamespace, nsArgs...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		s.db.logger.Err(err).Str("func", "sqlBlobStore.RemoveNamespace").Str("namespace", namespace).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (s *sqlBlobStore) exec(ctx context.Context, op, query string, args []any) error {
	_, err := s.execAffected(ctx, op, query, args)
	return err
}

func (s *sqlBlobStore) execAffected(ctx context.Context, op, query string, args []any) (int64, error) {
	var result sql.Result
	err := s.db.withRetry(ctx, op, func() error {
		var execErr error
		result, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		s.db.logger.Err(err).Str("func", op).Msg("failed to execute statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return affected, nil
}
