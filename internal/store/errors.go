// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by the stores. Callers should use [errors.Is] to
// match against these values.
var (
	// ErrBatchNotFound is returned when a batch code, its header or one of
	// its batches is unknown to the batch store.
	ErrBatchNotFound = errors.New("batch not found")

	// ErrBlobNotFound is returned by a BlobStore when a key does not exist.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrNamespaceNotFound is returned when a blob is written into a
	// namespace that was never created.
	ErrNamespaceNotFound = errors.New("namespace not found")

	// ErrInvalidName is returned for namespace or key names that would
	// escape the store (empty, path separators, dot names).
	ErrInvalidName = errors.New("invalid namespace or key name")

	// ErrDecodingBatch is returned when a stored batch or header cannot be
	// decoded.
	ErrDecodingBatch = errors.New("error decoding stored batch")

	// ErrEncodingBatch is returned when a batch or header cannot be encoded.
	ErrEncodingBatch = errors.New("error encoding batch")

	// ErrUnknownBackend is returned when the configured storage backend is
	// not supported.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrInvalidKnowledge is returned by the entity store when client
	// knowledge is not a watermark it issued.
	ErrInvalidKnowledge = errors.New("invalid client knowledge")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the SQL blob store when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
