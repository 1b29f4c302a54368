// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-batch/models"
	"github.com/google/uuid"
)

// BatchStore persists the batches of a transfer under its batch code and
// serves them back one at a time.
type BatchStore interface {
	// SaveBatches persists every batch and then the header. The header is
	// written last so that a transfer is never visible half-written.
	SaveBatches(ctx context.Context, batches []models.Batch, header models.BatchHeader) error

	// GetNextBatch loads the batch fileName of transfer batchCode. Once the
	// last batch is returned, the whole transfer is removed on a best-effort
	// basis. Unknown codes and ids yield ErrBatchNotFound.
	GetNextBatch(ctx context.Context, batchCode, fileName uuid.UUID) (models.Batch, error)
}

// BlobStore is a namespaced key-value store of opaque blobs. Each transfer
// lives in its own namespace.
type BlobStore interface {
	// EnsureNamespace creates the namespace if it does not exist yet.
	EnsureNamespace(ctx context.Context, namespace string) error

	NamespaceExists(ctx context.Context, namespace string) (bool, error)

	// Put writes data under key, replacing any previous value.
	Put(ctx context.Context, namespace, key string, data []byte) error

	// Get returns ErrBlobNotFound when the key is absent.
	Get(ctx context.Context, namespace, key string) ([]byte, error)

	// Delete returns ErrBlobNotFound when the key is absent.
	Delete(ctx context.Context, namespace, key string) error

	// RemoveNamespaceIfEmpty removes the namespace when it holds no blobs
	// and reports whether it did.
	RemoveNamespaceIfEmpty(ctx context.Context, namespace string) (bool, error)

	// ListNamespaces returns every namespace with its creation time.
	ListNamespaces(ctx context.Context) ([]NamespaceInfo, error)

	// RemoveNamespace removes the namespace together with its blobs.
	RemoveNamespace(ctx context.Context, namespace string) error
}

// NamespaceInfo describes one namespace of a BlobStore.
type NamespaceInfo struct {
	Name      string
	CreatedAt time.Time
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
