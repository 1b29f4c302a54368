package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-sync-batch/models"
)

// ChangeEnumerator lists the changes of a scope that a client holding
// clientKnowledge has not seen yet, in delivery order.
type ChangeEnumerator interface {
	EnumerateChanges(ctx context.Context, scopeName string, clientKnowledge []byte) (models.ChangeSet, error)
}

// EntityApplier writes one client entity into the backing store. With
// force set, concurrency checks are skipped (used when the client wins).
type EntityApplier interface {
	TryApply(ctx context.Context, scopeName string, entity models.ChangeRecord, force bool) (models.ApplyResult, error)
}

// MergeContext identifies the conflict handed to a MergeInterceptor.
type MergeContext struct {
	ScopeName string
}

// MergeInterceptor decides a conflict for scopes with the Merge policy. It
// returns the winning side, or Merge together with the merged entity.
type MergeInterceptor interface {
	Merge(ctx context.Context, mc MergeContext, client, server models.ChangeRecord) (models.Resolution, models.ChangeRecord, error)
}

// MergeInterceptorFunc adapts a function to MergeInterceptor.
type MergeInterceptorFunc func(ctx context.Context, mc MergeContext, client, server models.ChangeRecord) (models.Resolution, models.ChangeRecord, error)

func (f MergeInterceptorFunc) Merge(ctx context.Context, mc MergeContext, client, server models.ChangeRecord) (models.Resolution, models.ChangeRecord, error) {
	return f(ctx, mc, client, server)
}

// IDGenerator issues batch codes and batch sequence ids.
type IDGenerator interface {
	New() uuid.UUID
}

// SyncService drives downloads batch by batch and applies uploads.
type SyncService interface {
	// BeginOrContinueDownload starts a transfer when token carries no batch
	// code and returns its first batch, or returns the batch token points to.
	// A nil token starts from empty knowledge.
	BeginOrContinueDownload(ctx context.Context, scopeName string, token *models.ContinuationToken) (models.Batch, models.ContinuationToken, error)

	// UploadChanges applies entities one by one. policy overrides the
	// scope's configured resolution when not nil.
	UploadChanges(ctx context.Context, scopeName string, entities []models.ChangeRecord, policy *models.Resolution) (models.UploadResult, error)
}

// SyncServiceWrapper defines middleware composition for SyncService.
// Implementations wrap an existing SyncService to add behavior such as
// validating.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService
}
