// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-batch/internal/blob"
	"github.com/MKhiriev/go-sync-batch/internal/keycodec"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/mock"
	"github.com/MKhiriev/go-sync-batch/internal/service"
	"github.com/MKhiriev/go-sync-batch/internal/store"
	"github.com/MKhiriev/go-sync-batch/internal/utils"
	"github.com/MKhiriev/go-sync-batch/models"
)

const scopeName = "orders"

type fixture struct {
	svc      service.SyncService
	scopes   *service.ScopeRegistry
	entities *store.MemoryEntityStore
	blobs    store.BlobStore
}

// newFixture wires the orchestrator over in-memory stores.
func newFixture(t *testing.T, maxBatchSize int, opts service.ScopeOptions) fixture {
	t.Helper()
	scopes := service.NewScopeRegistry()
	require.NoError(t, scopes.RegisterScope(scopeName, opts))

	entities := store.NewMemoryEntityStore()
	blobs := store.NewMemoryBlobStore()
	svc := service.NewSyncService(service.SyncDeps{
		Scopes:     scopes,
		Enumerator: entities,
		Applier:    entities,
		Batches:    store.NewBatchStore(blobs, logger.Nop()),
		IDs:        utils.NewUUIDGenerator(),
	}, maxBatchSize, logger.Nop())

	return fixture{svc: svc, scopes: scopes, entities: entities, blobs: blobs}
}

func seedRecords(f fixture, n int) []models.ChangeRecord {
	records := make([]models.ChangeRecord, n)
	for i := range records {
		records[i] = models.ChangeRecord{Key: fmt.Sprintf("(ID=%d)", i+1), Payload: []byte(strings.Repeat("p", 20))}
	}
	return f.entities.Seed(scopeName, records...)
}

// downloadAll drives a transfer to completion the way a client does,
// passing the token through its wire encoding between calls.
func downloadAll(t *testing.T, svc service.SyncService, knowledge []byte) ([]models.Batch, models.ContinuationToken) {
	t.Helper()
	var (
		batches []models.Batch
		token   = &models.ContinuationToken{ClientKnowledge: knowledge, ClientScopeName: scopeName}
	)
	for range 1000 {
		batch, next, err := svc.BeginOrContinueDownload(context.Background(), scopeName, token)
		require.NoError(t, err)
		batches = append(batches, batch)
		if next.IsLastBatch {
			return batches, next
		}

		decoded, err := blob.Decode(blob.Encode(next))
		require.NoError(t, err)
		token = &decoded
	}
	t.Fatal("transfer did not finish")
	return nil, models.ContinuationToken{}
}

// ── download ─────────────────────────────────────────────────────────────────

func TestSyncService_Download_OrderAcrossBatches(t *testing.T) {
	const maxBatchSize = 130
	f := newFixture(t, maxBatchSize, service.ScopeOptions{})
	seeded := seedRecords(f, 10)

	batches, final := downloadAll(t, f.svc, nil)
	require.Greater(t, len(batches), 1)

	var got []models.ChangeRecord
	for i, b := range batches {
		assert.Equal(t, i == len(batches)-1, b.IsLastBatch, "batch %d", i)
		assert.Nil(t, b.Knowledge, "watermark must not leak into batches")

		size := 0
		for _, c := range b.Changes {
			size += c.Size()
		}
		assert.LessOrEqual(t, size, maxBatchSize)
		got = append(got, b.Changes...)
	}
	assert.Equal(t, seeded, got)

	assert.True(t, final.IsLastBatch)
	assert.False(t, final.BatchCode.Valid)
	assert.False(t, final.NextBatch.Valid)
	assert.Equal(t, store.EncodeKnowledge(10), final.ClientKnowledge)

	// the finished transfer leaves nothing behind
	namespaces, err := f.blobs.ListNamespaces(context.Background())
	require.NoError(t, err)
	assert.Empty(t, namespaces)
}

func TestSyncService_Download_IncrementalKnowledge(t *testing.T) {
	f := newFixture(t, 1<<20, service.ScopeOptions{})
	seedRecords(f, 3)

	_, first := downloadAll(t, f.svc, nil)
	updated := f.entities.Seed(scopeName, models.ChangeRecord{Key: "(ID=2)", Payload: []byte("changed")})

	batches, _ := downloadAll(t, f.svc, first.ClientKnowledge)
	require.Len(t, batches, 1)
	assert.Equal(t, updated, batches[0].Changes)
}

func TestSyncService_Download_TerminalRetrieval(t *testing.T) {
	f := newFixture(t, 130, service.ScopeOptions{})
	seedRecords(f, 6)
	ctx := context.Background()

	_, first, err := f.svc.BeginOrContinueDownload(ctx, scopeName, nil)
	require.NoError(t, err)
	require.True(t, first.HasTransfer())

	replay := first
	token := &first
	for {
		_, next, err := f.svc.BeginOrContinueDownload(ctx, scopeName, token)
		require.NoError(t, err)
		if next.IsLastBatch {
			break
		}
		token = &next
	}

	// any earlier id of the finished transfer is gone
	_, _, err = f.svc.BeginOrContinueDownload(ctx, scopeName, &replay)
	require.ErrorIs(t, err, service.ErrBatchNotFound)
	assert.ErrorIs(t, err, service.ErrProtocol)
	assert.Equal(t, service.FaultServer, service.FaultOf(err))
}

func TestSyncService_Download_EmptyChangeSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	batches := mock.NewMockBatchStore(ctrl) // no calls expected

	scopes := service.NewScopeRegistry()
	require.NoError(t, scopes.RegisterScope(scopeName, service.ScopeOptions{}))
	svc := service.NewSyncService(service.SyncDeps{
		Scopes:     scopes,
		Enumerator: store.NewMemoryEntityStore(),
		Batches:    batches,
		IDs:        utils.NewUUIDGenerator(),
	}, 1024, logger.Nop())

	batch, token, err := svc.BeginOrContinueDownload(context.Background(), scopeName, nil)
	require.NoError(t, err)

	assert.True(t, batch.IsLastBatch)
	assert.Empty(t, batch.Changes)
	assert.NotNil(t, batch.Changes)
	assert.True(t, token.IsLastBatch)
	assert.False(t, token.HasTransfer())
	assert.Equal(t, scopeName, token.ClientScopeName)
	assert.Equal(t, store.EncodeKnowledge(0), token.ClientKnowledge)
}

func TestSyncService_Download_SingleBatchIsCleanedUp(t *testing.T) {
	f := newFixture(t, 1<<20, service.ScopeOptions{})
	seedRecords(f, 2)

	batch, token, err := f.svc.BeginOrContinueDownload(context.Background(), scopeName, nil)
	require.NoError(t, err)
	assert.True(t, batch.IsLastBatch)
	assert.Len(t, batch.Changes, 2)
	assert.True(t, token.IsLastBatch)

	namespaces, err := f.blobs.ListNamespaces(context.Background())
	require.NoError(t, err)
	assert.Empty(t, namespaces)
}

func TestSyncService_Download_TokenErrors(t *testing.T) {
	f := newFixture(t, 1024, service.ScopeOptions{})
	code := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	tests := []struct {
		name      string
		scope     string
		token     models.ContinuationToken
		wantErr   error
		wantFault service.Fault
	}{
		{
			name:      "unknown scope",
			scope:     "invoices",
			token:     models.ContinuationToken{ClientScopeName: "invoices"},
			wantErr:   service.ErrUnknownScope,
			wantFault: service.FaultClient,
		},
		{
			name:      "scope mismatch",
			scope:     scopeName,
			token:     models.ContinuationToken{ClientScopeName: "customers"},
			wantErr:   service.ErrInvalidContinuation,
			wantFault: service.FaultClient,
		},
		{
			name:      "batch code without next batch",
			scope:     scopeName,
			token:     models.ContinuationToken{ClientScopeName: scopeName, BatchCode: code},
			wantErr:   service.ErrInvalidContinuation,
			wantFault: service.FaultClient,
		},
		{
			name:      "replay after completion",
			scope:     scopeName,
			token:     models.ContinuationToken{ClientScopeName: scopeName, BatchCode: code, IsLastBatch: true},
			wantErr:   service.ErrTransferCompleted,
			wantFault: service.FaultServer,
		},
		{
			name:      "unknown transfer",
			scope:     scopeName,
			token:     models.ContinuationToken{ClientScopeName: scopeName, BatchCode: code, NextBatch: uuid.NullUUID{UUID: uuid.New(), Valid: true}},
			wantErr:   service.ErrBatchNotFound,
			wantFault: service.FaultServer,
		},
		{
			name:      "foreign knowledge",
			scope:     scopeName,
			token:     models.ContinuationToken{ClientScopeName: scopeName, ClientKnowledge: []byte("not-a-watermark")},
			wantErr:   store.ErrInvalidKnowledge,
			wantFault: service.FaultClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.token
			_, _, err := f.svc.BeginOrContinueDownload(context.Background(), tt.scope, &token)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantFault, service.FaultOf(err))
		})
	}
}

func TestSyncService_Download_RecordTooLarge(t *testing.T) {
	f := newFixture(t, 64, service.ScopeOptions{})
	f.entities.Seed(scopeName, models.ChangeRecord{Key: "(ID=1)", Payload: []byte(strings.Repeat("x", 100))})

	_, _, err := f.svc.BeginOrContinueDownload(context.Background(), scopeName, nil)
	require.ErrorIs(t, err, service.ErrRecordExceedsBatchSize)
	assert.Equal(t, service.FaultServer, service.FaultOf(err))
}

func TestSyncService_Download_ScopeBatchSizeOverride(t *testing.T) {
	f := newFixture(t, 1<<20, service.ScopeOptions{MaxBatchSize: 130})
	seedRecords(f, 6)

	batches, _ := downloadAll(t, f.svc, nil)
	assert.Greater(t, len(batches), 1)
}

func TestSyncService_Download_CollaboratorFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	enumerator := mock.NewMockChangeEnumerator(ctrl)
	batches := mock.NewMockBatchStore(ctrl)

	scopes := service.NewScopeRegistry()
	require.NoError(t, scopes.RegisterScope(scopeName, service.ScopeOptions{}))
	svc := service.NewSyncService(service.SyncDeps{
		Scopes:     scopes,
		Enumerator: enumerator,
		Batches:    batches,
		IDs:        utils.NewUUIDGenerator(),
	}, 1024, logger.Nop())
	ctx := context.Background()

	t.Run("enumeration fails", func(t *testing.T) {
		enumerator.EXPECT().EnumerateChanges(ctx, scopeName, gomock.Nil()).Return(models.ChangeSet{}, errors.New("db down"))

		_, _, err := svc.BeginOrContinueDownload(ctx, scopeName, nil)
		require.ErrorContains(t, err, "db down")
		assert.Equal(t, service.FaultServer, service.FaultOf(err))
	})

	t.Run("saving fails", func(t *testing.T) {
		enumerator.EXPECT().EnumerateChanges(ctx, scopeName, gomock.Nil()).Return(models.ChangeSet{
			Changes:   []models.ChangeRecord{{Key: "(ID=1)", Payload: []byte("x")}},
			Knowledge: []byte{1},
		}, nil)
		batches.EXPECT().SaveBatches(ctx, gomock.Len(1), gomock.Any()).Return(errors.New("disk full"))

		_, _, err := svc.BeginOrContinueDownload(ctx, scopeName, nil)
		require.ErrorContains(t, err, "disk full")
		assert.Equal(t, service.FaultServer, service.FaultOf(err))
	})

	t.Run("stored batch without successor", func(t *testing.T) {
		code, id := uuid.New(), uuid.New()
		batches.EXPECT().GetNextBatch(ctx, code, id).Return(models.Batch{FileName: id}, nil)

		_, _, err := svc.BeginOrContinueDownload(ctx, scopeName, &models.ContinuationToken{
			ClientScopeName: scopeName,
			BatchCode:       uuid.NullUUID{UUID: code, Valid: true},
			NextBatch:       uuid.NullUUID{UUID: id, Valid: true},
		})
		require.ErrorIs(t, err, service.ErrCorruptTransfer)
	})

	t.Run("storage failure while reading", func(t *testing.T) {
		code, id := uuid.New(), uuid.New()
		batches.EXPECT().GetNextBatch(ctx, code, id).Return(models.Batch{}, errors.New("i/o timeout"))

		_, _, err := svc.BeginOrContinueDownload(ctx, scopeName, &models.ContinuationToken{
			ClientScopeName: scopeName,
			BatchCode:       uuid.NullUUID{UUID: code, Valid: true},
			NextBatch:       uuid.NullUUID{UUID: id, Valid: true},
		})
		require.ErrorContains(t, err, "i/o timeout")
		assert.NotErrorIs(t, err, service.ErrBatchNotFound)
	})
}

// ── upload ───────────────────────────────────────────────────────────────────

func TestSyncService_Upload_ServerWinsConflicts(t *testing.T) {
	f := newFixture(t, 1024, service.ScopeOptions{Policy: models.ServerWins})
	live := seedRecords(f, 5)

	// E2 and E4 edit stale versions
	upload := make([]models.ChangeRecord, 5)
	for i, rec := range live {
		upload[i] = models.ChangeRecord{Key: rec.Key, Payload: []byte("client"), ETag: rec.ETag}
	}
	upload[1].ETag = "0"
	upload[3].ETag = "0"

	result, err := f.svc.UploadChanges(context.Background(), scopeName, upload, nil)
	require.NoError(t, err)

	require.Len(t, result.Conflicts, 2)
	var losing []string
	for _, c := range result.Conflicts {
		sc, ok := c.(models.SyncConflict)
		require.True(t, ok)
		assert.Equal(t, models.ServerWins, sc.Resolution)
		losing = append(losing, sc.Losing.Key)
	}
	assert.Equal(t, []string{upload[1].Key, upload[3].Key}, losing)
	assert.Equal(t, []string{upload[0].Key, upload[2].Key, upload[4].Key}, result.AppliedIDs)
	assert.Empty(t, result.Errors)

	kept, _ := f.entities.Get(scopeName, upload[1].Key)
	assert.Equal(t, live[1].Payload, kept.Payload)
}

func TestSyncService_Upload_PolicyOverride(t *testing.T) {
	f := newFixture(t, 1024, service.ScopeOptions{Policy: models.ServerWins})
	live := seedRecords(f, 1)[0]
	clientWins := models.ClientWins

	result, err := f.svc.UploadChanges(context.Background(), scopeName,
		[]models.ChangeRecord{{Key: live.Key, Payload: []byte("client"), ETag: "0"}}, &clientWins)
	require.NoError(t, err)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, models.ClientWins, result.Conflicts[0].(models.SyncConflict).Resolution)

	stored, _ := f.entities.Get(scopeName, live.Key)
	assert.Equal(t, []byte("client"), stored.Payload)
}

func TestSyncService_Upload_MergeNotSupported(t *testing.T) {
	f := newFixture(t, 1024, service.ScopeOptions{Policy: models.ServerWins})
	merge := models.Merge

	_, err := f.svc.UploadChanges(context.Background(), scopeName,
		[]models.ChangeRecord{{Key: "(ID=1)", Payload: []byte("x")}}, &merge)
	require.ErrorIs(t, err, service.ErrPolicyNotSupported)
	assert.Equal(t, service.FaultClient, service.FaultOf(err))
}

func TestSyncService_Upload_MergeInterceptor(t *testing.T) {
	ctrl := gomock.NewController(t)
	interceptor := mock.NewMockMergeInterceptor(ctrl)
	f := newFixture(t, 1024, service.ScopeOptions{Policy: models.Merge, Interceptor: interceptor})
	live := seedRecords(f, 1)[0]
	client := models.ChangeRecord{Key: live.Key, Payload: []byte("client"), ETag: "0"}

	interceptor.EXPECT().
		Merge(gomock.Any(), service.MergeContext{ScopeName: scopeName}, client, live).
		Return(models.Merge, models.ChangeRecord{Payload: []byte("merged")}, nil)

	result, err := f.svc.UploadChanges(context.Background(), scopeName, []models.ChangeRecord{client}, nil)
	require.NoError(t, err)
	require.Len(t, result.Conflicts, 1)

	sc := result.Conflicts[0].(models.SyncConflict)
	assert.Equal(t, models.Merge, sc.Resolution)
	assert.Equal(t, client, sc.Losing)

	stored, _ := f.entities.Get(scopeName, live.Key)
	assert.Equal(t, []byte("merged"), stored.Payload)
}

func TestSyncService_Upload_MalformedKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	applier := mock.NewMockEntityApplier(ctrl) // never reached

	scopes := service.NewScopeRegistry()
	require.NoError(t, scopes.RegisterScope(scopeName, service.ScopeOptions{
		KeySchema: keycodec.Schema{{Name: "ID", Type: keycodec.TypeGUID}},
	}))
	svc := service.NewSyncService(service.SyncDeps{Scopes: scopes, Applier: applier}, 1024, logger.Nop())

	_, err := svc.UploadChanges(context.Background(), scopeName, []models.ChangeRecord{
		{Key: "(ID=guid'6f9619ff-8b86-d011-b42d-00cf4fc964ff')", Payload: []byte("ok")},
		{Key: "(ID=guid'not-a-guid')", Payload: []byte("bad")},
	}, nil)
	require.ErrorIs(t, err, service.ErrMalformedEntityKey)
	assert.Contains(t, err.Error(), "not-a-guid")
	assert.Equal(t, service.FaultClient, service.FaultOf(err))
}

func TestSyncService_Upload_Errors(t *testing.T) {
	f := newFixture(t, 1024, service.ScopeOptions{})

	result, err := f.svc.UploadChanges(context.Background(), scopeName, []models.ChangeRecord{
		{Tombstone: true},
		{Key: "(ID=404)", Payload: []byte("x"), ETag: "7"},
		{Payload: []byte("insert")},
	}, nil)
	require.NoError(t, err)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, "tombstone entity has no identifying id", result.Errors[0].(models.SyncError).Description)
	assert.Equal(t, "entity (ID=404) does not exist", result.Errors[1].(models.SyncError).Description)
	require.Len(t, result.AppliedIDs, 1)
	assert.True(t, strings.HasPrefix(result.AppliedIDs[0], "(ID=guid'"))
	assert.Empty(t, result.Conflicts)
}

func TestSyncService_Upload_ApplierResults(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		result  models.ApplyResult
		wantErr error
	}{
		{
			name:    "conflict on an entity outside the request",
			result:  models.ApplyResult{Status: models.ApplyConflict, Live: &models.ChangeRecord{Key: "(ID=2)", Tombstone: true}},
			wantErr: service.ErrUnreferencedConflict,
		},
		{
			name:    "conflict without live entity",
			result:  models.ApplyResult{Status: models.ApplyConflict},
			wantErr: service.ErrCorruptTransfer,
		},
		{
			name:    "unknown status",
			result:  models.ApplyResult{Status: models.ApplyStatus(7), ID: "(ID=1)"},
			wantErr: service.ErrUnexpectedApplyStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			applier := mock.NewMockEntityApplier(ctrl)
			applier.EXPECT().TryApply(ctx, scopeName, gomock.Any(), false).Return(tt.result, nil)

			scopes := service.NewScopeRegistry()
			require.NoError(t, scopes.RegisterScope(scopeName, service.ScopeOptions{}))
			svc := service.NewSyncService(service.SyncDeps{Scopes: scopes, Applier: applier}, 1024, logger.Nop())

			_, err := svc.UploadChanges(ctx, scopeName, []models.ChangeRecord{{Key: "(ID=1)", Tombstone: true}}, nil)
			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, service.ErrProtocol)
			assert.Equal(t, service.FaultServer, service.FaultOf(err))
		})
	}
}

func TestSyncService_Upload_ClientWinsReportsStoredVersion(t *testing.T) {
	f := newFixture(t, 1024, service.ScopeOptions{Policy: models.ClientWins})
	live := seedRecords(f, 1)[0]

	first, err := f.svc.UploadChanges(context.Background(), scopeName,
		[]models.ChangeRecord{{Key: live.Key, Payload: []byte("client"), ETag: "0"}}, nil)
	require.NoError(t, err)
	require.Len(t, first.Conflicts, 1)
	reported := first.Conflicts[0].LiveEntity()
	require.NotNil(t, reported)

	stored, _ := f.entities.Get(scopeName, live.Key)
	assert.Equal(t, stored.ETag, reported.ETag)

	// an edit based on the reported live entity is a plain update
	next := *reported
	next.Payload = []byte("client, second edit")
	second, err := f.svc.UploadChanges(context.Background(), scopeName, []models.ChangeRecord{next}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{live.Key}, second.AppliedIDs)
	assert.Empty(t, second.Conflicts)
}

func TestSyncService_Upload_EmptyResultLists(t *testing.T) {
	f := newFixture(t, 1024, service.ScopeOptions{})

	result, err := f.svc.UploadChanges(context.Background(), scopeName, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.AppliedIDs)
	assert.NotNil(t, result.Conflicts)
	assert.NotNil(t, result.Errors)
}
